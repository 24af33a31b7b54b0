package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// progress prints a single updating status line when stdout is a terminal
// and nothing otherwise.
type progress struct {
	out   io.Writer
	tty   bool
	width int
	total int
	done  int
}

func newProgress(total int) *progress {
	fd := int(os.Stdout.Fd())
	p := &progress{out: os.Stdout, total: total, width: 80}
	p.tty = term.IsTerminal(fd)
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		p.width = w
	}
	return p
}

func (p *progress) step() {
	p.done++
	if !p.tty {
		return
	}
	fmt.Fprint(p.out, "\r"+p.line())
	if p.done >= p.total {
		fmt.Fprintln(p.out)
	}
}

func (p *progress) line() string {
	label := fmt.Sprintf(" meshing %d/%d", p.done, p.total)
	bar := p.width - len(label) - 2
	if bar < 10 || p.total == 0 {
		return strings.TrimSpace(label)
	}
	filled := bar * p.done / p.total
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", bar-filled) + "]" + label
}
