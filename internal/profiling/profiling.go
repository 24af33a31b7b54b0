package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight CPU timing tracker. Totals accumulate until Reset, so a
// caller can time one meshing pass, one frame, or a whole run.

// Stat is the accumulated time and call count for one tracked name.
type Stat struct {
	Total time.Duration
	Calls int
}

var (
	mu     sync.Mutex
	totals = make(map[string]Stat)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("meshing.MeshChunk")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		s := totals[name]
		s.Total += d
		s.Calls++
		totals[name] = s
		mu.Unlock()
	}
}

// Reset clears all accumulated totals.
func Reset() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the accumulated totals.
func Snapshot() map[string]Stat {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Stat, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// TopN formats the n names with the largest total time.
// Example: "meshing.MeshChunk:4.2ms/32, meshing.CreateMesh:2.1ms/32"
func TopN(n int) string {
	type pair struct {
		name string
		stat Stat
	}
	ss := Snapshot()
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, stat: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].stat.Total != list[j].stat.Total {
			return list[i].stat.Total > list[j].stat.Total
		}
		return list[i].name < list[j].name
	})
	n = min(n, len(list))

	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.stat.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", p.name, ms, p.stat.Calls))
	}
	return strings.Join(parts, ", ")
}
