package gpu

import (
	"unsafe"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// GLDevice creates OpenGL buffer objects. Every GL call is executed on the
// main thread through mainthread.Call, so CreateBuffer may be called from
// meshing goroutines; the program must be running under mainthread.Run with
// a current GL context on that thread.
type GLDevice struct{}

// NewGLDevice returns a device bound to the current GL context.
func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

func (d *GLDevice) CreateBuffer(usage Usage, data []byte) (uint32, error) {
	var (
		id  uint32
		err error
	)
	mainthread.Call(func() {
		id, err = createBuffer(usage, data)
	})
	return id, err
}

func (d *GLDevice) DeleteBuffer(id uint32) {
	if id == 0 {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteBuffers(1, &id)
	})
}

// maxStaleErrors bounds the drain; without a current context some drivers
// report an error on every call.
const maxStaleErrors = 8

// drainErrors clears pending GL errors and returns how many it read.
func drainErrors(getError func() uint32) int {
	n := 0
	for n < maxStaleErrors && getError() != gl.NO_ERROR {
		n++
	}
	return n
}

// createBuffer must run on the GL thread. Buffer objects are untyped, so
// both usages are staged through ARRAY_BUFFER; the element binding is made
// when a renderer attaches the buffer to a vertex array.
func createBuffer(usage Usage, data []byte) (uint32, error) {
	// drain stale errors so the check below only sees ours
	drainErrors(gl.GetError)

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, errors.Errorf("glGenBuffers returned no %s buffer", usage)
	}

	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data), ptr, gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &id)
		return 0, errors.Errorf("upload %d byte %s buffer: gl error 0x%x", len(data), usage, code)
	}
	return id, nil
}
