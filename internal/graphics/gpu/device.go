// Package gpu is the buffer-creation boundary between CPU-side mesh
// building and the graphics API. Buffers are identified by opaque
// unsigned handles; whoever receives a handle owns the buffer.
package gpu

import "fmt"

// Usage hints what a buffer will be bound as.
type Usage int

const (
	VertexData Usage = iota
	IndexData
)

func (u Usage) String() string {
	switch u {
	case VertexData:
		return "vertex"
	case IndexData:
		return "index"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

// Device creates and releases GPU buffers.
type Device interface {
	// CreateBuffer uploads data into a new buffer and returns its handle.
	// A zero-length data slice yields a valid, empty buffer.
	CreateBuffer(usage Usage, data []byte) (uint32, error)
	// DeleteBuffer releases a buffer returned by CreateBuffer. Unknown handles are ignored.
	DeleteBuffer(id uint32)
}
