package gpu

import "sync"

// MemoryDevice keeps buffers in process memory. It is safe for concurrent
// use and serves headless runs and tests.
type MemoryDevice struct {
	mu      sync.Mutex
	next    uint32
	buffers map[uint32]memoryBuffer
	created int

	// Fail, when set, is consulted before every upload; a non-nil result is
	// returned from CreateBuffer and no buffer is created.
	Fail func(usage Usage, data []byte) error
}

type memoryBuffer struct {
	usage Usage
	data  []byte
}

// NewMemoryDevice creates an empty in-memory device.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{
		buffers: make(map[uint32]memoryBuffer),
	}
}

func (d *MemoryDevice) CreateBuffer(usage Usage, data []byte) (uint32, error) {
	if d.Fail != nil {
		if err := d.Fail(usage, data); err != nil {
			return 0, err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// handle 0 is reserved as "no buffer", like GL
	d.next++
	d.buffers[d.next] = memoryBuffer{usage: usage, data: append([]byte(nil), data...)}
	d.created++
	return d.next, nil
}

func (d *MemoryDevice) DeleteBuffer(id uint32) {
	d.mu.Lock()
	delete(d.buffers, id)
	d.mu.Unlock()
}

// Buffer returns a copy of the bytes uploaded under id.
func (d *MemoryDevice) Buffer(id uint32) ([]byte, Usage, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.buffers[id]
	if !ok {
		return nil, 0, false
	}
	return append([]byte(nil), b.data...), b.usage, true
}

// Live returns the number of buffers that have not been deleted.
func (d *MemoryDevice) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.buffers)
}

// Bytes returns the total size of all live buffers.
func (d *MemoryDevice) Bytes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, b := range d.buffers {
		n += len(b.data)
	}
	return n
}

// Created returns the number of successful uploads over the device's lifetime.
func (d *MemoryDevice) Created() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created
}
