package world

import (
	"sort"
	"sync"
)

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, an empty one is added.
func (cs *ChunkStore) GetChunk(chunkX, chunkY, chunkZ int, create bool) *Chunk {
	coord := ChunkCoord{X: chunkX, Y: chunkY, Z: chunkZ}
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if exists || !create {
		return chunk
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	// Another goroutine might have created it while we were waiting for the lock
	if existing, ok := cs.chunks[coord]; ok {
		return existing
	}
	chunk = NewChunk(chunkX, chunkY, chunkZ)
	cs.chunks[coord] = chunk
	cs.modCount++
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing the block at the specified world coordinates.
func (cs *ChunkStore) GetChunkFromBlockCoords(x, y, z int, create bool) *Chunk {
	return cs.GetChunk(floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize), create)
}

// Get returns the block type at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, false)
	if chunk == nil {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

// IsAir checks if the block at the specified world coordinates is air.
// Unloaded chunks read as air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == BlockTypeAir
}

// Set sets the block type at the specified world coordinates.
func (cs *ChunkStore) Set(x, y, z int, val BlockType) {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, true)

	localX := mod(x, ChunkSize)
	localY := mod(y, ChunkSize)
	localZ := mod(z, ChunkSize)
	chunk.SetBlock(localX, localY, localZ, val)

	// A border block changes the visible faces of the neighbouring chunk too
	cs.markDirtyIf(localX == 0, x-1, y, z)
	cs.markDirtyIf(localX == ChunkSize-1, x+1, y, z)
	cs.markDirtyIf(localY == 0, x, y-1, z)
	cs.markDirtyIf(localY == ChunkSize-1, x, y+1, z)
	cs.markDirtyIf(localZ == 0, x, y, z-1)
	cs.markDirtyIf(localZ == ChunkSize-1, x, y, z+1)
}

func (cs *ChunkStore) markDirtyIf(cond bool, x, y, z int) {
	if !cond {
		return
	}
	if nb := cs.GetChunkFromBlockCoords(x, y, z, false); nb != nil {
		nb.MarkDirty()
	}
}

// AddChunk adds a pre-populated chunk to the store, replacing any chunk at the same coordinate.
func (cs *ChunkStore) AddChunk(chunk *Chunk) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.chunks[chunk.Coord()] = chunk
	cs.modCount++
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// Chunks returns all loaded chunks ordered by (Y, Z, X) so callers iterate deterministically.
func (cs *ChunkStore) Chunks() []*Chunk {
	cs.mu.RLock()
	out := make([]*Chunk, 0, len(cs.chunks))
	for _, ch := range cs.chunks {
		out = append(out, ch)
	}
	cs.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// DirtyChunks returns the loaded chunks that need remeshing, in Chunks order.
func (cs *ChunkStore) DirtyChunks() []*Chunk {
	all := cs.Chunks()
	dirty := all[:0]
	for _, ch := range all {
		if ch.IsDirty() {
			dirty = append(dirty, ch)
		}
	}
	return dirty
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
