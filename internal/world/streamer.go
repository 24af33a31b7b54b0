package world

import (
	"context"
	"sync"

	"cubeworld/internal/profiling"
)

// ChunkStreamer generates chunk columns on a set of worker goroutines,
// nearest columns first. Chunks above a column's highest block are never
// created, so the store only holds chunks with terrain in or below them.
type ChunkStreamer struct {
	store   *ChunkStore
	gen     TerrainGenerator
	workers int

	// Cached terrain heights per column (chunkX, chunkZ) -> highest block Y
	heightCache   map[[2]int]int
	heightCacheMu sync.RWMutex
}

// NewChunkStreamer creates a new chunk streamer.
func NewChunkStreamer(store *ChunkStore, gen TerrainGenerator, workers int) *ChunkStreamer {
	return &ChunkStreamer{
		store:       store,
		gen:         gen,
		workers:     max(workers, 1),
		heightCache: make(map[[2]int]int),
	}
}

// StreamArea generates every column within radius (in chunks, square) of
// column (cx, cz), at most layers chunks tall starting at Y=0. Chunks
// already in the store are kept. It returns the number of chunks added.
func (cs *ChunkStreamer) StreamArea(ctx context.Context, cx, cz, radius, layers int) (int, error) {
	defer profiling.Track("world.StreamArea")()

	jobs := make(chan [2]int)
	var (
		mu    sync.Mutex
		added int
		wg    sync.WaitGroup
	)
	for range cs.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for col := range jobs {
				n := cs.generateColumn(col[0], col[1], layers)
				mu.Lock()
				added += n
				mu.Unlock()
			}
		}()
	}

	var err error
feed:
	for r := 0; r <= radius; r++ {
		for _, col := range ring(cx, cz, r) {
			select {
			case jobs <- col:
			case <-ctx.Done():
				err = ctx.Err()
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()
	return added, err
}

// ring returns the columns at Chebyshev distance r from (cx, cz).
func ring(cx, cz, r int) [][2]int {
	if r == 0 {
		return [][2]int{{cx, cz}}
	}
	out := make([][2]int, 0, 8*r)
	for x := cx - r; x <= cx+r; x++ {
		out = append(out, [2]int{x, cz - r}, [2]int{x, cz + r})
	}
	for z := cz - r + 1; z <= cz+r-1; z++ {
		out = append(out, [2]int{cx - r, z}, [2]int{cx + r, z})
	}
	return out
}

func (cs *ChunkStreamer) generateColumn(chunkX, chunkZ, layers int) int {
	top := cs.columnHeight(chunkX, chunkZ)
	maxChunkY := min(floorDiv(top, ChunkSize), layers-1)
	added := 0
	for cy := 0; cy <= maxChunkY; cy++ {
		coord := ChunkCoord{X: chunkX, Y: cy, Z: chunkZ}
		if cs.store.HasChunk(coord) {
			continue
		}
		chunk := NewChunk(chunkX, cy, chunkZ)
		PopulateChunk(cs.gen, chunk)
		cs.store.AddChunk(chunk)
		added++
	}
	return added
}

// columnHeight returns the highest block Y over the whole chunk column, or -1.
func (cs *ChunkStreamer) columnHeight(chunkX, chunkZ int) int {
	key := [2]int{chunkX, chunkZ}
	cs.heightCacheMu.RLock()
	h, ok := cs.heightCache[key]
	cs.heightCacheMu.RUnlock()
	if ok {
		return h
	}

	h = -1
	baseX, baseZ := chunkX*ChunkSize, chunkZ*ChunkSize
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			h = max(h, cs.gen.HeightAt(baseX+lx, baseZ+lz))
		}
	}

	cs.heightCacheMu.Lock()
	cs.heightCache[key] = h
	cs.heightCacheMu.Unlock()
	return h
}
