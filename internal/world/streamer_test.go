package world

import (
	"context"
	"testing"
)

func TestRingSizes(t *testing.T) {
	for r := 0; r <= 4; r++ {
		cols := ring(3, -2, r)
		want := 8 * r
		if r == 0 {
			want = 1
		}
		if len(cols) != want {
			t.Errorf("ring %d has %d columns, want %d", r, len(cols), want)
		}
		seen := map[[2]int]bool{}
		for _, c := range cols {
			if seen[c] {
				t.Errorf("ring %d repeats column %v", r, c)
			}
			seen[c] = true
			dx, dz := c[0]-3, c[1]+2
			if max(abs(dx), abs(dz)) != r {
				t.Errorf("ring %d contains column %v at the wrong distance", r, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestStreamAreaSkipsEmptyLayers(t *testing.T) {
	store := NewChunkStore()
	cs := NewChunkStreamer(store, NewFlatGenerator(20), 4)

	added, err := cs.StreamArea(context.Background(), 0, 0, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	// 9 columns, surface at y=20 reaches into the second layer only
	if added != 18 || store.Len() != 18 {
		t.Fatalf("added=%d len=%d, want 18", added, store.Len())
	}
	if store.HasChunk(ChunkCoord{X: 0, Y: 2, Z: 0}) {
		t.Errorf("chunk above the surface was created")
	}
}

func TestStreamAreaMatchesGenerateArea(t *testing.T) {
	gen := NewNoiseGenerator(7)
	streamed := NewChunkStore()
	if _, err := NewChunkStreamer(streamed, gen, 3).StreamArea(context.Background(), 0, 0, 1, 3); err != nil {
		t.Fatal(err)
	}
	full := NewChunkStore()
	GenerateArea(full, gen, 1, 3)

	for _, ch := range full.Chunks() {
		got := streamed.GetChunk(ch.X, ch.Y, ch.Z, false)
		if ch.IsEmpty() {
			continue
		}
		if got == nil {
			t.Fatalf("streamer missed non-empty chunk %v", ch.Coord())
		}
		if got.SolidCount() != ch.SolidCount() {
			t.Errorf("chunk %v: %d solid blocks, want %d", ch.Coord(), got.SolidCount(), ch.SolidCount())
		}
	}
}

func TestStreamAreaKeepsExistingChunks(t *testing.T) {
	store := NewChunkStore()
	own := NewChunk(0, 0, 0)
	own.SetBlock(1, 1, 1, BlockTypeStone)
	store.AddChunk(own)

	added, err := NewChunkStreamer(store, NewFlatGenerator(5), 2).StreamArea(context.Background(), 0, 0, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Errorf("added = %d, want 0", added)
	}
	if store.GetChunk(0, 0, 0, false) != own {
		t.Errorf("existing chunk was replaced")
	}
}

func TestStreamAreaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewChunkStore()
	_, err := NewChunkStreamer(store, NewFlatGenerator(5), 1).StreamArea(ctx, 0, 0, 8, 1)
	if err == nil {
		t.Errorf("expected a context error")
	}
}
