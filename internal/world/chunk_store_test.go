package world

import "testing"

func TestFloorDivAndMod(t *testing.T) {
	tests := []struct {
		a, b, div, mod int
	}{
		{0, 16, 0, 0},
		{15, 16, 0, 15},
		{16, 16, 1, 0},
		{-1, 16, -1, 15},
		{-16, 16, -1, 0},
		{-17, 16, -2, 15},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.div {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.div)
		}
		if got := mod(tt.a, tt.b); got != tt.mod {
			t.Errorf("mod(%d,%d) = %d, want %d", tt.a, tt.b, got, tt.mod)
		}
	}
}

func TestStoreSetGetNegativeCoords(t *testing.T) {
	s := NewChunkStore()
	s.Set(-1, -1, -1, BlockTypeDirt)
	if b := s.Get(-1, -1, -1); b != BlockTypeDirt {
		t.Fatalf("Get(-1,-1,-1) = %v, want dirt", b)
	}
	ch := s.GetChunk(-1, -1, -1, false)
	if ch == nil {
		t.Fatalf("chunk (-1,-1,-1) should exist")
	}
	if b := ch.GetBlock(15, 15, 15); b != BlockTypeDirt {
		t.Errorf("local block = %v, want dirt", b)
	}
	if !s.IsAir(100, 0, 0) {
		t.Errorf("unloaded chunk should read as air")
	}
}

func TestStoreBorderWriteDirtiesNeighbour(t *testing.T) {
	s := NewChunkStore()
	s.Set(ChunkSize, 0, 0, BlockTypeStone) // chunk (1,0,0)
	left := s.GetChunk(0, 0, 0, true)
	left.SetClean()

	s.Set(ChunkSize, 1, 0, BlockTypeStone) // local x == 0 of chunk (1,0,0)
	if !left.IsDirty() {
		t.Errorf("writing a border block should dirty the neighbouring chunk")
	}
}

func TestStoreChunksSorted(t *testing.T) {
	s := NewChunkStore()
	s.GetChunk(1, 0, 0, true)
	s.GetChunk(0, 1, 0, true)
	s.GetChunk(0, 0, 1, true)
	s.GetChunk(0, 0, 0, true)

	want := []ChunkCoord{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {0, 1, 0}}
	got := s.Chunks()
	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Coord() != want[i] {
			t.Errorf("Chunks()[%d] = %v, want %v", i, got[i].Coord(), want[i])
		}
	}
}

func TestStoreDirtyChunks(t *testing.T) {
	s := NewChunkStore()
	a := s.GetChunk(0, 0, 0, true)
	s.GetChunk(1, 0, 0, true)
	a.SetClean()

	dirty := s.DirtyChunks()
	if len(dirty) != 1 || dirty[0].Coord() != (ChunkCoord{1, 0, 0}) {
		t.Errorf("DirtyChunks = %v", dirty)
	}
}
