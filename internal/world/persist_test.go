package world

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/Tnze/go-mc/nbt"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewChunkStore()
	s.Set(0, 0, 0, BlockTypeStone)
	s.Set(-5, 17, 3, BlockTypeGrass)
	s.Set(31, 2, -16, BlockTypeDirt)
	s.GetChunk(4, 4, 4, true) // empty chunks are not saved

	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != 3 {
		t.Errorf("loaded %d chunks, want 3", loaded.Len())
	}
	checks := []struct {
		x, y, z int
		want    BlockType
	}{
		{0, 0, 0, BlockTypeStone},
		{-5, 17, 3, BlockTypeGrass},
		{31, 2, -16, BlockTypeDirt},
		{1, 0, 0, BlockTypeAir},
	}
	for _, c := range checks {
		if got := loaded.Get(c.x, c.y, c.z); got != c.want {
			t.Errorf("Get(%d,%d,%d) = %v, want %v", c.x, c.y, c.z, got, c.want)
		}
	}
	for _, ch := range loaded.Chunks() {
		if !ch.IsDirty() {
			t.Errorf("loaded chunk %v should be dirty", ch.Coord())
		}
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load(bytes.NewReader([]byte("not a world"))); err == nil {
		t.Fatalf("expected an error for non-gzip input")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := nbt.NewEncoder(zw).Encode(savedWorld{Version: 99}, "world"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	zw.Close()

	if _, err := Load(&buf); err == nil {
		t.Fatalf("expected an error for version 99")
	}
}
