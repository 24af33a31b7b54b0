package world

import (
	"compress/gzip"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/pkg/errors"
)

const saveVersion = 1

type savedWorld struct {
	Version int32        `nbt:"version"`
	Chunks  []savedChunk `nbt:"chunks"`
}

type savedChunk struct {
	X      int32   `nbt:"x"`
	Y      int32   `nbt:"y"`
	Z      int32   `nbt:"z"`
	Blocks []int32 `nbt:"blocks"`
}

// Save writes every non-empty chunk of the store as gzip-compressed NBT.
func Save(w io.Writer, store *ChunkStore) error {
	doc := savedWorld{Version: saveVersion}
	for _, ch := range store.Chunks() {
		if ch.IsEmpty() {
			continue
		}
		blocks := make([]int32, ChunkVolume)
		for i, b := range ch.blocks {
			blocks[i] = int32(b)
		}
		doc.Chunks = append(doc.Chunks, savedChunk{
			X:      int32(ch.X),
			Y:      int32(ch.Y),
			Z:      int32(ch.Z),
			Blocks: blocks,
		})
	}

	zw := gzip.NewWriter(w)
	if err := nbt.NewEncoder(zw).Encode(doc, "world"); err != nil {
		return errors.Wrap(err, "encode world")
	}
	return errors.Wrap(zw.Close(), "flush world")
}

// Load reads a world written by Save into a new store. Loaded chunks are dirty.
func Load(r io.Reader) (*ChunkStore, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open world")
	}
	defer zr.Close()

	var doc savedWorld
	if _, err := nbt.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode world")
	}
	if doc.Version != saveVersion {
		return nil, errors.Errorf("unsupported world version %d", doc.Version)
	}

	store := NewChunkStore()
	for _, sc := range doc.Chunks {
		if len(sc.Blocks) != ChunkVolume {
			return nil, errors.Errorf("chunk %d,%d,%d: got %d blocks, want %d", sc.X, sc.Y, sc.Z, len(sc.Blocks), ChunkVolume)
		}
		ch := NewChunk(int(sc.X), int(sc.Y), int(sc.Z))
		for i, v := range sc.Blocks {
			b := BlockType(v)
			if !b.Valid() {
				return nil, errors.Errorf("chunk %d,%d,%d: unknown block type %d", sc.X, sc.Y, sc.Z, v)
			}
			if b == BlockTypeAir {
				continue
			}
			x := i % ChunkSize
			y := (i / ChunkSize) % ChunkSize
			z := i / (ChunkSize * ChunkSize)
			ch.SetBlock(x, y, z, b)
		}
		store.AddChunk(ch)
	}
	return store, nil
}
