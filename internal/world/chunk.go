package world

// Chunks are cubes of ChunkSize blocks along every axis.
const (
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// Origin returns the world-space block coordinate of the chunk's minimum corner.
func (c ChunkCoord) Origin() (int, int, int) {
	return c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize
}

// Chunk is a ChunkSize³ block grid. Storage is only allocated once a
// non-air block is written.
type Chunk struct {
	X, Y, Z int
	blocks  []BlockType
	solid   int
	dirty   bool
}

// NewChunk creates an empty chunk at the specified chunk coordinates
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{
		X:     x,
		Y:     y,
		Z:     z,
		dirty: true,
	}
}

// Coord returns the chunk's coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Y: c.Y, Z: c.Z}
}

func blockIndex(x, y, z int) int {
	return x + y*ChunkSize + z*ChunkSize*ChunkSize
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block type at the specified local coordinates.
// Out of range coordinates read as air.
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if !inChunk(x, y, z) || c.blocks == nil {
		return BlockTypeAir
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock sets the block type at the specified local coordinates
func (c *Chunk) SetBlock(x, y, z int, blockType BlockType) {
	if !inChunk(x, y, z) {
		return
	}
	if c.blocks == nil {
		if blockType == BlockTypeAir {
			return
		}
		c.blocks = make([]BlockType, ChunkVolume)
	}

	idx := blockIndex(x, y, z)
	old := c.blocks[idx]
	if old == blockType {
		return
	}
	if old == BlockTypeAir {
		c.solid++
	} else if blockType == BlockTypeAir {
		c.solid--
	}
	c.blocks[idx] = blockType
	c.dirty = true

	if c.solid == 0 {
		c.blocks = nil
	}
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// IsEmpty reports whether the chunk holds no solid blocks.
func (c *Chunk) IsEmpty() bool {
	return c.solid == 0
}

// SolidCount returns the number of non-air blocks.
func (c *Chunk) SolidCount() int {
	return c.solid
}

// IsDirty returns whether the chunk has been modified since it was last meshed
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean (not modified)
func (c *Chunk) SetClean() {
	c.dirty = false
}

// MarkDirty flags the chunk for remeshing.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// ForEachSolid calls fn for every non-air block in x-fastest order.
func (c *Chunk) ForEachSolid(fn func(x, y, z int, b BlockType)) {
	if c.blocks == nil {
		return
	}
	for z := range ChunkSize {
		for y := range ChunkSize {
			for x := range ChunkSize {
				if b := c.blocks[blockIndex(x, y, z)]; b != BlockTypeAir {
					fn(x, y, z, b)
				}
			}
		}
	}
}
