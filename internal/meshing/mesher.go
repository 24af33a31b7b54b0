package meshing

import (
	"cubeworld/internal/config"
	"cubeworld/internal/profiling"
	"cubeworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource answers occupancy queries in world block coordinates.
// *world.ChunkStore implements it.
type BlockSource interface {
	IsAir(x, y, z int) bool
}

// BuildChunk meshes c into a new builder, culling hidden faces unless
// config.GetCullFaces is off. src may be nil, in which case everything
// outside c counts as air.
func BuildChunk(src BlockSource, c *world.Chunk) *ChunkMeshBuilder {
	// a surface layer is roughly one face per column; start there to avoid regrowth
	b := NewChunkMeshBuilderSize(world.ChunkSize * world.ChunkSize)
	if config.GetCullFaces() {
		MeshChunk(src, c, b)
	} else {
		MeshChunkUnculled(c, b)
	}
	return b
}

// MeshChunk adds, for every solid block of c, the faces that border air.
// Neighbours outside c are looked up through src so faces against solid
// blocks of adjacent chunks are culled too. Positions are chunk-local.
func MeshChunk(src BlockSource, c *world.Chunk, b *ChunkMeshBuilder) {
	defer profiling.Track("meshing.MeshChunk")()

	baseX, baseY, baseZ := c.Coord().Origin()
	c.ForEachSolid(func(x, y, z int, _ world.BlockType) {
		var mask FaceMask
		for _, f := range Faces {
			dx, dy, dz := f.Offset()
			if neighbourIsAir(src, c, x+dx, y+dy, z+dz, baseX, baseY, baseZ) {
				mask |= MaskOf(f)
			}
		}
		if mask != 0 {
			b.AddCubeFaces(blockPos(x, y, z), mask)
		}
	})
}

// MeshChunkUnculled adds all six faces of every solid block of c.
func MeshChunkUnculled(c *world.Chunk, b *ChunkMeshBuilder) {
	defer profiling.Track("meshing.MeshChunkUnculled")()

	c.ForEachSolid(func(x, y, z int, _ world.BlockType) {
		b.AddCube(blockPos(x, y, z))
	})
}

func neighbourIsAir(src BlockSource, c *world.Chunk, x, y, z, baseX, baseY, baseZ int) bool {
	if x >= 0 && x < world.ChunkSize && y >= 0 && y < world.ChunkSize && z >= 0 && z < world.ChunkSize {
		return c.IsAir(x, y, z)
	}
	if src == nil {
		return true
	}
	return src.IsAir(baseX+x, baseY+y, baseZ+z)
}

func blockPos(x, y, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}
