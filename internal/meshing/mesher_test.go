package meshing

import (
	"testing"

	"cubeworld/internal/config"
	"cubeworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestMeshChunkSingleBlock(t *testing.T) {
	store := world.NewChunkStore()
	store.Set(3, 4, 5, world.BlockTypeStone)
	c := store.GetChunk(0, 0, 0, false)

	b := NewChunkMeshBuilder()
	MeshChunk(store, c, b)
	if b.NumFaces() != 6 {
		t.Fatalf("isolated block produced %d faces, want 6", b.NumFaces())
	}

	ref := NewChunkMeshBuilder()
	ref.AddCube(mgl32.Vec3{3, 4, 5})
	for i, v := range ref.Vertices() {
		if b.Vertices()[i] != v {
			t.Fatalf("vertex %d = %v, want %v", i, b.Vertices()[i], v)
		}
	}
}

func TestMeshChunkCullsSharedFaces(t *testing.T) {
	tests := []struct {
		name   string
		blocks [][3]int
		faces  int
	}{
		{"pair", [][3]int{{1, 1, 1}, {2, 1, 1}}, 10},
		{"line of three", [][3]int{{1, 1, 1}, {1, 2, 1}, {1, 3, 1}}, 14},
		{"2x2x2", [][3]int{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
		}, 24},
		{"diagonal", [][3]int{{1, 1, 1}, {2, 2, 2}}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := world.NewChunkStore()
			for _, p := range tt.blocks {
				store.Set(p[0], p[1], p[2], world.BlockTypeDirt)
			}
			b := NewChunkMeshBuilder()
			MeshChunk(store, store.GetChunk(0, 0, 0, false), b)
			if b.NumFaces() != tt.faces {
				t.Errorf("faces = %d, want %d", b.NumFaces(), tt.faces)
			}
		})
	}
}

func TestMeshChunkCullsAcrossChunkBorder(t *testing.T) {
	store := world.NewChunkStore()
	store.Set(world.ChunkSize-1, 0, 0, world.BlockTypeStone)
	store.Set(world.ChunkSize, 0, 0, world.BlockTypeStone)

	left := NewChunkMeshBuilder()
	MeshChunk(store, store.GetChunk(0, 0, 0, false), left)
	right := NewChunkMeshBuilder()
	MeshChunk(store, store.GetChunk(1, 0, 0, false), right)

	if left.NumFaces() != 5 || right.NumFaces() != 5 {
		t.Errorf("faces = %d/%d, want 5/5", left.NumFaces(), right.NumFaces())
	}
	for _, v := range left.Vertices() {
		if v.NormalVec() == FaceXP.Normal() {
			t.Errorf("left chunk kept the +x face against its neighbour")
		}
	}
	// positions are chunk-local
	for _, v := range right.Vertices() {
		if v.Position.X() > 1 {
			t.Errorf("right chunk vertex %v is not chunk-local", v.Position)
		}
	}
}

func TestMeshChunkNilSourceTreatsOutsideAsAir(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)
	b := NewChunkMeshBuilder()
	MeshChunk(nil, c, b)
	if b.NumFaces() != 6 {
		t.Errorf("faces = %d, want 6", b.NumFaces())
	}
}

func TestMeshChunkUnculled(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	c.SetBlock(1, 0, 0, world.BlockTypeStone)
	b := NewChunkMeshBuilder()
	MeshChunkUnculled(c, b)
	if b.NumFaces() != 12 {
		t.Errorf("faces = %d, want 12", b.NumFaces())
	}
}

func TestBuildChunkFollowsCullSetting(t *testing.T) {
	prev := config.GetCullFaces()
	defer config.SetCullFaces(prev)

	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	c.SetBlock(0, 1, 0, world.BlockTypeStone)

	config.SetCullFaces(true)
	if n := BuildChunk(nil, c).NumFaces(); n != 10 {
		t.Errorf("culled faces = %d, want 10", n)
	}
	config.SetCullFaces(false)
	if n := BuildChunk(nil, c).NumFaces(); n != 12 {
		t.Errorf("unculled faces = %d, want 12", n)
	}
}

func TestMeshChunkEmpty(t *testing.T) {
	b := NewChunkMeshBuilder()
	MeshChunk(nil, world.NewChunk(2, 0, 2), b)
	if b.NumFaces() != 0 {
		t.Errorf("empty chunk produced %d faces", b.NumFaces())
	}
}

func BenchmarkMeshChunkFlat(b *testing.B) {
	store := world.NewChunkStore()
	world.GenerateArea(store, world.NewFlatGenerator(8), 1, 1)
	c := store.GetChunk(0, 0, 0, false)
	builder := NewChunkMeshBuilderSize(4096)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Reset()
		MeshChunk(store, c, builder)
	}
}
