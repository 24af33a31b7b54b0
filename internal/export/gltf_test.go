package export

import (
	"path/filepath"
	"testing"

	"cubeworld/internal/meshing"
	"cubeworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func cubeBuilder(cubes int) *meshing.ChunkMeshBuilder {
	b := meshing.NewChunkMeshBuilder()
	for i := 0; i < cubes; i++ {
		b.AddCube(mgl32.Vec3{float32(i * 2), 0, 0})
	}
	return b
}

func TestSceneAccessorCounts(t *testing.T) {
	s := NewScene()
	b := cubeBuilder(2)
	if !s.AddChunk(world.ChunkCoord{X: 1, Y: 0, Z: -2}, b) {
		t.Fatal("AddChunk skipped a non-empty builder")
	}

	doc := s.Document()
	prim := doc.Meshes[0].Primitives[0]
	if got := int(doc.Accessors[*prim.Indices].Count); got != b.NumIndices() {
		t.Errorf("index accessor count = %d, want %d", got, b.NumIndices())
	}
	if got := int(doc.Accessors[prim.Attributes["POSITION"]].Count); got != b.NumVerts() {
		t.Errorf("position accessor count = %d, want %d", got, b.NumVerts())
	}
	if got := int(doc.Accessors[prim.Attributes["NORMAL"]].Count); got != b.NumVerts() {
		t.Errorf("normal accessor count = %d, want %d", got, b.NumVerts())
	}

	node := doc.Nodes[0]
	if node.Translation != [3]float32{16, 0, -32} {
		t.Errorf("node translation = %v", node.Translation)
	}
}

func TestSceneSkipsEmptyBuilder(t *testing.T) {
	s := NewScene()
	if s.AddChunk(world.ChunkCoord{}, meshing.NewChunkMeshBuilder()) {
		t.Errorf("empty builder should be skipped")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestSceneWriteFileRoundTrip(t *testing.T) {
	s := NewScene()
	first := cubeBuilder(1)
	second := cubeBuilder(3)
	s.AddChunk(world.ChunkCoord{X: 0}, first)
	s.AddChunk(world.ChunkCoord{X: 1}, second)

	path := filepath.Join(t.TempDir(), "world.glb")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(doc.Meshes) != 2 || len(doc.Nodes) != 2 {
		t.Fatalf("meshes=%d nodes=%d, want 2/2", len(doc.Meshes), len(doc.Nodes))
	}
	if len(doc.Scenes[*doc.Scene].Nodes) != 2 {
		t.Errorf("scene should reference both nodes")
	}

	prim := doc.Meshes[1].Primitives[0]
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(indices) != second.NumIndices() {
		t.Fatalf("read %d indices, want %d", len(indices), second.NumIndices())
	}
	for i, v := range second.Indices() {
		if indices[i] != v {
			t.Fatalf("index %d = %d, want %d", i, indices[i], v)
		}
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[prim.Attributes["POSITION"]], nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range second.Vertices() {
		if mgl32.Vec3(positions[i]) != v.Position {
			t.Fatalf("position %d = %v, want %v", i, positions[i], v.Position)
		}
	}
}
