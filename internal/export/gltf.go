// Package export writes built chunk meshes to interchange formats.
package export

import (
	"fmt"

	"cubeworld/internal/meshing"
	"cubeworld/internal/world"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Scene accumulates chunk meshes into a single glTF document, one node per
// chunk placed at the chunk's world origin.
type Scene struct {
	doc *gltf.Document
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "cubeworld"
	return &Scene{doc: doc}
}

// AddChunk appends the geometry of b as a mesh for coord. Builders without
// faces are skipped and AddChunk reports false.
func (s *Scene) AddChunk(coord world.ChunkCoord, b *meshing.ChunkMeshBuilder) bool {
	if b.NumFaces() == 0 {
		return false
	}

	verts := b.Vertices()
	positions := make([][3]float32, len(verts))
	normals := make([][3]float32, len(verts))
	for i, v := range verts {
		positions[i] = v.Position
		normals[i] = v.NormalVec()
	}

	name := fmt.Sprintf("chunk_%d_%d_%d", coord.X, coord.Y, coord.Z)
	s.doc.Meshes = append(s.doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(s.doc, b.Indices())),
			Attributes: map[string]uint32{
				"POSITION": modeler.WritePosition(s.doc, positions),
				"NORMAL":   modeler.WriteNormal(s.doc, normals),
			},
		}},
	})

	ox, oy, oz := coord.Origin()
	s.doc.Nodes = append(s.doc.Nodes, &gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(uint32(len(s.doc.Meshes) - 1)),
		Translation: [3]float32{float32(ox), float32(oy), float32(oz)},
		Scale:       [3]float32{1, 1, 1},
	})
	root := s.doc.Scenes[*s.doc.Scene]
	root.Nodes = append(root.Nodes, uint32(len(s.doc.Nodes)-1))
	return true
}

// Len returns the number of chunks in the scene.
func (s *Scene) Len() int {
	return len(s.doc.Nodes)
}

// Document exposes the underlying glTF document.
func (s *Scene) Document() *gltf.Document {
	return s.doc
}

// WriteFile saves the scene as binary glTF.
func (s *Scene) WriteFile(path string) error {
	if err := gltf.SaveBinary(s.doc, path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
