package meshing

import (
	"slices"

	"cubeworld/internal/config"
	"cubeworld/internal/graphics/gpu"
	"cubeworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Each quad face is stored as four vertices and two triangles.
const (
	VertsPerFace   = 4
	IndicesPerFace = 6
)

// ChunkMeshBuilder accumulates cube faces for one chunk and turns them into
// a vertex/index buffer pair. Vertices are never shared between faces, so
// adjacent faces keep independent normals.
//
// A builder is owned by a single goroutine; it has no internal locking.
type ChunkMeshBuilder struct {
	vertices []CubeVertex
	indices  []uint32
	offset   uint32 // next vertex slot, always len(vertices)

	checks *geometryChecks
}

// NewChunkMeshBuilder creates an empty builder. Geometry checks are enabled
// when config.DebugGeometryChecks is set.
func NewChunkMeshBuilder() *ChunkMeshBuilder {
	b := &ChunkMeshBuilder{}
	if config.DebugGeometryChecks() {
		b.checks = &geometryChecks{}
	}
	return b
}

// NewChunkMeshBuilderSize creates a builder with room for faces quads.
func NewChunkMeshBuilderSize(faces int) *ChunkMeshBuilder {
	b := NewChunkMeshBuilder()
	b.vertices = make([]CubeVertex, 0, faces*VertsPerFace)
	b.indices = make([]uint32, 0, faces*IndicesPerFace)
	return b
}

// AddFace appends a quad given as four position/normal pairs in
// counter-clockwise order seen from the side the normals point to.
// The quad is split along the A-C diagonal into (A,B,C) and (C,D,A).
// Input is trusted: a clockwise quad silently yields back-facing triangles.
func (b *ChunkMeshBuilder) AddFace(
	pA, nA mgl32.Vec3,
	pB, nB mgl32.Vec3,
	pC, nC mgl32.Vec3,
	pD, nD mgl32.Vec3,
) {
	if b.checks != nil {
		b.checks.check(pA, pB, pC, pD, nA, nB, nC, nD)
	}

	b.vertices = append(b.vertices,
		NewCubeVertex(pA, nA),
		NewCubeVertex(pB, nB),
		NewCubeVertex(pC, nC),
		NewCubeVertex(pD, nD),
	)

	k := b.offset
	b.indices = append(b.indices,
		k, k+1, k+2,
		k+2, k+3, k,
	)
	b.offset += VertsPerFace
}

// AddCube adds all six faces of the unit cube whose minimum corner is position.
func (b *ChunkMeshBuilder) AddCube(position mgl32.Vec3) {
	b.AddCubeFaces(position, AllFaces)
}

// AddCubeFaces adds the faces of the unit cube at position that are in mask,
// in +X, -X, +Y, -Y, +Z, -Z order.
func (b *ChunkMeshBuilder) AddCubeFaces(position mgl32.Vec3, mask FaceMask) {
	n := mask.Count()
	if n == 0 {
		return
	}
	b.vertices = slices.Grow(b.vertices, n*VertsPerFace)
	b.indices = slices.Grow(b.indices, n*IndicesPerFace)
	for _, f := range Faces {
		if !mask.Has(f) {
			continue
		}
		c := f.Corners(position)
		n := f.Normal()
		b.AddFace(c[0], n, c[1], n, c[2], n, c[3], n)
	}
}

// CreateMesh uploads the accumulated vertices and indices through dev and
// returns the resulting handles. An empty builder yields a mesh with zero
// faces and empty buffers. On failure no buffers are left allocated and
// errors.Cause returns the device's error. The builder is not modified.
func (b *ChunkMeshBuilder) CreateMesh(dev gpu.Device) (WorldChunkMesh, error) {
	defer profiling.Track("meshing.CreateMesh")()

	vdata := AppendCubeVertices(make([]byte, 0, len(b.vertices)*CubeVertexSize), b.vertices)
	vbid, err := dev.CreateBuffer(gpu.VertexData, vdata)
	if err != nil {
		return WorldChunkMesh{}, errors.Wrapf(err, "create vertex buffer (%d vertices)", len(b.vertices))
	}

	idata := AppendIndices(make([]byte, 0, len(b.indices)*4), b.indices)
	ibid, err := dev.CreateBuffer(gpu.IndexData, idata)
	if err != nil {
		dev.DeleteBuffer(vbid)
		return WorldChunkMesh{}, errors.Wrapf(err, "create index buffer (%d indices)", len(b.indices))
	}

	return WorldChunkMesh{
		VertexBuffer: vbid,
		IndexBuffer:  ibid,
		FaceCount:    b.NumFaces(),
	}, nil
}

// NumIndices returns the number of triangle indices accumulated so far.
func (b *ChunkMeshBuilder) NumIndices() int {
	return len(b.indices)
}

// NumFaces returns the number of quads accumulated so far.
func (b *ChunkMeshBuilder) NumFaces() int {
	return len(b.indices) / IndicesPerFace
}

// NumVerts returns the number of vertices accumulated so far.
func (b *ChunkMeshBuilder) NumVerts() int {
	return len(b.vertices)
}

// Vertices exposes the vertex sequence in buffer order. Callers must not modify it.
func (b *ChunkMeshBuilder) Vertices() []CubeVertex {
	return b.vertices
}

// Indices exposes the index sequence in buffer order. Callers must not modify it.
func (b *ChunkMeshBuilder) Indices() []uint32 {
	return b.indices
}

// Warnings returns how many faces failed the debug geometry checks.
// It is always zero when checks are disabled.
func (b *ChunkMeshBuilder) Warnings() int {
	if b.checks == nil {
		return 0
	}
	return b.checks.warnings
}

// Reset empties the builder for another chunk, keeping allocated capacity,
// so a caller meshing chunks one after another can reuse a single builder.
// Pool workers do not; each job gets a fresh builder.
func (b *ChunkMeshBuilder) Reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.offset = 0
	if b.checks != nil {
		b.checks.warnings = 0
	}
}
