package meshing

import "cubeworld/internal/graphics/gpu"

// WorldChunkMesh names the GPU buffers of a finished chunk mesh. The value
// owns nothing by itself: whoever receives it from CreateMesh is responsible
// for calling Release once the buffers are no longer drawn.
type WorldChunkMesh struct {
	VertexBuffer uint32
	IndexBuffer  uint32
	FaceCount    int
}

// IndexCount is the number of indices to draw.
func (m WorldChunkMesh) IndexCount() int {
	return m.FaceCount * IndicesPerFace
}

// TriangleCount is the number of triangles in the index buffer.
func (m WorldChunkMesh) TriangleCount() int {
	return m.FaceCount * 2
}

// VertexCount is the number of vertices in the vertex buffer.
func (m WorldChunkMesh) VertexCount() int {
	return m.FaceCount * VertsPerFace
}

// IsEmpty reports whether there is nothing to draw.
func (m WorldChunkMesh) IsEmpty() bool {
	return m.FaceCount == 0
}

// Release returns both buffers to dev.
func (m WorldChunkMesh) Release(dev gpu.Device) {
	dev.DeleteBuffer(m.VertexBuffer)
	dev.DeleteBuffer(m.IndexBuffer)
}
