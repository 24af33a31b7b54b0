package meshing

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CubeVertexSize is the byte footprint of one CubeVertex in a vertex buffer:
// position as 3 x float32, normal packed into one INT_2_10_10_10_REV word.
const CubeVertexSize = 16

// Attribute byte offsets inside a packed CubeVertex.
const (
	PositionOffset = 0
	NormalOffset   = 12
)

// CubeVertex is the GPU vertex record for cube meshes.
type CubeVertex struct {
	Position mgl32.Vec3
	Normal   uint32 // signed normalized 10:10:10:2, x in the low bits
}

// NewCubeVertex packs a position and normal.
func NewCubeVertex(pos, normal mgl32.Vec3) CubeVertex {
	return CubeVertex{Position: pos, Normal: PackNormal(normal)}
}

// NormalVec unpacks the vertex normal.
func (v CubeVertex) NormalVec() mgl32.Vec3 {
	return UnpackNormal(v.Normal)
}

// PackNormal encodes n into the INT_2_10_10_10_REV layout with w = 0.
// Components are clamped to [-1, 1].
func PackNormal(n mgl32.Vec3) uint32 {
	return packSnorm10(n[0]) | packSnorm10(n[1])<<10 | packSnorm10(n[2])<<20
}

// UnpackNormal decodes a word produced by PackNormal.
func UnpackNormal(p uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		unpackSnorm10(p),
		unpackSnorm10(p >> 10),
		unpackSnorm10(p >> 20),
	}
}

func packSnorm10(f float32) uint32 {
	f = mgl32.Clamp(f, -1, 1)
	i := int32(math.Round(float64(f) * 511))
	return uint32(i) & 0x3FF
}

func unpackSnorm10(bits uint32) float32 {
	// sign-extend the low 10 bits
	i := int32(bits<<22) >> 22
	return max(float32(i)/511, -1)
}

// AppendCubeVertices appends the little-endian buffer encoding of vs to dst.
func AppendCubeVertices(dst []byte, vs []CubeVertex) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[0]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[1]))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Position[2]))
		dst = binary.LittleEndian.AppendUint32(dst, v.Normal)
	}
	return dst
}

// DecodeCubeVertices is the inverse of AppendCubeVertices. Trailing bytes
// that do not form a whole vertex are ignored.
func DecodeCubeVertices(data []byte) []CubeVertex {
	out := make([]CubeVertex, 0, len(data)/CubeVertexSize)
	for len(data) >= CubeVertexSize {
		out = append(out, CubeVertex{
			Position: mgl32.Vec3{
				math.Float32frombits(binary.LittleEndian.Uint32(data[0:])),
				math.Float32frombits(binary.LittleEndian.Uint32(data[4:])),
				math.Float32frombits(binary.LittleEndian.Uint32(data[8:])),
			},
			Normal: binary.LittleEndian.Uint32(data[12:]),
		})
		data = data[CubeVertexSize:]
	}
	return out
}

// AppendIndices appends the little-endian uint32 encoding of idx to dst.
func AppendIndices(dst []byte, idx []uint32) []byte {
	for _, i := range idx {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// DecodeIndices is the inverse of AppendIndices.
func DecodeIndices(data []byte) []uint32 {
	out := make([]uint32, 0, len(data)/4)
	for len(data) >= 4 {
		out = append(out, binary.LittleEndian.Uint32(data))
		data = data[4:]
	}
	return out
}
