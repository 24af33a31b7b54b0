package meshing

import "github.com/go-gl/mathgl/mgl32"

// Face identifies one side of a unit cube by its outward normal.
type Face int

const (
	FaceXP Face = iota // +X (east)
	FaceXN             // -X (west)
	FaceYP             // +Y (top)
	FaceYN             // -Y (bottom)
	FaceZP             // +Z (south)
	FaceZN             // -Z (north)
	faceCount
)

// Faces lists every cube face in the order AddCube emits them.
var Faces = [faceCount]Face{FaceXP, FaceXN, FaceYP, FaceYN, FaceZP, FaceZN}

var faceOffsets = [faceCount][3]int{
	FaceXP: {1, 0, 0},
	FaceXN: {-1, 0, 0},
	FaceYP: {0, 1, 0},
	FaceYN: {0, -1, 0},
	FaceZP: {0, 0, 1},
	FaceZN: {0, 0, -1},
}

// Quad corners relative to the cube's minimum corner, counter-clockwise
// when viewed from outside the cube.
var faceCorners = [faceCount][4]mgl32.Vec3{
	FaceXP: {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	FaceXN: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	FaceYP: {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	FaceYN: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	FaceZP: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	FaceZN: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

var faceNames = [faceCount]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f < 0 || f >= faceCount {
		return "invalid"
	}
	return faceNames[f]
}

// Offset returns the block-grid step towards the neighbour sharing this face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// Corners returns the four quad corners of the face for a unit cube whose
// minimum corner is origin.
func (f Face) Corners(origin mgl32.Vec3) [4]mgl32.Vec3 {
	c := faceCorners[f]
	for i := range c {
		c[i] = c[i].Add(origin)
	}
	return c
}

// FaceMask is a set of cube faces.
type FaceMask uint8

// AllFaces selects every side of a cube.
const AllFaces FaceMask = 1<<faceCount - 1

// MaskOf builds a mask from individual faces.
func MaskOf(faces ...Face) FaceMask {
	var m FaceMask
	for _, f := range faces {
		m |= 1 << f
	}
	return m
}

// Has reports whether f is in the mask.
func (m FaceMask) Has(f Face) bool {
	return m&(1<<f) != 0
}

// Count returns the number of faces in the mask.
func (m FaceMask) Count() int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}
