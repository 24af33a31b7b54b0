package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFaceWindingMatchesNormal(t *testing.T) {
	for _, f := range Faces {
		c := f.Corners(mgl32.Vec3{})
		n := f.Normal()
		tri1 := c[1].Sub(c[0]).Cross(c[2].Sub(c[0]))
		tri2 := c[3].Sub(c[2]).Cross(c[0].Sub(c[2]))
		if tri1.Dot(n) <= 0 || tri2.Dot(n) <= 0 {
			t.Errorf("face %v is not counter-clockwise seen from outside: %v", f, c)
		}
	}
}

func TestFaceCornersLieOnFacePlane(t *testing.T) {
	center := mgl32.Vec3{0.5, 0.5, 0.5}
	for _, f := range Faces {
		n := f.Normal()
		for _, p := range f.Corners(mgl32.Vec3{}) {
			// every corner sits half a unit from the centre along the normal
			if d := p.Sub(center).Dot(n); d != 0.5 {
				t.Errorf("face %v corner %v: distance along normal = %v", f, p, d)
			}
		}
	}
}

func TestFaceCornersTranslate(t *testing.T) {
	origin := mgl32.Vec3{3, -2, 10}
	for _, f := range Faces {
		base := f.Corners(mgl32.Vec3{})
		moved := f.Corners(origin)
		for i := range base {
			if moved[i] != base[i].Add(origin) {
				t.Errorf("face %v corner %d = %v, want %v", f, i, moved[i], base[i].Add(origin))
			}
		}
	}
}

func TestCubeCoversUnitVolume(t *testing.T) {
	pos := mgl32.Vec3{4, 5, 6}
	b := NewChunkMeshBuilder()
	b.AddCube(pos)
	for _, v := range b.Vertices() {
		for i := 0; i < 3; i++ {
			if v.Position[i] != pos[i] && v.Position[i] != pos[i]+1 {
				t.Fatalf("vertex %v outside the unit cube at %v", v.Position, pos)
			}
		}
	}
}

func TestFaceOffsetMatchesNormal(t *testing.T) {
	for _, f := range Faces {
		dx, dy, dz := f.Offset()
		if (mgl32.Vec3{float32(dx), float32(dy), float32(dz)}) != f.Normal() {
			t.Errorf("face %v offset (%d,%d,%d) disagrees with normal", f, dx, dy, dz)
		}
	}
}

func TestFaceMask(t *testing.T) {
	if AllFaces.Count() != 6 {
		t.Errorf("AllFaces.Count() = %d", AllFaces.Count())
	}
	m := MaskOf(FaceXP, FaceZN, FaceXP)
	if m.Count() != 2 || !m.Has(FaceXP) || !m.Has(FaceZN) || m.Has(FaceYP) {
		t.Errorf("MaskOf = %06b", m)
	}
	for _, f := range Faces {
		if !AllFaces.Has(f) {
			t.Errorf("AllFaces missing %v", f)
		}
	}
}

func TestFaceString(t *testing.T) {
	if FaceYN.String() != "-y" || Face(42).String() != "invalid" {
		t.Errorf("unexpected names %q %q", FaceYN.String(), Face(42).String())
	}
}
