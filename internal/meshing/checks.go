package meshing

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	planarEpsilon = 1e-4
	areaEpsilon   = 1e-8
)

// geometryChecks validates faces as they are added. Problems are logged and
// counted; AddFace still records the face unchanged.
type geometryChecks struct {
	warnings int
}

func (g *geometryChecks) check(pA, pB, pC, pD, nA, nB, nC, nD mgl32.Vec3) {
	if msg := faceProblem(pA, pB, pC, pD, nA, nB, nC, nD); msg != "" {
		g.warnings++
		log.Printf("meshing: suspicious face %v %v %v %v: %s", pA, pB, pC, pD, msg)
	}
}

// faceProblem returns a description of what is wrong with the quad, or "".
func faceProblem(pA, pB, pC, pD, nA, nB, nC, nD mgl32.Vec3) string {
	geomNormal := pB.Sub(pA).Cross(pC.Sub(pA))
	if geomNormal.LenSqr() < areaEpsilon {
		return "degenerate triangle A-B-C"
	}
	second := pD.Sub(pC).Cross(pA.Sub(pC))
	if second.LenSqr() < areaEpsilon {
		return "degenerate triangle C-D-A"
	}

	unit := geomNormal.Normalize()
	if d := pD.Sub(pA).Dot(unit); d > planarEpsilon || d < -planarEpsilon {
		return "corners are not coplanar"
	}
	if second.Dot(geomNormal) <= 0 {
		return "quad is not convex along the A-C diagonal"
	}

	for _, n := range [...]mgl32.Vec3{nA, nB, nC, nD} {
		if n.Dot(unit) <= 0 {
			return "winding disagrees with the supplied normal"
		}
	}
	return ""
}
