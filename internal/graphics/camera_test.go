package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraPositionDistance(t *testing.T) {
	c := NewCamera(800, 600)
	c.Target = mgl32.Vec3{10, 5, -3}
	c.Distance = 20
	for _, yaw := range []float32{0, 45, 190} {
		c.Yaw = yaw
		if d := c.Position().Sub(c.Target).Len(); d < 19.99 || d > 20.01 {
			t.Errorf("yaw %v: eye distance %v, want 20", yaw, d)
		}
	}
}

func TestCameraDefaultLooksDownNegativeZ(t *testing.T) {
	c := NewCamera(800, 600)
	c.Pitch = 0
	c.Distance = 10
	p := c.Position()
	if !p.ApproxEqualThreshold(mgl32.Vec3{0, 0, 10}, 1e-4) {
		t.Errorf("eye at %v, want (0,0,10)", p)
	}
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	c := NewCamera(800, 600)
	c.Orbit(0, 500)
	if c.Pitch != maxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.Orbit(370, -1000)
	if c.Pitch != minPitch || c.Yaw < 9.99 || c.Yaw > 10.01 {
		t.Errorf("pitch=%v yaw=%v", c.Pitch, c.Yaw)
	}
}

func TestCameraZoomClamps(t *testing.T) {
	c := NewCamera(800, 600)
	c.Zoom(0.0001)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want %v", c.Distance, c.MinDistance)
	}
	c.Zoom(-1)
	if c.Distance != c.MinDistance {
		t.Errorf("negative zoom factor should be ignored")
	}
	c.Zoom(1e6)
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestCameraViewportIgnoresZero(t *testing.T) {
	c := NewCamera(900, 600)
	c.SetViewport(0, 0)
	if c.AspectRatio != 1.5 {
		t.Errorf("aspect = %v", c.AspectRatio)
	}
}

func TestFrustumCullsBehindCamera(t *testing.T) {
	c := NewCamera(800, 600)
	c.Pitch = 0
	c.Distance = 10
	f := NewFrustum(c.GetProjectionMatrix().Mul4(c.GetViewMatrix()))

	// target sits at the origin, eye at z=10 looking towards -z
	if !f.IntersectsAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}) {
		t.Errorf("box at the target should be visible")
	}
	if f.IntersectsAABB(mgl32.Vec3{-1, -1, 20}, mgl32.Vec3{1, 1, 22}) {
		t.Errorf("box behind the eye should be culled")
	}
	if f.IntersectsAABB(mgl32.Vec3{-1, -1, -2000}, mgl32.Vec3{1, 1, -1990}) {
		t.Errorf("box beyond the far plane should be culled")
	}
}
