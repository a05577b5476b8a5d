package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/gridmesh/pkg/math"
)

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 3, Y: -1, Z: 2}

	for _, yaw := range []float32{0, 1, 2.5, -2} {
		c.Yaw = yaw
		d := c.Position().Sub(c.Center).Length()
		if math32.Abs(d-c.Distance) > 1e-4 {
			t.Errorf("yaw %f: distance %f, want %f", yaw, d, c.Distance)
		}
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch %f, want %f", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch %f, want %f", c.Pitch, c.MinPitch)
	}
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 100; i++ {
		c.HandleZoom(5)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance %f, want %f", c.Distance, c.MinDistance)
	}
}

func TestFitSphere(t *testing.T) {
	c := NewOrbitCamera()
	center := math.Vec3{X: 0, Y: 1.5, Z: 6}
	c.FitSphere(center, 20)

	if c.Center != center {
		t.Errorf("center %v, want %v", c.Center, center)
	}
	want := 20 / math32.Sin(c.FovY/2)
	if math32.Abs(c.Distance-want) > 1e-3 {
		t.Errorf("distance %f, want %f", c.Distance, want)
	}
	if c.Far < c.Distance+20 {
		t.Errorf("far plane %f clips the sphere", c.Far)
	}

	// Huge meshes raise the distance limit instead of clipping.
	c.FitSphere(center, 1000)
	if c.Distance < 1000 {
		t.Errorf("distance %f should clear a radius of 1000", c.Distance)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	v := c.ViewMatrix()

	p := v.TransformPoint(c.Center)
	if math32.Abs(p.X) > 1e-4 || math32.Abs(p.Y) > 1e-4 || p.Z >= 0 {
		t.Errorf("center should map onto the negative Z axis, got %v", p)
	}
}
