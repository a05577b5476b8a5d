// Package picking casts rays from the screen into generated meshes.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gridmesh/internal/engine/surface"
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates to a world-space ray for a
// perspective camera at eye looking at center with the given vertical
// field of view (radians) and world up.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, eye, center, up math.Vec3, fovY float32) Ray {
	// Normalized device coords (-1 to 1), Y up.
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	forward := center.Sub(eye).Normalize()
	right := forward.Cross(up).Normalize()
	camUp := right.Cross(forward)

	tanHalf := math32.Tan(fovY / 2)
	aspect := viewportW / viewportH

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(camUp.Scale(ndcY * tanHalf))
	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// Transform maps the ray through a rigid transform. Direction ignores
// translation.
func (r Ray) Transform(m math.Mat4) Ray {
	origin := m.TransformPoint(r.Origin)
	tip := m.TransformPoint(r.Origin.Add(r.Direction))
	return Ray{Origin: origin, Direction: tip.Sub(origin).Normalize()}
}

// IntersectBounds tests ray intersection with an axis-aligned box using the
// slab method. If the ray starts inside the box, it returns the exit distance.
func (r Ray) IntersectBounds(box surface.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to triangle p0 p1 p2, hit from
// either side (Möller-Trumbore).
func (r Ray) IntersectTriangle(p0, p1, p2 math.Vec3) (t float32, hit bool) {
	const eps = 1e-7

	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	pv := r.Direction.Cross(e2)
	det := e1.Dot(pv)
	if math32.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det

	tv := r.Origin.Sub(p0)
	u := tv.Dot(pv) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	qv := tv.Cross(e1)
	v := r.Direction.Dot(qv) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = e2.Dot(qv) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is the nearest triangle a ray meets.
type Hit struct {
	Triangle int
	Distance float32
	Point    math.Vec3
}

// PickTriangle returns the nearest triangle of buf along r. bounds is used
// as an early-out and may be the zero value to skip it.
func PickTriangle(r Ray, buf *mesh.Buffer, bounds surface.Bounds) (Hit, bool) {
	if bounds != (surface.Bounds{}) {
		if _, ok := r.IntersectBounds(bounds); !ok {
			return Hit{}, false
		}
	}

	best := Hit{Triangle: -1, Distance: math32.MaxFloat32}
	for tri := 0; tri < buf.TriangleCount(); tri++ {
		p0, p1, p2 := buf.Triangle(tri)
		if t, ok := r.IntersectTriangle(p0, p1, p2); ok && t < best.Distance {
			best.Triangle = tri
			best.Distance = t
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
