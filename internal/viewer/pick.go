package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gridmesh/internal/engine/picking"
	"github.com/Faultbox/gridmesh/internal/meshgen"
	"github.com/Faultbox/gridmesh/pkg/math"
	"github.com/Faultbox/gridmesh/pkg/mesh"
)

// DescribeTriangle names the grid element that owns triangle tri: a sheet
// quad or a cube face. Both cube vertex modes emit twelve triangles per cube
// in face order.
func DescribeTriangle(req meshgen.Request, tri int) string {
	if req.Kind == meshgen.KindCubes {
		w, h := req.Cubes.Width, req.Cubes.Height
		cube := tri / (mesh.IndicesPerCube / mesh.TriangleLength)
		face := mesh.Face((tri % (mesh.IndicesPerCube / mesh.TriangleLength)) / 2)
		return fmt.Sprintf("cube (%d, %d, %d) %s face", cube%w, (cube/w)%h, cube/(w*h), face)
	}
	quad := tri / 2
	w := req.Sheet.Width
	return fmt.Sprintf("quad (%d, %d)", quad%w, quad/w)
}

// pick logs the element under the given window position.
func (a *App) pick(x, y int) {
	current := a.service.Current()
	if current == nil {
		return
	}

	w, h := a.window.GetSize()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h),
		a.camera.Position(), a.camera.Center, math.Up, a.camera.FovY)

	// Undo the spin so the ray is in mesh space.
	inverse := math.QuatFromAxisAngle(a.spinAxis(), -a.spinAngle*radiansPerDegree).ToMat4()
	ray = ray.Transform(inverse)

	hit, ok := picking.PickTriangle(ray, current.Buffer, a.renderer.Bounds())
	if !ok {
		a.log.Info("picked nothing")
		return
	}
	point := hit.Point.Array()
	a.log.Info("picked",
		zap.String("element", DescribeTriangle(current.Request, hit.Triangle)),
		zap.Int("triangle", hit.Triangle),
		zap.Float32s("point", point[:]),
	)
}
