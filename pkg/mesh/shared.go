package mesh

import "github.com/Faultbox/gridmesh/pkg/math"

// sharedUVs is cycled across lattice points in emission order. Shared
// vertices cannot follow faces, so this only gives a recognisable pattern.
var sharedUVs = [8]math.Vec2{
	{X: 0, Y: 0.5}, {X: 0.25, Y: 0.5}, {X: 0, Y: 0.75}, {X: 0.25, Y: 0.75},
	{X: 0, Y: 0.5}, {X: 0.25, Y: 0.5}, {X: 0, Y: 0.75}, {X: 0.25, Y: 0.75},
}

// sharedCubeTriangles returns the 12 triangles of a cube as offsets from
// its minimum lattice point. Face order matches faceCorners.
func sharedCubeTriangles(width, height int) [2 * FaceCount][TriangleLength]uint32 {
	w1 := uint32(width + 1)
	wh1 := w1 * uint32(height+1)

	v1 := uint32(0)    // (0,0,0)
	v2 := uint32(1)    // (1,0,0)
	v3 := wh1          // (0,0,1)
	v4 := wh1 + 1      // (1,0,1)
	v5 := w1           // (0,1,0)
	v6 := 1 + w1       // (1,1,0)
	v7 := w1 + wh1     // (0,1,1)
	v8 := 1 + w1 + wh1 // (1,1,1)

	return [2 * FaceCount][TriangleLength]uint32{
		{v2, v4, v1}, {v4, v3, v1}, // bottom
		{v4, v8, v3}, {v8, v7, v3}, // back
		{v6, v4, v2}, {v6, v8, v4}, // right
		{v1, v6, v2}, {v1, v5, v6}, // front
		{v3, v5, v1}, {v3, v7, v5}, // left
		{v5, v8, v6}, {v5, v7, v8}, // top
	}
}

func createSharedLattice(buf *Buffer, spec CubeSpec) {
	w1 := spec.Width + 1
	wh1 := w1 * (spec.Height + 1)

	uvIndex := 0
	for z := 0; z <= spec.Depth; z++ {
		for y := 0; y <= spec.Height; y++ {
			for x := 0; x <= spec.Width; x++ {
				index := x + y*w1 + z*wh1
				buf.Positions[index] = spec.Offset.Add(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
				buf.UVs[index] = sharedUVs[uvIndex]
				uvIndex = (uvIndex + 1) % len(sharedUVs)
			}
		}
	}

	triangles := sharedCubeTriangles(spec.Width, spec.Height)
	for z := 0; z < spec.Depth; z++ {
		for y := 0; y < spec.Height; y++ {
			for x := 0; x < spec.Width; x++ {
				slot := IndicesPerCube * (x + y*spec.Width + z*spec.Width*spec.Height)
				vertexIndex := uint32(x + y*w1 + z*wh1)

				for i, tri := range triangles {
					for j, corner := range tri {
						buf.Indices[slot+i*TriangleLength+j] = vertexIndex + corner
					}
				}
			}
		}
	}
}
