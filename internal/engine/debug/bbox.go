// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/gridmesh/internal/engine/surface"

// WireframeVertexCount is the number of line vertices in a box wireframe (12 edges × 2).
const WireframeVertexCount = 24

// DefaultBoundsPadding keeps the wireframe off coplanar sheet faces.
const DefaultBoundsPadding = 0.02

// BoxWireframe returns line-list vertices for the box spanned by min and max,
// format [x, y, z] per vertex.
func BoxWireframe(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoundsWireframe expands b by padding on every side and returns its
// wireframe. A flat sheet still gets a visible box.
func BoundsWireframe(b surface.Bounds, padding float32) []float32 {
	lo, hi := b.Min, b.Max
	return BoxWireframe(
		lo.X-padding, lo.Y-padding, lo.Z-padding,
		hi.X+padding, hi.Y+padding, hi.Z+padding,
	)
}
