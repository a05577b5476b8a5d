// Package lighting provides the directional light used to shade meshes.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/gridmesh/pkg/math"
)

// SunDirection converts azimuth and elevation angles in degrees to a unit
// vector pointing towards the light. Azimuth rotates around +Y starting at
// +Z; elevation is measured up from the XZ plane.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180

	cosEl := math32.Cos(el)
	return math.Vec3{
		X: cosEl * math32.Sin(az),
		Y: math32.Sin(el),
		Z: cosEl * math32.Cos(az),
	}
}

// TravelDirection returns the direction light travels, the negation of
// SunDirection, as shaders expect it.
func TravelDirection(azimuth, elevation float32) math.Vec3 {
	return SunDirection(azimuth, elevation).Scale(-1)
}
