// Package lighting provides the directional light shared by the viewer
// and the snapshot renderer.
package lighting

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// Default sun placement: front-right and above the figure.
const (
	DefaultAzimuth   = 35.0
	DefaultElevation = 50.0
)

// SunDirection converts azimuth (rotation around Y from +Z, degrees) and
// elevation (from the horizon, degrees) into a unit vector pointing
// towards the sun.
func SunDirection(azimuth, elevation float64) gm.Vec3 {
	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180

	return gm.Vec3{
		X: math.Cos(el) * math.Sin(az),
		Y: math.Sin(el),
		Z: math.Cos(el) * math.Cos(az),
	}
}

// DefaultSun returns the direction of the default sun.
func DefaultSun() gm.Vec3 {
	return SunDirection(DefaultAzimuth, DefaultElevation)
}
