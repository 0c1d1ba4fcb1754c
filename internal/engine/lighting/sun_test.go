package lighting

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	gm "github.com/Faultbox/geosim/pkg/math"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float64
		want               gm.Vec3
	}{
		{0, 0, gm.Vec3{Z: 1}},
		{90, 0, gm.Vec3{X: 1}},
		{0, 90, gm.Vec3{Y: 1}},
		{180, 0, gm.Vec3{Z: -1}},
	}
	for _, tt := range tests {
		got := SunDirection(tt.azimuth, tt.elevation)
		if !got.ApproxEqual(tt.want, 1e-12) {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
		}
	}
}

func TestDefaultSunIsUnitAndAbove(t *testing.T) {
	sun := DefaultSun()
	if !scalar.EqualWithinAbs(sun.Length(), 1, 1e-12) {
		t.Errorf("length %v, want 1", sun.Length())
	}
	if sun.Y <= 0 {
		t.Error("default sun should be above the horizon")
	}
}
