package figure

import (
	"fmt"
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

const (
	cylinderCapSegments = 32
	cylinderArcSegments = 16
	cylinderCapRoll     = math.Pi / 4
)

// Start directions of the four side segments in the XZ plane.
var segmentSpread = [4][2]float64{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

// decomposeCylinder returns the top and bottom caps followed by four
// quarter-turn side segments. Segments are modeled in place, so their end
// pose is the identity.
func decomposeCylinder(d Dimensions, _ options) []Piece {
	r, h := d[ParamRadius], d[ParamHeight]
	capGeom := discGeometry("cylinder.cap", r, cylinderCapSegments)

	pieces := make([]Piece, 0, 6)
	for _, c := range []struct {
		dir   float64
		label *Label
	}{
		{dir: 1, label: &Label{Text: "r = " + formatLength(r), Offset: gm.Vec3{X: r / 2}}},
		{dir: -1},
	} {
		end := PoseEuler(gm.Vec3{Y: c.dir * h / 2}, -c.dir*math.Pi/2, 0, 0)
		pieces = append(pieces, Piece{
			Geometry: capGeom,
			Start: Pose{
				Position:    gm.Vec3{Y: c.dir * (h/2 + CylinderExplosion)},
				Orientation: end.Orientation.Mul(gm.QuatFromAxisAngle(gm.UnitZ, c.dir*cylinderCapRoll)).Normalize(),
			},
			End:   end,
			Label: c.label,
		})
	}

	for k, spread := range segmentSpread {
		geom := arcGeometry(fmt.Sprintf("cylinder.segment.%d", k), r, h,
			float64(k)*math.Pi/2, math.Pi/2, cylinderArcSegments)
		p := Piece{
			Geometry: geom,
			Start: Pose{
				Position:    gm.Vec3{X: spread[0] * CylinderExplosion, Z: spread[1] * CylinderExplosion},
				Orientation: gm.QuatIdentity(),
			},
			End: Pose{Orientation: gm.QuatIdentity()},
		}
		if k == 0 {
			p.Label = &Label{Text: "h = " + formatLength(h), Offset: gm.Vec3{X: r + labelGap}}
		}
		pieces = append(pieces, p)
	}
	return pieces
}
