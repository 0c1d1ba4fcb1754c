package figure

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

const prismCapRoll = math.Pi / 4

// decomposePrism returns the two triangular caps followed by the bottom,
// right and left lateral faces. The prism runs along Z; its cross-section
// is centered on the triangle centroid.
func decomposePrism(d Dimensions, _ options) []Piece {
	base, length := d[ParamBase], d[ParamLength]
	hTri := base * math.Sqrt(3) / 2
	capGeom := triangleGeometry("prism.cap", base)
	side := planeGeometry("prism.side", base, length)

	pieces := make([]Piece, 0, 5)

	// Caps
	for _, c := range []struct {
		dir   float64
		yaw   float64
		label *Label
	}{
		{dir: 1, yaw: 0, label: &Label{Text: "B = " + formatLength(base), Offset: gm.Vec3{Y: -base / 2}}},
		{dir: -1, yaw: math.Pi},
	} {
		end := PoseEuler(gm.Vec3{Z: c.dir * length / 2}, 0, c.yaw, 0)
		pieces = append(pieces, Piece{
			Geometry: capGeom,
			Start: Pose{
				Position:    gm.Vec3{Z: c.dir * (length/2 + PrismExplosion)},
				Orientation: end.Orientation.Mul(gm.QuatFromAxisAngle(gm.UnitZ, c.dir*prismCapRoll)).Normalize(),
			},
			End:   end,
			Label: c.label,
		})
	}

	// Bottom keeps its orientation while it slides in.
	bottomEnd := PoseEuler(gm.Vec3{Y: -hTri / 3}, math.Pi/2, 0, 0)
	pieces = append(pieces, Piece{
		Geometry: side,
		Start: Pose{
			Position:    gm.Vec3{Y: -hTri/3 - PrismExplosion},
			Orientation: bottomEnd.Orientation,
		},
		End:   bottomEnd,
		Label: &Label{Text: "L = " + formatLength(length), Offset: gm.Vec3{X: base/2 + 0.5}},
	})

	// Slanted faces keep their long edge along Z.
	sqrt3 := math.Sqrt(3)
	for _, n := range []gm.Vec3{{X: sqrt3 / 2, Y: 0.5}, {X: -sqrt3 / 2, Y: 0.5}} {
		center := gm.Vec3{X: math.Copysign(base/4, n.X), Y: hTri / 6}
		pieces = append(pieces, Piece{
			Geometry: side,
			Start: Pose{
				Position:    center.Add(n.Scale(PrismExplosion)),
				Orientation: gm.QuatIdentity(),
			},
			End: Pose{
				Position:    center,
				Orientation: gm.QuatLookRotation(n, gm.UnitZ),
			},
		})
	}
	return pieces
}
