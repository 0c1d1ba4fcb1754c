package figure

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// decomposePyramid splits the regular tetrahedron of edge L into its base
// and three lateral faces. The solid's centroid sits at the origin, so every
// face centroid lies at the inradius c = L/(2√6).
func decomposePyramid(d Dimensions, o options) []Piece {
	side := d[ParamSide]
	inradius := side / (2 * math.Sqrt(6))
	face := triangleGeometry("pyramid.face", side)

	// Base faces -Y with one vertex toward -Z so that its edges coincide
	// with the lateral faces.
	baseEnd := PoseEuler(gm.Vec3{Y: -inradius}, math.Pi/2, 0, math.Pi)
	pieces := make([]Piece, 0, 4)
	pieces = append(pieces, Piece{
		Geometry: face,
		Start: Pose{
			Position:    gm.Vec3{Y: -inradius - PyramidExplosion},
			Orientation: baseEnd.Orientation.Mul(gm.QuatFromAxisAngle(gm.UnitZ, math.Pi)).Normalize(),
		},
		End:   baseEnd,
		Label: &Label{Text: "L = " + formatLength(side), Offset: gm.Vec3{Y: -side / 4}},
	})

	rng := o.rng()
	for i := 0; i < 3; i++ {
		normal := lateralNormal(i)
		end := Pose{
			Position:    normal.Scale(inradius),
			Orientation: gm.QuatLookRotation(normal, gm.UnitY),
		}
		tilt := gm.QuatFromEuler(
			(rng.Float64()-0.5)*2*o.jitter,
			(rng.Float64()-0.5)*2*o.jitter,
			(rng.Float64()-0.5)*2*o.jitter,
		)
		pieces = append(pieces, Piece{
			Geometry: face,
			Start: Pose{
				Position:    end.Position.Add(normal.Scale(PyramidExplosion)),
				Orientation: end.Orientation.Mul(tilt).Normalize(),
			},
			End: end,
		})
	}
	return pieces
}

// lateralNormal returns the outward unit normal of lateral face i. The
// normals are spaced 120° about the vertical axis and tilt up by
// asin(1/3).
func lateralNormal(i int) gm.Vec3 {
	s, c := math.Sincos(float64(i) * 2 * math.Pi / 3)
	k := math.Sqrt(8) / 3
	return gm.Vec3{X: s * k, Y: 1.0 / 3, Z: c * k}
}
