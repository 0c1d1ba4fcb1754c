package figure

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

const cuboidRoll = math.Pi / 8

// decomposeCuboid follows the cube layout with three face sizes.
func decomposeCuboid(d Dimensions, _ options) []Piece {
	w, h, depth := d[ParamWidth], d[ParamHeight], d[ParamDepth]
	frontBack := planeGeometry("cuboid.front-back", w, h)
	leftRight := planeGeometry("cuboid.left-right", depth, h)
	topBottom := planeGeometry("cuboid.top-bottom", w, depth)

	return boxPieces([]boxFace{
		{
			geom: frontBack, normal: gm.UnitZ, offset: depth / 2, roll: cuboidRoll,
			label: &Label{Text: "W = " + formatLength(w), Offset: gm.Vec3{Y: -h/2 - labelGap}},
		},
		{geom: frontBack, normal: gm.UnitZ.Neg(), offset: depth / 2, euler: [3]float64{0, math.Pi, 0}, roll: -cuboidRoll},
		{
			geom: leftRight, normal: gm.UnitX, offset: w / 2, euler: [3]float64{0, math.Pi / 2, 0}, roll: cuboidRoll,
			label: &Label{Text: "H = " + formatLength(h), Offset: gm.Vec3{Z: depth/2 + labelGap}},
		},
		{geom: leftRight, normal: gm.UnitX.Neg(), offset: w / 2, euler: [3]float64{0, -math.Pi / 2, 0}, roll: -cuboidRoll},
		{
			geom: topBottom, normal: gm.UnitY, offset: h / 2, euler: [3]float64{-math.Pi / 2, 0, 0}, roll: cuboidRoll,
			label: &Label{Text: "D = " + formatLength(depth), Offset: gm.Vec3{X: w/2 + labelGap}},
		},
		{geom: topBottom, normal: gm.UnitY.Neg(), offset: h / 2, euler: [3]float64{math.Pi / 2, 0, 0}, roll: -cuboidRoll},
	}, CuboidExplosion)
}
