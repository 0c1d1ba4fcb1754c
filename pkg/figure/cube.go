package figure

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

const cubeRoll = math.Pi / 4

// decomposeCube returns the six square faces in the order front, back,
// right, left, top, bottom.
func decomposeCube(d Dimensions, _ options) []Piece {
	side := d[ParamSide]
	half := side / 2
	face := planeGeometry("cube.face", side, side)

	return boxPieces([]boxFace{
		{
			geom: face, normal: gm.UnitZ, offset: half, roll: cubeRoll,
			label: &Label{Text: "L = " + formatLength(side), Offset: gm.Vec3{Y: -half - labelGap}},
		},
		{geom: face, normal: gm.UnitZ.Neg(), offset: half, euler: [3]float64{0, math.Pi, 0}, roll: -cubeRoll},
		{geom: face, normal: gm.UnitX, offset: half, euler: [3]float64{0, math.Pi / 2, 0}, roll: cubeRoll},
		{geom: face, normal: gm.UnitX.Neg(), offset: half, euler: [3]float64{0, -math.Pi / 2, 0}, roll: -cubeRoll},
		{geom: face, normal: gm.UnitY, offset: half, euler: [3]float64{-math.Pi / 2, 0, 0}, roll: cubeRoll},
		{geom: face, normal: gm.UnitY.Neg(), offset: half, euler: [3]float64{math.Pi / 2, 0, 0}, roll: -cubeRoll},
	}, CubeExplosion)
}
