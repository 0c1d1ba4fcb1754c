package figure

import (
	"fmt"
	"math/rand/v2"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// Explosion distances: how far each piece starts from its assembled place.
const (
	CubeExplosion     = 3.0
	CuboidExplosion   = 3.0
	PyramidExplosion  = 2.5
	PrismExplosion    = 2.5
	CylinderExplosion = 2.5
)

// DefaultJitter is the half-range of the random start tilt of the pyramid
// lateral faces, in radians.
const DefaultJitter = 0.5

// labelGap separates edge labels from the edge they annotate.
const labelGap = 0.2

type options struct {
	seed   uint64
	jitter float64
}

// Option configures Decompose.
type Option func(*options)

// WithSeed sets the seed of the start-orientation perturbation.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithJitter sets the perturbation half-range in radians. Zero disables it.
func WithJitter(amplitude float64) Option {
	return func(o *options) {
		o.jitter = amplitude
	}
}

func buildOptions(opts []Option) options {
	o := options{jitter: DefaultJitter}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// rng returns a generator that depends only on the seed, so repeated
// decompositions produce the same poses.
func (o options) rng() *rand.Rand {
	return rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
}

type decomposer func(d Dimensions, o options) []Piece

var decomposers = [...]decomposer{
	Cube:     decomposeCube,
	Pyramid:  decomposePyramid,
	Cuboid:   decomposeCuboid,
	Prism:    decomposePrism,
	Cylinder: decomposeCylinder,
}

// Decompose splits the solid into its pieces. Every piece is returned at
// progress 0: Current equals Start.
func Decompose(t ShapeType, dims Dimensions, opts ...Option) ([]Piece, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("decompose: %w: %d", ErrUnknownShape, int(t))
	}
	if err := dims.Validate(t); err != nil {
		return nil, fmt.Errorf("decompose %s: %w", t, err)
	}
	pieces := decomposers[t](dims, buildOptions(opts))
	for i := range pieces {
		pieces[i].Current = pieces[i].Start
	}
	return pieces, nil
}

// ExplosionDistance returns the explosion distance of the shape family.
func ExplosionDistance(t ShapeType) float64 {
	switch t {
	case Cube:
		return CubeExplosion
	case Cuboid:
		return CuboidExplosion
	case Pyramid:
		return PyramidExplosion
	case Prism:
		return PrismExplosion
	case Cylinder:
		return CylinderExplosion
	}
	return 0
}

// boxFace describes one face of an axis-aligned box.
type boxFace struct {
	geom   Geometry
	normal gm.Vec3
	offset float64
	euler  [3]float64
	roll   float64
	label  *Label
}

// boxPieces lays out axis-aligned faces: each starts pushed out along its
// normal and rolled about it.
func boxPieces(faces []boxFace, explosion float64) []Piece {
	pieces := make([]Piece, 0, len(faces))
	for _, f := range faces {
		end := PoseEuler(f.normal.Scale(f.offset), f.euler[0], f.euler[1], f.euler[2])
		start := Pose{
			Position:    f.normal.Scale(f.offset + explosion),
			Orientation: end.Orientation.Mul(gm.QuatFromAxisAngle(gm.UnitZ, f.roll)).Normalize(),
		}
		pieces = append(pieces, Piece{
			Geometry: f.geom,
			Start:    start,
			End:      end,
			Label:    f.label,
		})
	}
	return pieces
}

func formatLength(v float64) string {
	return fmt.Sprintf("%g", v)
}
