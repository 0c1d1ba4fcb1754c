package figure

import (
	"fmt"
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// Figure is a decomposed solid at a given assembly progress.
type Figure struct {
	Type       ShapeType
	Dimensions Dimensions
	Pieces     []Piece
	Progress   float64
	Metrics    Metrics
}

// New decomposes the solid and places its pieces at the given progress,
// clamped to [0,1].
func New(t ShapeType, dims Dimensions, progress float64, opts ...Option) (*Figure, error) {
	pieces, err := Decompose(t, dims, opts...)
	if err != nil {
		return nil, err
	}
	metrics, err := Compute(t, dims)
	if err != nil {
		return nil, err
	}
	f := &Figure{
		Type:       t,
		Dimensions: dims.Clone(),
		Pieces:     pieces,
		Metrics:    metrics,
	}
	f.SetProgress(progress)
	return f, nil
}

// SetProgress clamps p to [0,1] and re-interpolates every piece.
func (f *Figure) SetProgress(p float64) {
	f.Progress = Clamp01(p)
	Apply(f.Pieces, f.Progress)
}

// Assembled reports whether the figure is fully assembled.
func (f *Figure) Assembled() bool {
	return f.Progress >= 1
}

// Triangles returns the world-space tessellation of every piece.
func (f *Figure) Triangles() []Triangle {
	var tris []Triangle
	for i := range f.Pieces {
		tris = append(tris, f.Pieces[i].WorldTriangles()...)
	}
	return tris
}

// Bounds returns the axis-aligned bounds of the current tessellation.
func (f *Figure) Bounds() (lo, hi gm.Vec3) {
	first := true
	for _, t := range f.Triangles() {
		for _, v := range t {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			lo = gm.Vec3{X: min(lo.X, v.X), Y: min(lo.Y, v.Y), Z: min(lo.Z, v.Z)}
			hi = gm.Vec3{X: max(hi.X, v.X), Y: max(hi.Y, v.Y), Z: max(hi.Z, v.Z)}
		}
	}
	return lo, hi
}

func (f *Figure) String() string {
	return fmt.Sprintf("%s %v progress=%.2f pieces=%d", f.Type, f.Dimensions, f.Progress, len(f.Pieces))
}

// Clamp01 limits p to [0,1]. NaN maps to 0.
func Clamp01(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
