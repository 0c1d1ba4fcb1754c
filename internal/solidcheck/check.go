package solidcheck

import (
	"fmt"
	"math"

	"github.com/Faultbox/geosim/pkg/figure"
)

// DefaultTolerance is the largest accepted distance from the surface.
const DefaultTolerance = 1e-6

// PieceReport is the surface deviation of one piece.
type PieceReport struct {
	Index        int
	GeometryID   string
	MaxDeviation float64
	Samples      int
}

// Report is the outcome of Check.
type Report struct {
	Shape        figure.ShapeType
	Tolerance    float64
	MaxDeviation float64
	Pieces       []PieceReport
}

// OK reports whether every sample lies within the tolerance.
func (r Report) OK() bool {
	return r.MaxDeviation <= r.Tolerance
}

// Failed returns the pieces outside the tolerance.
func (r Report) Failed() []PieceReport {
	var out []PieceReport
	for _, p := range r.Pieces {
		if p.MaxDeviation > r.Tolerance {
			out = append(out, p)
		}
	}
	return out
}

// Check samples every piece of the figure at its current pose and measures
// the distance of the samples to the solid's surface. Tessellation
// vertices are sampled for every kind, triangle centroids only for flat
// kinds since a chord of a curved patch lies inside the solid.
func Check(fig *figure.Figure, tol float64) (Report, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	solid, err := Solid(fig.Type, fig.Dimensions)
	if err != nil {
		return Report{}, fmt.Errorf("solid %s: %w", fig.Type, err)
	}

	report := Report{Shape: fig.Type, Tolerance: tol}
	for i := range fig.Pieces {
		p := &fig.Pieces[i]
		pr := PieceReport{Index: i, GeometryID: p.GeometryID()}
		flat := p.Geometry.Kind != figure.KindCylinderArc
		for _, tri := range p.WorldTriangles() {
			for _, v := range tri {
				pr.MaxDeviation = math.Max(pr.MaxDeviation, math.Abs(solid.Evaluate(toV3(v))))
				pr.Samples++
			}
			if flat {
				pr.MaxDeviation = math.Max(pr.MaxDeviation, math.Abs(solid.Evaluate(toV3(tri.Centroid()))))
				pr.Samples++
			}
		}
		report.MaxDeviation = math.Max(report.MaxDeviation, pr.MaxDeviation)
		report.Pieces = append(report.Pieces, pr)
	}
	return report, nil
}
