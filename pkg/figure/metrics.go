package figure

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// PerimeterLabel names the perimeter metric in every family.
const PerimeterLabel = "Base perimeter"

// Formula holds the plain-text templates shown next to the metrics.
type Formula struct {
	Volume    string
	Area      string
	Perimeter string
}

// Metrics are the closed-form measures of a figure at full precision.
type Metrics struct {
	Perimeter      float64
	Area           float64
	Volume         float64
	PerimeterLabel string
	Formula        Formula
}

var formulas = [...]Formula{
	Cube:     {Volume: "V = L³", Area: "A = 6L²", Perimeter: "P = 4L"},
	Pyramid:  {Volume: "V = L³ / (6√2)", Area: "A = √3 L²", Perimeter: "P = 3L"},
	Cuboid:   {Volume: "V = W × H × D", Area: "A = 2(WH + WD + HD)", Perimeter: "P = 2(W + D)"},
	Prism:    {Volume: "V = A_base × L", Area: "A = 2(A_base) + 3(B × L)", Perimeter: "P = 3B"},
	Cylinder: {Volume: "V = πr²h", Area: "A = 2πr(r + h)", Perimeter: "P = 2πr"},
}

// Compute returns the metrics of the solid.
func Compute(t ShapeType, dims Dimensions) (Metrics, error) {
	if err := dims.Validate(t); err != nil {
		return Metrics{}, fmt.Errorf("compute metrics: %w", err)
	}

	m := Metrics{PerimeterLabel: PerimeterLabel, Formula: formulas[t]}
	switch t {
	case Cube:
		l := dims[ParamSide]
		m.Perimeter = 4 * l
		m.Area = 6 * l * l
		m.Volume = l * l * l
	case Pyramid:
		l := dims[ParamSide]
		m.Perimeter = 3 * l
		m.Area = math.Sqrt(3) * l * l
		m.Volume = l * l * l / (6 * math.Sqrt2)
	case Cuboid:
		w, h, d := dims[ParamWidth], dims[ParamHeight], dims[ParamDepth]
		m.Perimeter = 2 * (w + d)
		m.Area = 2 * (w*h + w*d + h*d)
		m.Volume = w * h * d
	case Prism:
		b, l := dims[ParamBase], dims[ParamLength]
		baseArea := math.Sqrt(3) / 4 * b * b
		m.Perimeter = 3 * b
		m.Area = 2*baseArea + 3*b*l
		m.Volume = baseArea * l
	case Cylinder:
		r, h := dims[ParamRadius], dims[ParamHeight]
		m.Perimeter = 2 * math.Pi * r
		m.Area = 2 * math.Pi * r * (r + h)
		m.Volume = math.Pi * r * r * h
	}
	return m, nil
}

// Rounded returns a copy with values rounded to two decimals.
func (m Metrics) Rounded() Metrics {
	m.Perimeter = scalar.Round(m.Perimeter, 2)
	m.Area = scalar.Round(m.Area, 2)
	m.Volume = scalar.Round(m.Volume, 2)
	return m
}

// Display returns perimeter, area and volume formatted with two decimals.
func (m Metrics) Display() (perimeter, area, volume string) {
	r := m.Rounded()
	return fmt.Sprintf("%.2f", r.Perimeter), fmt.Sprintf("%.2f", r.Area), fmt.Sprintf("%.2f", r.Volume)
}

func (m Metrics) String() string {
	p, a, v := m.Display()
	return fmt.Sprintf("%s %s, area %s, volume %s", m.PerimeterLabel, p, a, v)
}
