// Package figure implements the decomposition-and-assembly model of the
// five solid figure families: each solid is an ordered list of rigid
// pieces, each with an exploded start pose and an assembled end pose, and a
// single progress value in [0,1] interpolates every piece between the two.
package figure

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

var (
	// ErrInvalidDimension reports a missing, unknown, non-finite or
	// non-positive dimension parameter.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrUnknownShape reports a shape identifier outside the five families.
	ErrUnknownShape = errors.New("unknown shape type")
)

// ShapeType identifies one of the five figure families.
type ShapeType int

const (
	Cube ShapeType = iota
	Pyramid
	Cuboid
	Prism
	Cylinder
)

// Dimension parameter names.
const (
	ParamSide   = "side"
	ParamWidth  = "width"
	ParamHeight = "height"
	ParamDepth  = "depth"
	ParamBase   = "base"
	ParamLength = "length"
	ParamRadius = "radius"
)

var shapeNames = [...]string{
	Cube:     "cube",
	Pyramid:  "pyramid",
	Cuboid:   "cuboid",
	Prism:    "prism",
	Cylinder: "cylinder",
}

// Parameters in display order.
var shapeParams = [...][]string{
	Cube:     {ParamSide},
	Pyramid:  {ParamSide},
	Cuboid:   {ParamWidth, ParamHeight, ParamDepth},
	Prism:    {ParamBase, ParamLength},
	Cylinder: {ParamRadius, ParamHeight},
}

var shapeDefaults = [...]Dimensions{
	Cube:     {ParamSide: 2},
	Pyramid:  {ParamSide: 3},
	Cuboid:   {ParamWidth: 3, ParamHeight: 1.5, ParamDepth: 2},
	Prism:    {ParamBase: 2, ParamLength: 3},
	Cylinder: {ParamRadius: 1.5, ParamHeight: 3},
}

// Shapes returns every shape type in menu order.
func Shapes() []ShapeType {
	return []ShapeType{Cube, Pyramid, Cuboid, Prism, Cylinder}
}

// ParseShapeType converts a literal identifier such as "cube" to a ShapeType.
func ParseShapeType(s string) (ShapeType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range shapeNames {
		if n == name {
			return ShapeType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Valid reports whether t is one of the five known families.
func (t ShapeType) Valid() bool {
	return t >= Cube && t <= Cylinder
}

// String returns the literal identifier of the shape.
func (t ShapeType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
	return shapeNames[t]
}

// Params returns the dimension parameter names of the shape in display order.
func (t ShapeType) Params() []string {
	if !t.Valid() {
		return nil
	}
	return append([]string(nil), shapeParams[t]...)
}

// DefaultDimensions returns a fresh copy of the default dimensions of t.
func DefaultDimensions(t ShapeType) (Dimensions, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(t))
	}
	return shapeDefaults[t].Clone(), nil
}

// Dimensions maps parameter names to positive lengths.
type Dimensions map[string]float64

// Clone returns an independent copy.
func (d Dimensions) Clone() Dimensions {
	out := make(Dimensions, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Validate checks that d holds exactly the parameters of t and that every
// value is finite and strictly positive.
func (d Dimensions) Validate(t ShapeType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownShape, int(t))
	}
	params := shapeParams[t]
	for _, key := range params {
		v, ok := d[key]
		if !ok {
			return fmt.Errorf("%w: %s requires %q", ErrInvalidDimension, t, key)
		}
		if err := CheckValue(key, v); err != nil {
			return err
		}
	}
	if len(d) != len(params) {
		for _, key := range d.Keys() {
			if !hasParam(params, key) {
				return fmt.Errorf("%w: %s has no parameter %q", ErrInvalidDimension, t, key)
			}
		}
	}
	return nil
}

// CheckValue validates a single dimension value.
func CheckValue(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number", ErrInvalidDimension, key)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s=%g must be positive", ErrInvalidDimension, key, v)
	}
	return nil
}

// Keys returns the parameter names in sorted order.
func (d Dimensions) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func hasParam(params []string, key string) bool {
	for _, p := range params {
		if p == key {
			return true
		}
	}
	return false
}
