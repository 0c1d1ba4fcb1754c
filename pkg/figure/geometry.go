package figure

import (
	"math"

	gm "github.com/Faultbox/geosim/pkg/math"
)

// GeometryKind is the shape of a piece in its local frame.
type GeometryKind int

const (
	// KindPlane is a Width×Height rectangle in local XY, normal +Z.
	KindPlane GeometryKind = iota
	// KindTriangle is an equilateral triangle of side Width with its
	// centroid at the origin and apex on local +Y, normal +Z.
	KindTriangle
	// KindDisc is a regular polygon of Segments sides and circumradius
	// Radius in local XY, normal +Z.
	KindDisc
	// KindCylinderArc is an open cylindrical patch of Radius and Height
	// (along local Y) covering [ThetaStart, ThetaStart+ThetaLength],
	// with points (R sinθ, y, R cosθ).
	KindCylinderArc
)

func (k GeometryKind) String() string {
	switch k {
	case KindPlane:
		return "plane"
	case KindTriangle:
		return "triangle"
	case KindDisc:
		return "disc"
	case KindCylinderArc:
		return "cylinder-arc"
	default:
		return "unknown"
	}
}

// Geometry describes the rigid shape of a piece. ID is stable per shape
// family and part, e.g. "cube.face" or "cylinder.segment.2".
type Geometry struct {
	ID          string
	Kind        GeometryKind
	Width       float64
	Height      float64
	Radius      float64
	ThetaStart  float64
	ThetaLength float64
	Segments    int
}

// Triangle is three vertices wound counter-clockwise around the outward
// normal.
type Triangle [3]gm.Vec3

// Normal returns the unit normal of the triangle.
func (t Triangle) Normal() gm.Vec3 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Normalize()
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length() / 2
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() gm.Vec3 {
	return t[0].Add(t[1]).Add(t[2]).Scale(1.0 / 3)
}

func planeGeometry(id string, w, h float64) Geometry {
	return Geometry{ID: id, Kind: KindPlane, Width: w, Height: h}
}

func triangleGeometry(id string, side float64) Geometry {
	return Geometry{ID: id, Kind: KindTriangle, Width: side}
}

func discGeometry(id string, radius float64, segments int) Geometry {
	return Geometry{ID: id, Kind: KindDisc, Radius: radius, Segments: segments}
}

func arcGeometry(id string, radius, height, start, length float64, segments int) Geometry {
	return Geometry{
		ID:          id,
		Kind:        KindCylinderArc,
		Radius:      radius,
		Height:      height,
		ThetaStart:  start,
		ThetaLength: length,
		Segments:    segments,
	}
}

// EquilateralOutline returns the vertices of an equilateral triangle of the
// given side centered on its centroid: apex first, then bottom-left and
// bottom-right.
func EquilateralOutline(side float64) [3]gm.Vec2 {
	h := side * math.Sqrt(3) / 2
	return [3]gm.Vec2{
		{X: 0, Y: h * 2 / 3},
		{X: -side / 2, Y: -h / 3},
		{X: side / 2, Y: -h / 3},
	}
}

// Area returns the exact area of the tessellated geometry.
func (g Geometry) Area() float64 {
	switch g.Kind {
	case KindPlane:
		return g.Width * g.Height
	case KindTriangle:
		return math.Sqrt(3) / 4 * g.Width * g.Width
	case KindDisc:
		n := float64(g.Segments)
		return n / 2 * g.Radius * g.Radius * math.Sin(2*math.Pi/n)
	case KindCylinderArc:
		n := float64(g.Segments)
		chord := 2 * g.Radius * math.Sin(g.ThetaLength/(2*n))
		return n * chord * g.Height
	default:
		return 0
	}
}

// Triangles returns the local-space tessellation.
func (g Geometry) Triangles() []Triangle {
	switch g.Kind {
	case KindPlane:
		hw, hh := g.Width/2, g.Height/2
		a := gm.Vec3{X: -hw, Y: -hh}
		b := gm.Vec3{X: hw, Y: -hh}
		c := gm.Vec3{X: hw, Y: hh}
		d := gm.Vec3{X: -hw, Y: hh}
		return []Triangle{{a, b, c}, {a, c, d}}

	case KindTriangle:
		o := EquilateralOutline(g.Width)
		return []Triangle{{o[0].Vec3(0), o[1].Vec3(0), o[2].Vec3(0)}}

	case KindDisc:
		tris := make([]Triangle, 0, g.Segments)
		step := 2 * math.Pi / float64(g.Segments)
		for i := 0; i < g.Segments; i++ {
			s0, c0 := math.Sincos(float64(i) * step)
			s1, c1 := math.Sincos(float64(i+1) * step)
			tris = append(tris, Triangle{
				{},
				{X: g.Radius * c0, Y: g.Radius * s0},
				{X: g.Radius * c1, Y: g.Radius * s1},
			})
		}
		return tris

	case KindCylinderArc:
		tris := make([]Triangle, 0, 2*g.Segments)
		step := g.ThetaLength / float64(g.Segments)
		hh := g.Height / 2
		for i := 0; i < g.Segments; i++ {
			s0, c0 := math.Sincos(g.ThetaStart + float64(i)*step)
			s1, c1 := math.Sincos(g.ThetaStart + float64(i+1)*step)
			a := gm.Vec3{X: g.Radius * s0, Y: -hh, Z: g.Radius * c0}
			b := gm.Vec3{X: g.Radius * s1, Y: -hh, Z: g.Radius * c1}
			c := gm.Vec3{X: g.Radius * s1, Y: hh, Z: g.Radius * c1}
			d := gm.Vec3{X: g.Radius * s0, Y: hh, Z: g.Radius * c0}
			tris = append(tris, Triangle{a, b, c}, Triangle{a, c, d})
		}
		return tris
	}
	return nil
}
