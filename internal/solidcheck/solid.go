// Package solidcheck models the five solids as sdfx signed distance
// functions and verifies that an assembled figure lies on the solid's
// surface.
package solidcheck

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	gm "github.com/Faultbox/geosim/pkg/math"
	"github.com/Faultbox/geosim/pkg/figure"
)

// Solid returns the signed distance function of the assembled solid, in
// the same frame the decomposer places the pieces.
func Solid(t figure.ShapeType, dims figure.Dimensions) (sdf.SDF3, error) {
	if err := dims.Validate(t); err != nil {
		return nil, err
	}

	switch t {
	case figure.Cube:
		l := dims[figure.ParamSide]
		return sdf.Box3D(v3.Vec{X: l, Y: l, Z: l}, 0)

	case figure.Cuboid:
		return sdf.Box3D(v3.Vec{
			X: dims[figure.ParamWidth],
			Y: dims[figure.ParamHeight],
			Z: dims[figure.ParamDepth],
		}, 0)

	case figure.Pyramid:
		return newTetrahedron(dims[figure.ParamSide]), nil

	case figure.Prism:
		outline := figure.EquilateralOutline(dims[figure.ParamBase])
		vertices := make([]v2.Vec, 0, len(outline))
		for _, v := range outline {
			vertices = append(vertices, v2.Vec{X: v.X, Y: v.Y})
		}
		section, err := sdf.Polygon2D(vertices)
		if err != nil {
			return nil, fmt.Errorf("prism section: %w", err)
		}
		return sdf.Extrude3D(section, dims[figure.ParamLength]), nil

	case figure.Cylinder:
		// sdfx cylinders run along Z; the figure's axis is Y.
		c, err := sdf.Cylinder3D(dims[figure.ParamHeight], dims[figure.ParamRadius], 0)
		if err != nil {
			return nil, err
		}
		return sdf.Transform3D(c, sdf.RotateX(math.Pi/2)), nil
	}
	return nil, fmt.Errorf("%w: %d", figure.ErrUnknownShape, int(t))
}

// ReferenceMesh tessellates the solid with uniform marching cubes.
func ReferenceMesh(t figure.ShapeType, dims figure.Dimensions, cells int) ([]figure.Triangle, error) {
	s, err := Solid(t, dims)
	if err != nil {
		return nil, err
	}
	if cells <= 0 {
		return nil, fmt.Errorf("marching cubes cells %d must be positive", cells)
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	out := make([]figure.Triangle, 0, len(tris))
	for _, tri := range tris {
		out = append(out, figure.Triangle{fromV3(tri[0]), fromV3(tri[1]), fromV3(tri[2])})
	}
	return out, nil
}

// tetrahedron is the regular tetrahedron of the pyramid figure: centroid
// at the origin, base facing -Y. It is the intersection of the four face
// half-spaces, which evaluates to zero exactly on the faces.
type tetrahedron struct {
	normals  [4]v3.Vec
	inradius float64
	bb       sdf.Box3
}

func newTetrahedron(side float64) *tetrahedron {
	r := side / (2 * math.Sqrt(6))
	k := math.Sqrt(8) / 3
	t := &tetrahedron{inradius: r}
	t.normals[0] = v3.Vec{X: 0, Y: -1, Z: 0}
	for i := 1; i < 4; i++ {
		s, c := math.Sincos(float64(i-1) * 2 * math.Pi / 3)
		t.normals[i] = v3.Vec{X: s * k, Y: 1.0 / 3, Z: c * k}
	}
	// Vertices lie at three times the inradius from the centroid.
	extent := 3 * r
	t.bb = sdf.Box3{
		Min: v3.Vec{X: -extent, Y: -r, Z: -extent},
		Max: v3.Vec{X: extent, Y: extent, Z: extent},
	}
	return t
}

// Evaluate returns the signed distance bound at p.
func (t *tetrahedron) Evaluate(p v3.Vec) float64 {
	d := math.Inf(-1)
	for _, n := range t.normals {
		d = math.Max(d, n.X*p.X+n.Y*p.Y+n.Z*p.Z-t.inradius)
	}
	return d
}

// BoundingBox returns the box enclosing the tetrahedron.
func (t *tetrahedron) BoundingBox() sdf.Box3 {
	return t.bb
}

func toV3(v gm.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromV3(v v3.Vec) gm.Vec3 {
	return gm.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
