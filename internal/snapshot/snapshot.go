// Package snapshot renders figures to images with the fauxgl software
// rasterizer, so pictures can be produced without a display.
package snapshot

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/Faultbox/geosim/internal/engine/lighting"
	gm "github.com/Faultbox/geosim/pkg/math"
	"github.com/Faultbox/geosim/pkg/figure"
)

// Options configures Render.
type Options struct {
	Width       int
	Height      int
	Supersample int     // render at this multiple, then downscale
	Background  string  // hex color
	Color       string  // hex color of the first piece
	FovY        float64 // vertical field of view in degrees

	// Direction from the figure center towards the camera.
	ViewDir gm.Vec3
}

// DefaultOptions returns a 800x600 iso-like view.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Supersample: 2,
		Background:  "#1e1e24",
		Color:       "#4a90d9",
		FovY:        30,
		ViewDir:     gm.Vec3{X: 1, Y: 0.8, Z: 1.4},
	}
}

// Validate checks sizes and colors.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("snapshot size %dx%d must be positive", o.Width, o.Height)
	}
	if o.Supersample < 1 {
		return fmt.Errorf("supersample %d must be at least 1", o.Supersample)
	}
	if o.FovY <= 0 || o.FovY >= 180 {
		return fmt.Errorf("field of view %g must be within (0, 180)", o.FovY)
	}
	for _, c := range []string{o.Background, o.Color} {
		if !validHex(c) {
			return fmt.Errorf("invalid color %q, want #rrggbb", c)
		}
	}
	if o.ViewDir.Length() == 0 {
		return fmt.Errorf("view direction must not be zero")
	}
	return nil
}

// Render draws every piece of the figure at its current pose, shading each
// piece with a slightly different tone of the configured color.
func Render(fig *figure.Figure, opts Options) (image.Image, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(fig.Pieces) == 0 {
		return nil, fmt.Errorf("figure %s has no pieces", fig.Type)
	}

	w, h := opts.Width*opts.Supersample, opts.Height*opts.Supersample
	lo, hi := fig.Bounds()
	center := lo.Add(hi).Scale(0.5)
	radius := math.Max(hi.Sub(lo).Length()/2, 1e-3)

	// Distance that fits the bounding sphere in the vertical field of view.
	dist := radius / math.Sin(opts.FovY*math.Pi/360) * 1.1
	eyePos := center.Add(opts.ViewDir.Normalize().Scale(dist))

	var (
		eye    = vector(eyePos)
		target = vector(center)
		up     = fauxgl.V(0, 1, 0)
		light  = vector(lighting.DefaultSun())
		near   = math.Max(dist-radius*1.5, 0.01)
		far    = dist + radius*1.5
		aspect = float64(w) / float64(h)
	)

	context := fauxgl.NewContext(w, h)
	context.ClearColorBufferWith(fauxgl.HexColor(opts.Background))
	// Pieces are single-sided and may face away while exploded.
	context.Cull = fauxgl.CullNone

	matrix := fauxgl.LookAt(eye, target, up).Perspective(opts.FovY, aspect, near, far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	context.Shader = shader

	base := fauxgl.HexColor(opts.Color)
	for i := range fig.Pieces {
		shader.ObjectColor = tone(base, i)
		context.DrawMesh(pieceMesh(&fig.Pieces[i]))
	}

	img := context.Image()
	if opts.Supersample > 1 {
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img, nil
}

// Save writes the image as PNG.
func Save(path string, img image.Image) error {
	if err := fauxgl.SavePNG(path, img); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", path, err)
	}
	return nil
}

func pieceMesh(p *figure.Piece) *fauxgl.Mesh {
	tris := p.WorldTriangles()
	out := make([]*fauxgl.Triangle, 0, len(tris))
	for _, t := range tris {
		out = append(out, fauxgl.NewTriangleForPoints(vector(t[0]), vector(t[1]), vector(t[2])))
	}
	return fauxgl.NewTriangleMesh(out)
}

// tone brightens every other piece and darkens every third so that
// neighbouring faces stay distinguishable.
func tone(c fauxgl.Color, i int) fauxgl.Color {
	k := 1.0
	if i%2 == 1 {
		k += 0.15
	}
	if i%3 == 2 {
		k -= 0.2
	}
	return fauxgl.Color{
		R: math.Min(c.R*k, 1),
		G: math.Min(c.G*k, 1),
		B: math.Min(c.B*k, 1),
		A: c.A,
	}
}

func vector(v gm.Vec3) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}

// ParseColor parses a #rrggbb color into components in [0, 1].
func ParseColor(hex string) (r, g, b float64, err error) {
	if !validHex(hex) {
		return 0, 0, 0, fmt.Errorf("invalid color %q, want #rrggbb", hex)
	}
	c := fauxgl.HexColor(hex)
	return c.R, c.G, c.B, nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
