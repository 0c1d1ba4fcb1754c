package snapshot

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"

	"github.com/Faultbox/geosim/pkg/figure"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Width = 64
	opts.Height = 48
	return opts
}

// countForeground counts pixels that differ noticeably from the corner
// pixel, which always shows the background.
func countForeground(img image.Image) int {
	b := img.Bounds()
	br, bg, bb, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	differs := func(a, b uint32) bool {
		d := int(a>>8) - int(b>>8)
		return d > 8 || d < -8
	}
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if differs(r, br) || differs(g, bg) || differs(bl, bb) {
				n++
			}
		}
	}
	return n
}

func TestCornerIsBackground(t *testing.T) {
	fig, err := figure.New(figure.Cylinder, figure.Dimensions{figure.ParamRadius: 1, figure.ParamHeight: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(fig, smallOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := fauxgl.HexColor(smallOptions().Background)
	r, g, b, _ := img.At(0, 0).RGBA()
	got := [3]float64{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff}
	for i, w := range [3]float64{want.R, want.G, want.B} {
		if d := got[i] - w; d > 0.02 || d < -0.02 {
			t.Errorf("corner channel %d = %.3f, want %.3f", i, got[i], w)
		}
	}
}

func TestRender(t *testing.T) {
	for _, st := range figure.Shapes() {
		for _, progress := range []float64{0, 0.5, 1} {
			dims, _ := figure.DefaultDimensions(st)
			fig, err := figure.New(st, dims, progress)
			if err != nil {
				t.Fatal(err)
			}

			img, err := Render(fig, smallOptions())
			if err != nil {
				t.Fatalf("Render(%s, %v): %v", st, progress, err)
			}
			if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
				t.Errorf("%s: image size %v, want 64x48", st, b)
			}
			if countForeground(img) == 0 {
				t.Errorf("%s at %v: image has no figure pixels", st, progress)
			}
		}
	}
}

func TestRenderNoSupersample(t *testing.T) {
	fig, err := figure.New(figure.Cube, figure.Dimensions{figure.ParamSide: 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	opts := smallOptions()
	opts.Supersample = 1
	img, err := Render(fig, opts)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("image size %v", b)
	}
}

func TestSave(t *testing.T) {
	fig, err := figure.New(figure.Prism, figure.Dimensions{figure.ParamBase: 2, figure.ParamLength: 3}, 1)
	if err != nil {
		t.Fatal(err)
	}
	img, err := Render(fig, smallOptions())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "prism.png")
	if err := Save(path, img); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("PNG file is empty")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"no supersample", func(o *Options) { o.Supersample = 0 }},
		{"bad background", func(o *Options) { o.Background = "blue" }},
		{"short color", func(o *Options) { o.Color = "#fff" }},
		{"flat fov", func(o *Options) { o.FovY = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("default options invalid: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	r, g, b, err := ParseColor("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if r != 1 || g < 0.49 || g > 0.51 || b != 0 {
		t.Errorf("ParseColor = %v %v %v", r, g, b)
	}
	if _, _, _, err := ParseColor("orange"); err == nil {
		t.Error("expected error for a color name")
	}
}
