package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipRGBA(t *testing.T) {
	// 1x2 image, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(0, 0); c.B != 255 || c.R != 0 {
		t.Errorf("top pixel = %v, want blue", c)
	}
	if c := img.RGBAAt(0, 1); c.R != 255 || c.B != 0 {
		t.Errorf("bottom pixel = %v, want red", c)
	}
}

func TestFlipRGBAErrors(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short data", make([]byte, 7), 1, 2},
		{"zero width", nil, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipRGBA(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "geosim")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }

	path, err := sc.CaptureFromPixels(make([]byte, 4*3*2), 3, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if want := filepath.Join(dir, "geosim_2024-03-01_12-30-45.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding PNG: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("PNG size %dx%d, want 3x2", cfg.Width, cfg.Height)
	}
}

func TestGenerateFilenameWithoutDir(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	if name := sc.GenerateFilename(); !strings.HasPrefix(name, "shot_") || filepath.Dir(name) != "." {
		t.Errorf("unexpected filename %q", name)
	}
}
