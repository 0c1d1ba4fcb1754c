package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/geosim/pkg/figure"
)

const testConfig = `logging:
  level: error
snapshot:
  width: 64
  height: 48
`

// run executes geosimctl with an isolated config and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfgPath := filepath.Join(dir, "geosim.yaml")
	if err := os.WriteFile(cfgPath, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMetrics(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"metrics", "cube"}, []string{"cube (side=2)", "8.00", "24.00", "V = L³"}},
		{[]string{"metrics", "cuboid", "-d", "width=1,height=2,depth=3"}, []string{"width=1, height=2, depth=3", "8.00", "22.00", "6.00"}},
		{[]string{"metrics", "Cylinder", "-d", "radius=1,height=1"}, []string{"6.28", "12.57", "3.14", "P = 2πr"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"negative", []string{"metrics", "cube", "-d", "side=-1"}, figure.ErrInvalidDimension},
		{"not a number", []string{"metrics", "cube", "-d", "side=abc"}, figure.ErrInvalidDimension},
		{"unknown key", []string{"pieces", "cube", "-d", "radius=1"}, figure.ErrInvalidDimension},
		{"unknown shape", []string{"metrics", "sphere"}, figure.ErrUnknownShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPieces(t *testing.T) {
	out, err := run(t, "pieces", "cube", "-p", "1")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(out, "cube.face"); got != 6 {
		t.Errorf("expected 6 cube faces, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "progress 1.00") {
		t.Errorf("missing progress header:\n%s", out)
	}

	// Seeds change the exploded pyramid only.
	a, _ := run(t, "pieces", "pyramid", "-p", "0", "--seed", "1")
	b, _ := run(t, "pieces", "pyramid", "-p", "0", "--seed", "2")
	if a == b {
		t.Error("different seeds should give different start poses")
	}
	c, _ := run(t, "pieces", "pyramid", "-p", "1", "--seed", "1")
	d, _ := run(t, "pieces", "pyramid", "-p", "1", "--seed", "2")
	if c != d {
		t.Error("assembled poses must not depend on the seed")
	}
}

func TestExport(t *testing.T) {
	out, err := run(t, "export", "cube", "-o", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "solid cube-100") || strings.Count(out, "facet normal") != 12 {
		t.Errorf("unexpected ASCII STL:\n%.200s", out)
	}

	path := filepath.Join(t.TempDir(), "cube.stl")
	if _, err := run(t, "export", "cube", "--binary", "-o", path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 80+4+12*50 {
		t.Errorf("binary STL size %d", info.Size())
	}

	ref := filepath.Join(t.TempDir(), "ref.stl")
	if _, err := run(t, "export", "prism", "--reference", "--cells", "16", "-o", ref); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "solid prism-reference") {
		t.Errorf("unexpected reference header %.40q", data)
	}
}

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyramid.png")
	if _, err := run(t, "snapshot", "pyramid", "-p", "0.5", "--size", "32x24", "-o", path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 32 || cfg.Height != 24 {
		t.Errorf("PNG size %dx%d, want 32x24", cfg.Width, cfg.Height)
	}

	if _, err := run(t, "snapshot", "cube", "--size", "big"); err == nil {
		t.Error("expected error for malformed size")
	}
}

func TestCheck(t *testing.T) {
	for _, s := range figure.Shapes() {
		t.Run(s.String(), func(t *testing.T) {
			out, err := run(t, "check", s.String(), "-v")
			if err != nil {
				t.Fatalf("check: %v\n%s", err, out)
			}
			if !strings.Contains(out, "OK "+s.String()) {
				t.Errorf("unexpected output:\n%s", out)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		w, h int
		ok   bool
	}{
		{"800x600", 800, 600, true},
		{"1x1", 1, 1, true},
		{"800", 0, 0, false},
		{"0x10", 0, 0, false},
		{"axb", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err == nil) != tt.ok || w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %d, %d, %v", tt.in, w, h, err)
		}
	}
}
