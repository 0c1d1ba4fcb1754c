package controller

import (
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/Faultbox/geosim/pkg/figure"
)

type recordingSink struct {
	rebuilt []*figure.Figure
	updated int
}

func (s *recordingSink) FigureRebuilt(f *figure.Figure) { s.rebuilt = append(s.rebuilt, f) }
func (s *recordingSink) PosesUpdated(*figure.Figure)    { s.updated++ }

func newController(t *testing.T, opts ...Option) (*Controller, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	c, err := New(sink, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, sink
}

func TestNewDefaults(t *testing.T) {
	c, sink := newController(t)
	if c.Type() != figure.Cube {
		t.Errorf("expected cube, got %s", c.Type())
	}
	if c.Dimensions()[figure.ParamSide] != 2 {
		t.Errorf("expected default side 2, got %v", c.Dimensions())
	}
	if len(sink.rebuilt) != 1 {
		t.Errorf("expected one rebuild notification, got %d", len(sink.rebuilt))
	}
	if c.Rate() != DefaultRate {
		t.Errorf("expected rate %v, got %v", DefaultRate, c.Rate())
	}
}

func TestNewNilSink(t *testing.T) {
	c, err := New(nil, WithShape(figure.Cylinder))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.SetProgress(0.5)
	c.StartAutoAssemble()
	c.Tick(time.Second)
	if c.Progress() != 1 {
		t.Errorf("expected progress 1, got %v", c.Progress())
	}
}

func TestNewRejectsBadRate(t *testing.T) {
	if _, err := New(nil, WithRate(0)); err == nil {
		t.Error("expected error for zero rate")
	}
}

func TestSetTypeReplacesPieces(t *testing.T) {
	tests := []struct {
		shape  figure.ShapeType
		pieces int
		first  string
	}{
		{figure.Pyramid, 4, "pyramid.face"},
		{figure.Cuboid, 6, "cuboid.front-back"},
		{figure.Prism, 5, "prism.cap"},
		{figure.Cylinder, 6, "cylinder.cap"},
		{figure.Cube, 6, "cube.face"},
	}

	c, sink := newController(t, WithProgress(0.4))
	for _, tt := range tests {
		t.Run(tt.shape.String(), func(t *testing.T) {
			before := len(sink.rebuilt)
			if err := c.SetType(tt.shape); err != nil {
				t.Fatalf("SetType: %v", err)
			}
			f := c.Figure()
			if len(f.Pieces) != tt.pieces {
				t.Errorf("expected %d pieces, got %d", tt.pieces, len(f.Pieces))
			}
			if f.Pieces[0].GeometryID() != tt.first {
				t.Errorf("first piece %q, want %q", f.Pieces[0].GeometryID(), tt.first)
			}
			want, _ := figure.DefaultDimensions(tt.shape)
			for k, v := range want {
				if c.Dimensions()[k] != v {
					t.Errorf("dimension %s = %v, want default %v", k, c.Dimensions()[k], v)
				}
			}
			if c.Progress() != 0.4 {
				t.Errorf("progress should survive a type switch, got %v", c.Progress())
			}
			if len(sink.rebuilt) != before+1 {
				t.Error("expected a rebuild notification")
			}
		})
	}
}

func TestSetTypeUnknown(t *testing.T) {
	c, _ := newController(t)
	if err := c.SetType(figure.ShapeType(99)); !errors.Is(err, figure.ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape, got %v", err)
	}
	if c.Type() != figure.Cube {
		t.Error("failed switch should keep the current figure")
	}
}

func TestSetDimension(t *testing.T) {
	c, sink := newController(t, WithShape(figure.Cuboid))

	if err := c.SetDimension(figure.ParamWidth, 4); err != nil {
		t.Fatalf("SetDimension: %v", err)
	}
	if c.Dimensions()[figure.ParamWidth] != 4 {
		t.Errorf("width = %v, want 4", c.Dimensions()[figure.ParamWidth])
	}
	if got := c.Metrics().Volume; !scalar.EqualWithinAbs(got, 4*1.5*2, 1e-12) {
		t.Errorf("volume = %v, want 12", got)
	}
	if len(sink.rebuilt) != 2 {
		t.Errorf("expected 2 rebuilds, got %d", len(sink.rebuilt))
	}
}

func TestSetDimensionInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value float64
	}{
		{"zero", figure.ParamSide, 0},
		{"negative", figure.ParamSide, -3},
		{"NaN", figure.ParamSide, math.NaN()},
		{"infinite", figure.ParamSide, math.Inf(1)},
		{"unknown key", figure.ParamRadius, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, sink := newController(t)
			before := c.Figure()
			err := c.SetDimension(tt.key, tt.value)
			if !errors.Is(err, figure.ErrInvalidDimension) {
				t.Errorf("expected ErrInvalidDimension, got %v", err)
			}
			if c.Figure() != before || len(sink.rebuilt) != 1 {
				t.Error("invalid dimension must not change state")
			}
		})
	}
}

func TestSetProgressClampsAndCancels(t *testing.T) {
	c, sink := newController(t)
	c.StartAutoAssemble()

	c.SetProgress(1.7)
	if c.Progress() != 1 {
		t.Errorf("expected clamp to 1, got %v", c.Progress())
	}
	if c.Animating() {
		t.Error("SetProgress should cancel auto-assembly")
	}

	c.SetProgress(-2)
	if c.Progress() != 0 {
		t.Errorf("expected clamp to 0, got %v", c.Progress())
	}
	if sink.updated != 2 {
		t.Errorf("expected 2 pose notifications, got %d", sink.updated)
	}
}

func TestTick(t *testing.T) {
	c, sink := newController(t)

	// Idle ticks do nothing
	c.Tick(time.Second)
	if c.Progress() != 0 || sink.updated != 0 {
		t.Fatal("tick without animation should not move the figure")
	}

	c.StartAutoAssemble()
	c.Tick(500 * time.Millisecond)
	if !scalar.EqualWithinAbs(c.Progress(), 0.3, 1e-12) {
		t.Errorf("progress = %v, want 0.3", c.Progress())
	}

	// 60 frames of 1/60 s advance by the full rate
	for i := 0; i < 60; i++ {
		c.Tick(time.Second / 60)
	}
	if !scalar.EqualWithinAbs(c.Progress(), 0.9, 1e-6) {
		t.Errorf("progress = %v, want 0.9", c.Progress())
	}

	c.Tick(time.Second)
	if c.Progress() != 1 {
		t.Errorf("progress should stop at exactly 1, got %v", c.Progress())
	}
	if c.Animating() {
		t.Error("animation should stop when assembled")
	}
	for i, p := range c.Figure().Pieces {
		if p.Current != p.End {
			t.Errorf("piece %d not at end pose", i)
		}
	}
}

func TestStartAutoAssembleRestarts(t *testing.T) {
	c, _ := newController(t, WithProgress(1))
	c.StartAutoAssemble()
	if c.Progress() != 0 {
		t.Errorf("expected restart from 0, got %v", c.Progress())
	}
	if !c.Animating() {
		t.Error("expected animation to run")
	}

	c.ToggleAutoAssemble()
	if c.Animating() {
		t.Error("toggle should stop the animation")
	}
}

func TestTickRate(t *testing.T) {
	c, _ := newController(t, WithRate(2))
	c.StartAutoAssemble()
	c.Tick(250 * time.Millisecond)
	if !scalar.EqualWithinAbs(c.Progress(), 0.5, 1e-12) {
		t.Errorf("progress = %v, want 0.5", c.Progress())
	}
}

func TestFigureOptionsApplyOnRebuild(t *testing.T) {
	c, _ := newController(t, WithShape(figure.Pyramid), WithFigureOptions(figure.WithJitter(0)))
	if err := c.SetDimension(figure.ParamSide, 4); err != nil {
		t.Fatal(err)
	}
	for i, p := range c.Figure().Pieces[1:] {
		if !p.Start.Orientation.SameRotation(p.End.Orientation, 1e-12) {
			t.Errorf("lateral %d should start untilted", i)
		}
	}
}
