// Package controller owns the current figure and turns user commands and
// frame ticks into rebuilt or re-posed figures for a rendering sink.
package controller

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/pkg/figure"
)

// DefaultRate is the auto-assembly speed in progress per second
// (0.01 per frame at 60 Hz).
const DefaultRate = 0.6

// Sink receives figure changes. FigureRebuilt is called after the piece
// list is replaced, PosesUpdated after the progress moved.
type Sink interface {
	FigureRebuilt(f *figure.Figure)
	PosesUpdated(f *figure.Figure)
}

type nopSink struct{}

func (nopSink) FigureRebuilt(*figure.Figure) {}
func (nopSink) PosesUpdated(*figure.Figure)  {}

type settings struct {
	shape      figure.ShapeType
	dims       figure.Dimensions
	progress   float64
	rate       float64
	figureOpts []figure.Option
	log        *zap.Logger
}

// Option configures a Controller.
type Option func(*settings)

// WithShape sets the initial shape. Its default dimensions apply unless
// WithDimensions is also given.
func WithShape(t figure.ShapeType) Option {
	return func(s *settings) {
		s.shape = t
	}
}

// WithDimensions sets the initial dimensions.
func WithDimensions(d figure.Dimensions) Option {
	return func(s *settings) {
		s.dims = d.Clone()
	}
}

// WithProgress sets the initial progress.
func WithProgress(p float64) Option {
	return func(s *settings) {
		s.progress = p
	}
}

// WithRate sets the auto-assembly speed in progress per second.
func WithRate(rate float64) Option {
	return func(s *settings) {
		s.rate = rate
	}
}

// WithFigureOptions passes decomposition options to every rebuild.
func WithFigureOptions(opts ...figure.Option) Option {
	return func(s *settings) {
		s.figureOpts = append(s.figureOpts, opts...)
	}
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}

// Controller is the figure state machine. It is not safe for concurrent
// use; the main loop owns it.
type Controller struct {
	sink       Sink
	fig        *figure.Figure
	rate       float64
	animating  bool
	figureOpts []figure.Option
	log        *zap.Logger
}

// New builds the initial figure (a default cube unless configured) and
// notifies the sink.
func New(sink Sink, opts ...Option) (*Controller, error) {
	s := settings{shape: figure.Cube, rate: DefaultRate}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rate <= 0 {
		return nil, fmt.Errorf("assemble rate %g must be positive", s.rate)
	}
	if s.log == nil {
		s.log = logger.Named("controller")
	}
	if sink == nil {
		sink = nopSink{}
	}

	dims := s.dims
	if dims == nil {
		var err error
		if dims, err = figure.DefaultDimensions(s.shape); err != nil {
			return nil, err
		}
	}

	c := &Controller{
		sink:       sink,
		rate:       s.rate,
		figureOpts: s.figureOpts,
		log:        s.log,
	}
	if err := c.rebuild(s.shape, dims, figure.Clamp01(s.progress)); err != nil {
		return nil, err
	}
	return c, nil
}

// SetType switches to another shape family with its default dimensions,
// keeping the current progress.
func (c *Controller) SetType(t figure.ShapeType) error {
	dims, err := figure.DefaultDimensions(t)
	if err != nil {
		return err
	}
	return c.rebuild(t, dims, c.fig.Progress)
}

// SetDimension changes one dimension and rebuilds the figure. Invalid
// values and unknown keys leave the state unchanged.
func (c *Controller) SetDimension(key string, value float64) error {
	dims := c.fig.Dimensions.Clone()
	if _, ok := dims[key]; !ok {
		return fmt.Errorf("%w: %s has no parameter %q", figure.ErrInvalidDimension, c.fig.Type, key)
	}
	if err := figure.CheckValue(key, value); err != nil {
		return err
	}
	dims[key] = value
	return c.rebuild(c.fig.Type, dims, c.fig.Progress)
}

// SetProgress moves every piece to p, clamped to [0,1], and cancels any
// running auto-assembly.
func (c *Controller) SetProgress(p float64) {
	c.animating = false
	c.fig.SetProgress(p)
	c.log.Debug("progress set", zap.Float64("progress", c.fig.Progress))
	c.sink.PosesUpdated(c.fig)
}

// StartAutoAssemble starts animating towards progress 1, restarting from
// 0 when the figure is already assembled.
func (c *Controller) StartAutoAssemble() {
	if c.fig.Progress >= 1 {
		c.fig.SetProgress(0)
		c.sink.PosesUpdated(c.fig)
	}
	c.animating = true
	c.log.Debug("auto-assemble started", zap.Float64("progress", c.fig.Progress))
}

// StopAutoAssemble halts the animation at the current progress.
func (c *Controller) StopAutoAssemble() {
	if c.animating {
		c.log.Debug("auto-assemble stopped", zap.Float64("progress", c.fig.Progress))
	}
	c.animating = false
}

// ToggleAutoAssemble starts or stops the animation.
func (c *Controller) ToggleAutoAssemble() {
	if c.animating {
		c.StopAutoAssemble()
		return
	}
	c.StartAutoAssemble()
}

// Animating reports whether auto-assembly is running.
func (c *Controller) Animating() bool {
	return c.animating
}

// Tick advances a running animation by rate·dt. The animation stops when
// the figure is fully assembled.
func (c *Controller) Tick(dt time.Duration) {
	if !c.animating || dt <= 0 {
		return
	}
	p := c.fig.Progress + c.rate*dt.Seconds()
	if p >= 1 {
		p = 1
		c.animating = false
		c.log.Debug("auto-assemble finished")
	}
	c.fig.SetProgress(p)
	c.sink.PosesUpdated(c.fig)
}

// Figure returns the current figure. Callers must not modify it.
func (c *Controller) Figure() *figure.Figure {
	return c.fig
}

// Type returns the current shape family.
func (c *Controller) Type() figure.ShapeType {
	return c.fig.Type
}

// Dimensions returns a copy of the current dimensions.
func (c *Controller) Dimensions() figure.Dimensions {
	return c.fig.Dimensions.Clone()
}

// Progress returns the current progress.
func (c *Controller) Progress() float64 {
	return c.fig.Progress
}

// Metrics returns the metrics of the current figure.
func (c *Controller) Metrics() figure.Metrics {
	return c.fig.Metrics
}

// Rate returns the auto-assembly speed.
func (c *Controller) Rate() float64 {
	return c.rate
}

func (c *Controller) rebuild(t figure.ShapeType, dims figure.Dimensions, progress float64) error {
	fig, err := figure.New(t, dims, progress, c.figureOpts...)
	if err != nil {
		return fmt.Errorf("rebuild %s: %w", t, err)
	}
	c.fig = fig
	c.log.Debug("figure rebuilt",
		zap.Stringer("shape", t),
		zap.Any("dimensions", map[string]float64(fig.Dimensions)),
		zap.Int("pieces", len(fig.Pieces)),
		zap.Float64("progress", fig.Progress),
	)
	c.sink.FigureRebuilt(fig)
	return nil
}
