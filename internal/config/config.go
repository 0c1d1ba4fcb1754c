// Package config handles viewer and tool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/pkg/figure"
)

// Config holds all settings.
type Config struct {
	Viewer   ViewerConfig   `yaml:"viewer"`
	Figure   FigureConfig   `yaml:"figure"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewerConfig holds display and rendering settings of the interactive viewer.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// FigureConfig holds the initial figure and assembly settings.
type FigureConfig struct {
	Shape        string  `yaml:"shape"`
	Progress     float64 `yaml:"progress"`
	Seed         uint64  `yaml:"seed"`
	Jitter       float64 `yaml:"jitter"`
	AssembleRate float64 `yaml:"assemble_rate"` // progress per second

	// Dimensions overrides defaults per shape, e.g. dimensions.cube.side.
	Dimensions map[string]map[string]float64 `yaml:"dimensions,omitempty"`
}

// SnapshotConfig holds headless PNG rendering settings.
type SnapshotConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Supersample int    `yaml:"supersample"`
	Background  string `yaml:"background"`
	Color       string `yaml:"color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Figure: FigureConfig{
			Shape:        figure.Cube.String(),
			Progress:     0,
			Seed:         0,
			Jitter:       figure.DefaultJitter,
			AssembleRate: 0.6,
		},
		Snapshot: SnapshotConfig{
			Width:       800,
			Height:      600,
			Supersample: 2,
			Background:  "#1e1e24",
			Color:       "#4a90d9",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ShapeType parses the configured shape.
func (f FigureConfig) ShapeType() (figure.ShapeType, error) {
	return figure.ParseShapeType(f.Shape)
}

// DimensionsFor returns the default dimensions of t with the configured
// overrides applied.
func (f FigureConfig) DimensionsFor(t figure.ShapeType) (figure.Dimensions, error) {
	dims, err := figure.DefaultDimensions(t)
	if err != nil {
		return nil, err
	}
	for k, v := range f.Dimensions[t.String()] {
		dims[k] = v
	}
	if err := dims.Validate(t); err != nil {
		return nil, err
	}
	return dims, nil
}

// Options returns the decomposition options of the configured seed and jitter.
func (f FigureConfig) Options() []figure.Option {
	return []figure.Option{figure.WithSeed(f.Seed), figure.WithJitter(f.Jitter)}
}

// Validate checks the config for values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Viewer.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("viewer fps_limit %d must not be negative", c.Viewer.FPSLimit))
	}
	if _, err := c.Figure.ShapeType(); err != nil {
		errs = append(errs, fmt.Errorf("figure shape: %w", err))
	}
	if c.Figure.AssembleRate <= 0 {
		errs = append(errs, fmt.Errorf("figure assemble_rate %g must be positive", c.Figure.AssembleRate))
	}
	if c.Figure.Jitter < 0 {
		errs = append(errs, fmt.Errorf("figure jitter %g must not be negative", c.Figure.Jitter))
	}
	if c.Figure.Progress < 0 || c.Figure.Progress > 1 {
		errs = append(errs, fmt.Errorf("figure progress %g must be within [0,1]", c.Figure.Progress))
	}
	for name := range c.Figure.Dimensions {
		t, err := figure.ParseShapeType(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("figure dimensions: %w", err))
			continue
		}
		if _, err := c.Figure.DimensionsFor(t); err != nil {
			errs = append(errs, fmt.Errorf("figure dimensions: %w", err))
		}
	}
	if c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		errs = append(errs, fmt.Errorf("snapshot size %dx%d must be positive", c.Snapshot.Width, c.Snapshot.Height))
	}
	if c.Snapshot.Supersample < 1 {
		errs = append(errs, fmt.Errorf("snapshot supersample %d must be at least 1", c.Snapshot.Supersample))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging level %q must be one of %v", c.Logging.Level, logger.Levels))
	}
	return errors.Join(errs...)
}
