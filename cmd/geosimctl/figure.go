package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/pkg/figure"
)

// figureFlags are the flags of every command that builds a figure.
type figureFlags struct {
	dims     map[string]string
	progress float64
	seed     uint64
	jitter   float64
}

func (f *figureFlags) bind(cmd *cobra.Command, withProgress bool) {
	cmd.Flags().StringToStringVarP(&f.dims, "dim", "d", nil, "Dimension overrides, e.g. -d width=3,height=1.5")
	if withProgress {
		cmd.Flags().Float64VarP(&f.progress, "progress", "p", 1, "Assembly progress in [0,1]")
		cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed of the exploded pyramid tilt (default from config)")
		cmd.Flags().Float64Var(&f.jitter, "jitter", figure.DefaultJitter, "Half-range of the pyramid tilt in radians (default from config)")
	}
}

// dimensions resolves the dimensions of shape from the config and the
// -d overrides.
func (f *figureFlags) dimensions(c *cli, shape figure.ShapeType) (figure.Dimensions, error) {
	dims, err := c.cfg.Figure.DimensionsFor(shape)
	if err != nil {
		return nil, err
	}
	for key, raw := range f.dims {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a number", figure.ErrInvalidDimension, key, raw)
		}
		dims[key] = v
	}
	if err := dims.Validate(shape); err != nil {
		return nil, err
	}
	return dims, nil
}

// build parses the shape argument and builds the figure at the requested
// progress. Flags left unset fall back to the config.
func (f *figureFlags) build(cmd *cobra.Command, c *cli, arg string) (*figure.Figure, error) {
	shape, err := figure.ParseShapeType(arg)
	if err != nil {
		return nil, err
	}
	dims, err := f.dimensions(c, shape)
	if err != nil {
		return nil, err
	}

	seed, jitter := c.cfg.Figure.Seed, c.cfg.Figure.Jitter
	if fl := cmd.Flags().Lookup("seed"); fl != nil && fl.Changed {
		seed = f.seed
	}
	if fl := cmd.Flags().Lookup("jitter"); fl != nil && fl.Changed {
		jitter = f.jitter
	}

	fig, err := figure.New(shape, dims, f.progress, figure.WithSeed(seed), figure.WithJitter(jitter))
	if err != nil {
		return nil, err
	}
	logger.Debug("figure built",
		zap.Stringer("type", fig.Type),
		zap.Int("pieces", len(fig.Pieces)),
		zap.Float64("progress", fig.Progress),
		zap.Uint64("seed", seed),
	)
	return fig, nil
}

func shapeArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	_, err := figure.ParseShapeType(args[0])
	return err
}
