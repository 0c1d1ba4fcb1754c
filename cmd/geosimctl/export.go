package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/geosim/internal/export"
	"github.com/Faultbox/geosim/internal/logger"
	"github.com/Faultbox/geosim/internal/solidcheck"
)

func newExportCmd(c *cli) *cobra.Command {
	var (
		flags     figureFlags
		output    string
		binary    bool
		reference bool
		cells     int
	)

	cmd := &cobra.Command{
		Use:   "export <shape>",
		Short: "Write the figure as an STL mesh",
		Long: `Write the pieces of the figure at the given progress as an STL mesh.
With --reference the closed solid is meshed from its signed-distance
function instead, which is useful to compare against the assembled pieces.`,
		Args:      shapeArg,
		ValidArgs: shapeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := flags.build(cmd, c, args[0])
			if err != nil {
				return err
			}

			format := export.ASCII
			if binary {
				format = export.Binary
			}

			name := fmt.Sprintf("%s-%03.0f", fig.Type, fig.Progress*100)
			tris := fig.Triangles()
			if reference {
				name = fig.Type.String() + "-reference"
				if tris, err = solidcheck.ReferenceMesh(fig.Type, fig.Dimensions, cells); err != nil {
					return err
				}
			}

			if output == "" {
				output = name + ".stl"
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return export.WriteSTL(w, name, tris, format)
			}, zap.Int("triangles", len(tris)), zap.Stringer("format", format))
		},
	}
	flags.bind(cmd, true)
	cmd.Flags().StringVarP(&output, "output", "o", "", `Output file, "-" for stdout (default "<shape>-<progress>.stl")`)
	cmd.Flags().BoolVar(&binary, "binary", false, "Write binary STL")
	cmd.Flags().BoolVar(&reference, "reference", false, "Mesh the closed solid instead of the pieces")
	cmd.Flags().IntVar(&cells, "cells", 64, "Marching cubes resolution along the longest axis for --reference")
	return cmd
}

// writeOutput writes to the named file, or stdout for "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error, fields ...zap.Field) error {
	if path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	reportWritten(cmd, path, fields...)
	return nil
}

func reportWritten(cmd *cobra.Command, path string, fields ...zap.Field) {
	logger.Info("file written", append([]zap.Field{zap.String("path", path)}, fields...)...)
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
}
