package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geosim/pkg/figure"
)

func newMetricsCmd(c *cli) *cobra.Command {
	var flags figureFlags

	cmd := &cobra.Command{
		Use:       "metrics <shape>",
		Short:     "Print perimeter, surface area and volume of a shape",
		Long:      "Print the closed-form metrics of a shape rounded to two decimals, with their formulas.",
		Args:      shapeArg,
		ValidArgs: shapeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			shape, _ := figure.ParseShapeType(args[0])
			dims, err := flags.dimensions(c, shape)
			if err != nil {
				return err
			}
			m, err := figure.Compute(shape, dims)
			if err != nil {
				return err
			}

			p, a, v := m.Display()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", shape, formatDims(shape, dims))
			fmt.Fprintf(out, "  %-15s %10s   %s\n", m.PerimeterLabel+":", p, m.Formula.Perimeter)
			fmt.Fprintf(out, "  %-15s %10s   %s\n", "Surface area:", a, m.Formula.Area)
			fmt.Fprintf(out, "  %-15s %10s   %s\n", "Volume:", v, m.Formula.Volume)
			return nil
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func formatDims(shape figure.ShapeType, dims figure.Dimensions) string {
	parts := make([]string, 0, len(dims))
	for _, k := range shape.Params() {
		parts = append(parts, fmt.Sprintf("%s=%g", k, dims[k]))
	}
	return strings.Join(parts, ", ")
}

func shapeNames() []string {
	var names []string
	for _, s := range figure.Shapes() {
		names = append(names, s.String())
	}
	return names
}
