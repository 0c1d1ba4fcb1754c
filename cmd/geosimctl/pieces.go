package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	gm "github.com/Faultbox/geosim/pkg/math"
)

func newPiecesCmd(c *cli) *cobra.Command {
	var flags figureFlags

	cmd := &cobra.Command{
		Use:       "pieces <shape>",
		Short:     "List the pieces of a shape and their current poses",
		Long:      "List geometry id, kind, position and orientation (axis and angle in degrees) of every piece at the given progress.",
		Args:      shapeArg,
		ValidArgs: shapeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			fig, err := flags.build(cmd, c, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s at progress %.2f\n", fig.Type, fig.Progress)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tKIND\tPOSITION\tAXIS\tANGLE\tLABEL")
			for i := range fig.Pieces {
				p := &fig.Pieces[i]
				axis, angle := p.Current.Orientation.AxisAngle()
				label := "-"
				if p.Label != nil {
					label = p.Label.Text
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.1f°\t%s\n",
					i, p.GeometryID(), p.Geometry.Kind, formatVec(p.Current.Position),
					formatVec(axis), angle*180/math.Pi, label)
			}
			return tw.Flush()
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func formatVec(v gm.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", clean(v.X), clean(v.Y), clean(v.Z))
}

// clean removes negative zeros and rounding noise from printed values.
func clean(v float64) float64 {
	if math.Abs(v) < 5e-4 {
		return 0
	}
	return v
}
