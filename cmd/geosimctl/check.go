package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geosim/internal/solidcheck"
)

var errDeviates = errors.New("pieces deviate from the solid surface")

func newCheckCmd(c *cli) *cobra.Command {
	var (
		flags     figureFlags
		tolerance float64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "check <shape>",
		Short: "Verify that the assembled pieces close the solid",
		Long: `Assemble the figure and measure the distance of every piece to the
surface of the matching signed-distance solid. Exits non-zero when any
piece lies further away than the tolerance.`,
		Args:      shapeArg,
		ValidArgs: shapeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.progress = 1
			fig, err := flags.build(cmd, c, args[0])
			if err != nil {
				return err
			}

			report, err := solidcheck.Check(fig, tolerance)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if verbose {
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tID\tSAMPLES\tMAX DEVIATION")
				for _, p := range report.Pieces {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%.3g\n", p.Index, p.GeometryID, p.Samples, p.MaxDeviation)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			if !report.OK() {
				for _, p := range report.Failed() {
					fmt.Fprintf(out, "FAIL %s: deviation %.3g\n", p.GeometryID, p.MaxDeviation)
				}
				return fmt.Errorf("%s: %w (max %.3g, tolerance %.3g)", fig.Type, errDeviates, report.MaxDeviation, report.Tolerance)
			}
			fmt.Fprintf(out, "OK %s: %d pieces within %.3g (max deviation %.3g)\n",
				fig.Type, len(report.Pieces), report.Tolerance, report.MaxDeviation)
			return nil
		},
	}
	flags.bind(cmd, false)
	cmd.Flags().Float64Var(&tolerance, "tolerance", solidcheck.DefaultTolerance, "Largest accepted distance from the surface")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the deviation of every piece")
	return cmd
}
