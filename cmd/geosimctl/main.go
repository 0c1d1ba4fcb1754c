// Package main is geosimctl, the command-line companion of the viewer:
// it prints metrics and poses and renders figures to STL and PNG files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/geosim/internal/config"
	"github.com/Faultbox/geosim/internal/logger"
)

// cli holds state shared by all subcommands.
type cli struct {
	configPath string
	debug      bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "geosimctl",
		Short: "Inspect, export and render solid figures",
		Long: `geosimctl builds the exploded or assembled figures of the geosim viewer
without opening a window. It prints metrics and piece poses, exports STL
meshes, renders PNG snapshots and verifies assembled figures against
signed-distance solids.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to config file")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newMetricsCmd(c),
		newPiecesCmd(c),
		newExportCmd(c),
		newSnapshotCmd(c),
		newCheckCmd(c),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.LoadFile(c.configPath)
	if err != nil {
		return err
	}
	if c.debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	c.cfg = cfg
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
