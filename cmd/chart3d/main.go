// chart3d renders pseudo-3D charts described in YAML.
//
// Usage:
//
//	chart3d render chart.yaml -o chart.png
//	chart3d view chart.yaml
//	chart3d export chart.yaml -o chart.glb
//
// Surface size, depth, camera angles and background default to the
// CHART3D_* environment variables, then to the chart file, then to flags.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taigrr/chart3d/pkg/series"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *Config) *cobra.Command {
	var (
		verbose bool
		flags   viewFlags
	)
	root := &cobra.Command{
		Use:          "chart3d",
		Short:        "Render pseudo-3D charts",
		Long:         "chart3d lays out column, bar, line, area, scatter and pie charts in 3D\nand draws them to PNG, to the terminal, or to a glTF model.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log layout details to stderr")
	flags.register(root.PersistentFlags(), cfg)

	root.AddCommand(
		newRenderCmd(cfg, &flags),
		newViewCmd(cfg, &flags),
		newExportCmd(cfg, &flags),
	)
	return root
}

// setupLogging installs a text handler on stderr for the CLI and the
// chart library.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	series.SetLogger(logger)
}
