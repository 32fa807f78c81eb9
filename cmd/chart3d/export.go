package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/chart3d/pkg/export"
)

func newExportCmd(cfg *Config, flags *viewFlags) *cobra.Command {
	var (
		output string
		scale  float64
	)
	cmd := &cobra.Command{
		Use:   "export <chart.yaml>",
		Short: "Export a chart as a binary glTF model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, f, _, err := flags.loadChart(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			out := outputPath(output, args[0], ".glb")

			mesh := export.FromScene(chartName(f, args[0]), c.Scene(), scale)
			if err := export.SaveGLB(out, mesh); err != nil {
				return fmt.Errorf("export %s: %w", args[0], err)
			}
			slog.Info("exported chart", "output", out,
				"triangles", mesh.TriangleCount(), "materials", len(mesh.Materials))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output GLB path (default: chart path with .glb)")
	cmd.Flags().Float64Var(&scale, "scale", 0.01, "model units per surface unit")
	return cmd
}
