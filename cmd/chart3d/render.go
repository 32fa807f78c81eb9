package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/chart3d/pkg/render"
	"github.com/taigrr/chart3d/pkg/scene"
)

func newRenderCmd(cfg *Config, flags *viewFlags) *cobra.Command {
	var (
		output string
		margin float64
	)
	cmd := &cobra.Command{
		Use:   "render <chart.yaml>",
		Short: "Render a chart to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, v, err := flags.loadChart(cmd, cfg, args[0])
			if err != nil {
				return err
			}
			out := outputPath(output, args[0], ".png")

			canvas := render.NewCanvas(int(v.Width), int(v.Height), v.Background)
			defer canvas.Close()
			cam := render.NewCamera(v.Rotation, v.Tilt, v.pivot())
			painter := render.Fit(canvas, c.Scene(), cam, v.Width, v.Height, margin)
			n := render.Draw(c.Scene(), cam, painter, scene.DefaultShading)

			if err := canvas.SavePNG(out); err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}
			slog.Info("rendered chart", "output", out, "faces", n, "polygons", c.Scene().Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default: chart path with .png)")
	cmd.Flags().Float64Var(&margin, "margin", 16, "empty border around the chart")
	return cmd
}
