package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taigrr/chart3d/pkg/chartfile"
	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/series"
)

// Config holds defaults read from the environment. Chart files override
// it and command-line flags override both.
type Config struct {
	Width      float64         `envconfig:"CHART3D_WIDTH" default:"600"`
	Height     float64         `envconfig:"CHART3D_HEIGHT" default:"400"`
	Depth      float64         `envconfig:"CHART3D_DEPTH" default:"40"`
	Rotation   float64         `envconfig:"CHART3D_ROTATION" default:"25"`
	Tilt       float64         `envconfig:"CHART3D_TILT" default:"20"`
	Background chartfile.Color `envconfig:"CHART3D_BACKGROUND" default:"#ffffff"`
	FPS        int             `envconfig:"CHART3D_FPS" default:"60"`
}

func loadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// viewFlags are the surface and camera flags shared by every command.
type viewFlags struct {
	width, height, depth float64
	rotation, tilt       float64
	background           string
}

func (v *viewFlags) register(fs *pflag.FlagSet, cfg *Config) {
	fs.Float64Var(&v.width, "width", cfg.Width, "surface width (CHART3D_WIDTH)")
	fs.Float64Var(&v.height, "height", cfg.Height, "surface height (CHART3D_HEIGHT)")
	fs.Float64Var(&v.depth, "depth", cfg.Depth, "scene depth (CHART3D_DEPTH)")
	fs.Float64Var(&v.rotation, "rotation", cfg.Rotation, "rotation around the vertical axis, degrees (CHART3D_ROTATION)")
	fs.Float64Var(&v.tilt, "tilt", cfg.Tilt, "tilt toward the viewer, degrees (CHART3D_TILT)")
	fs.StringVar(&v.background, "background", cfg.Background.String(), "background color #rrggbb[aa] (CHART3D_BACKGROUND)")
}

// view is the resolved surface and camera of one invocation.
type view struct {
	Width, Height, Depth float64
	Rotation, Tilt       float64
	Background           color.RGBA
}

func (v view) pivot() math3d.Vec3 {
	return math3d.V3(v.Width/2, v.Height/2, v.Depth/2)
}

// resolve layers environment defaults, chart file settings and explicitly
// set flags, in that order.
func (v *viewFlags) resolve(cmd *cobra.Command, cfg *Config, f *chartfile.File) (view, error) {
	out := view{
		Width: cfg.Width, Height: cfg.Height, Depth: cfg.Depth,
		Rotation: cfg.Rotation, Tilt: cfg.Tilt,
		Background: cfg.Background.ToRGBA(),
	}
	override := func(dst, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	override(&out.Width, f.Width)
	override(&out.Height, f.Height)
	override(&out.Depth, f.Depth)
	override(&out.Rotation, f.Rotation)
	override(&out.Tilt, f.Tilt)
	if f.Background != nil {
		out.Background = f.Background.ToRGBA()
	}

	flags := cmd.Flags()
	for _, fl := range []struct {
		name     string
		dst, src *float64
	}{
		{"width", &out.Width, &v.width},
		{"height", &out.Height, &v.height},
		{"depth", &out.Depth, &v.depth},
		{"rotation", &out.Rotation, &v.rotation},
		{"tilt", &out.Tilt, &v.tilt},
	} {
		if flags.Changed(fl.name) {
			*fl.dst = *fl.src
		}
	}
	if flags.Changed("background") {
		c, err := chartfile.ParseColor(v.background)
		if err != nil {
			return view{}, err
		}
		out.Background = c.ToRGBA()
	}
	if out.Width <= 0 || out.Height <= 0 {
		return view{}, fmt.Errorf("surface %gx%g is empty", out.Width, out.Height)
	}
	return out, nil
}

// loadChart reads the chart file at path and builds it for the resolved
// view.
func (v *viewFlags) loadChart(cmd *cobra.Command, cfg *Config, path string) (*series.Chart, *chartfile.File, view, error) {
	f, err := chartfile.LoadFile(path)
	if err != nil {
		return nil, nil, view{}, err
	}
	vw, err := v.resolve(cmd, cfg, f)
	if err != nil {
		return nil, nil, view{}, err
	}
	c, _, err := f.Build(vw.Width, vw.Height, vw.Depth)
	if err != nil {
		return nil, nil, view{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, f, vw, nil
}

// outputPath returns out, or input with its extension replaced by ext.
func outputPath(out, input, ext string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

// chartName is the title of f, or the base name of path.
func chartName(f *chartfile.File, path string) string {
	if f.Title != "" {
		return f.Title
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
