package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// Canvas is an anti-aliased raster surface backed by a gg context.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a canvas cleared to background.
func NewCanvas(width, height int, background color.RGBA) *Canvas {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(background))
	return &Canvas{dc: dc}
}

func (c *Canvas) path(points []math3d.Vec2) bool {
	if len(points) < 3 {
		return false
	}
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	return true
}

// FillPolygon fills a closed ring.
func (c *Canvas) FillPolygon(points []math3d.Vec2, col color.RGBA) {
	if !c.path(points) {
		return
	}
	c.dc.SetColor(col)
	if err := c.dc.Fill(); err != nil {
		logger().Warn("canvas fill failed", "error", err)
	}
}

// StrokePolygon outlines a closed ring.
func (c *Canvas) StrokePolygon(points []math3d.Vec2, col color.RGBA, width float64) {
	if !c.path(points) {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	if err := c.dc.Stroke(); err != nil {
		logger().Warn("canvas stroke failed", "error", err)
	}
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}
