package render

import (
	"image/color"
	"math"
	"slices"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// Framebuffer is a 2D array of pixels that can be rendered to the terminal.
// We use double vertical resolution by using half-block characters (▀▄).
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data

	// Surface-to-pixel scale; a chart laid out at 600x400 fits an 80x48
	// framebuffer with Scale 80/600.
	Scale float64
	// Scanline crossings, reused across fills.
	xs []float64
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		Scale:  1,
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// FillPolygon fills a closed ring with the even-odd rule, sampling pixel
// centers. Points are in surface units and scaled by fb.Scale.
func (fb *Framebuffer) FillPolygon(points []math3d.Vec2, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minY = math.Min(minY, p.Y*fb.Scale)
		maxY = math.Max(maxY, p.Y*fb.Scale)
	}
	y0 := max(0, int(math.Ceil(minY-0.5)))
	y1 := min(fb.Height-1, int(math.Floor(maxY-0.5)))

	for y := y0; y <= y1; y++ {
		sy := float64(y) + 0.5
		fb.xs = fb.xs[:0]
		for i := range points {
			a := points[i].Scale(fb.Scale)
			b := points[(i+1)%len(points)].Scale(fb.Scale)
			// Half-open so a vertex on the scanline counts once.
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			t := (sy - a.Y) / (b.Y - a.Y)
			fb.xs = append(fb.xs, a.X+t*(b.X-a.X))
		}
		slices.Sort(fb.xs)
		for i := 0; i+1 < len(fb.xs); i += 2 {
			x0 := max(0, int(math.Ceil(fb.xs[i]-0.5)))
			x1 := min(fb.Width-1, int(math.Floor(fb.xs[i+1]-0.5)))
			for x := x0; x <= x1; x++ {
				fb.Pixels[y*fb.Width+x] = c
			}
		}
	}
}

// StrokePolygon outlines a closed ring one pixel wide; width is ignored at
// terminal resolution.
func (fb *Framebuffer) StrokePolygon(points []math3d.Vec2, c color.RGBA, _ float64) {
	for i := range points {
		a := points[i].Scale(fb.Scale)
		b := points[(i+1)%len(points)].Scale(fb.Scale)
		fb.DrawLine(int(math.Floor(a.X)), int(math.Floor(a.Y)), int(math.Floor(b.X)), int(math.Floor(b.Y)), c)
	}
}

