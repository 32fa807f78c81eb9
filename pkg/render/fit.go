package render

import (
	"image/color"
	"math"

	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/scene"
)

// Fitted is a Painter that scales projected points about the origin and
// then offsets them before handing them on.
type Fitted struct {
	Painter
	Scale  float64
	Offset math3d.Vec2

	buf []math3d.Vec2
}

// Fit returns a painter that centers the projected bounds of s inside a
// width x height surface, leaving margin on every side. The scene is only
// ever shrunk or enlarged uniformly.
func Fit(p Painter, s *scene.Scene, cam *Camera, width, height, margin float64) *Fitted {
	f := &Fitted{Painter: p, Scale: 1}
	b := s.Bounds()
	if b.IsEmpty() {
		return f
	}
	b = b.Transform(cam.Matrix())
	size := b.Size()
	availW, availH := width-2*margin, height-2*margin
	if size.X > 0 && size.Y > 0 && availW > 0 && availH > 0 {
		f.Scale = math.Min(availW/size.X, availH/size.Y)
	}
	center := b.Center()
	f.Offset = math3d.V2(width/2-center.X*f.Scale, height/2-center.Y*f.Scale)
	return f
}

func (f *Fitted) apply(points []math3d.Vec2) []math3d.Vec2 {
	f.buf = f.buf[:0]
	for _, p := range points {
		f.buf = append(f.buf, p.Scale(f.Scale).Add(f.Offset))
	}
	return f.buf
}

// FillPolygon implements Painter.
func (f *Fitted) FillPolygon(points []math3d.Vec2, c color.RGBA) {
	f.Painter.FillPolygon(f.apply(points), c)
}

// StrokePolygon implements Painter.
func (f *Fitted) StrokePolygon(points []math3d.Vec2, c color.RGBA, width float64) {
	f.Painter.StrokePolygon(f.apply(points), c, width)
}
