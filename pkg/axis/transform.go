package axis

import (
	"math"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// Rect is the plot area on the drawing surface, in device units.
type Rect struct {
	Left, Top, Width, Height float64
}

// Center returns the middle of the rectangle.
func (r Rect) Center() math3d.Vec2 {
	return math3d.V2(r.Left+r.Width/2, r.Top+r.Height/2)
}

// Transformer converts data values to world space. X and Y map to the
// drawing surface, Z (optional) maps across Depth.
type Transformer struct {
	X, Y, Z    *Axis
	Viewport   Rect
	Depth      float64
	Transposed bool
}

func nan2() math3d.Vec2 {
	return math3d.V2(math.NaN(), math.NaN())
}

// TransformToVisible maps a raw (x, y) pair to a screen point. The result is
// NaN when either axis cannot map its value; callers skip such points.
func (t *Transformer) TransformToVisible(x, y float64) math3d.Vec2 {
	cx := t.X.ValueToCoefficient(x)
	cy := t.Y.ValueToCoefficient(y)
	if math.IsNaN(cx) || math.IsNaN(cy) {
		return nan2()
	}
	return t.fromCoefficients(cx, cy)
}

// TransformedToVisible is TransformToVisible for values already in the
// axis (possibly log) domain.
func (t *Transformer) TransformedToVisible(x, y float64) math3d.Vec2 {
	cx := t.X.TransformedToCoefficient(x)
	cy := t.Y.TransformedToCoefficient(y)
	if math.IsNaN(cx) || math.IsNaN(cy) {
		return nan2()
	}
	return t.fromCoefficients(cx, cy)
}

func (t *Transformer) fromCoefficients(cx, cy float64) math3d.Vec2 {
	vp := t.Viewport
	if t.Transposed {
		return math3d.V2(vp.Left+cy*vp.Width, vp.Top+(1-cx)*vp.Height)
	}
	return math3d.V2(vp.Left+cx*vp.Width, vp.Top+(1-cy)*vp.Height)
}

// Point places (x, y) on the surface at a world depth.
func (t *Transformer) Point(x, y, depth float64) math3d.Vec3 {
	return t.TransformToVisible(x, y).At(depth)
}

// TransformToVisible3D maps (x, y, z) with z taken through the Z axis.
func (t *Transformer) TransformToVisible3D(x, y, z float64) math3d.Vec3 {
	return t.TransformToVisible(x, y).At(t.DepthOf(z))
}

// DepthOf maps a raw z value across the scene depth. NaN without a Z axis.
func (t *Transformer) DepthOf(z float64) float64 {
	c := t.Z.ValueToCoefficient(z)
	if math.IsNaN(c) {
		return math.NaN()
	}
	return c * t.Depth
}

// HasDepthAxis reports whether z values participate in the mapping.
func (t *Transformer) HasDepthAxis() bool {
	return t.Z != nil && t.Z.Range.Delta() != 0
}

// Origin returns the raw y value columns and areas grow from.
func (t *Transformer) Origin() float64 {
	return t.Y.Untransform(t.Y.TransformedOrigin())
}

// ClipRun prepares a point run for line and area geometry: points whose x
// falls outside the visible x range are dropped, y values are clamped to the
// visible y range. Comparisons happen in the axis domain; the returned
// values are raw. NaN y values pass through untouched so they can split the
// run into gaps.
func ClipRun(xs, ys []float64, xAxis, yAxis *Axis) (cx, cy []float64) {
	n := min(len(xs), len(ys))
	cx = make([]float64, 0, n)
	cy = make([]float64, 0, n)
	for i := range n {
		tx := xAxis.Transform(xs[i])
		if math.IsNaN(tx) || !xAxis.Range.Inside(tx) {
			continue
		}
		cx = append(cx, xs[i])
		cy = append(cy, yAxis.ClampValue(ys[i]))
	}
	return cx, cy
}
