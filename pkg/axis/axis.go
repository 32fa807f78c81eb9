// Package axis maps chart data values onto the drawing surface.
//
// An Axis describes one visible range. Logarithmic axes keep their range in
// the post-log domain, so every comparison (clipping, coefficient math) runs
// on log values and only the final plotted magnitude is recovered with pow.
package axis

import (
	"math"
)

// Padding selects how a category axis fitted to the data pads its range.
// Explicit axes are never padded.
type Padding int

const (
	PaddingNormal Padding = iota // Half a category of room on each side
	PaddingNone                  // Exact fit to the data range
)

// Range is a closed interval [Start, End].
type Range struct {
	Start, End float64
}

// NewRange returns the range spanning a and b in either order.
func NewRange(a, b float64) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// EmptyRange returns a range that any Union will replace.
func EmptyRange() Range {
	return Range{Start: math.Inf(1), End: math.Inf(-1)}
}

// Delta returns End - Start.
func (r Range) Delta() float64 {
	return r.End - r.Start
}

// Median returns the midpoint of the range.
func (r Range) Median() float64 {
	return (r.Start + r.End) / 2
}

// IsEmpty reports whether the range contains no values.
func (r Range) IsEmpty() bool {
	return !(r.Start <= r.End)
}

// Inside reports whether v lies in the closed range.
func (r Range) Inside(v float64) bool {
	return v >= r.Start && v <= r.End
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Start, math.Min(r.End, v))
}

// Union returns the smallest range containing both.
func (r Range) Union(o Range) Range {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Range{Start: math.Min(r.Start, o.Start), End: math.Max(r.End, o.End)}
}

// Include grows the range to contain v. NaN is ignored.
func (r Range) Include(v float64) Range {
	if math.IsNaN(v) {
		return r
	}
	return r.Union(Range{Start: v, End: v})
}

// Axis is the resolved state of one chart axis.
type Axis struct {
	// Visible range. For logarithmic axes Start and End are log values.
	Range         Range
	IsLogarithmic bool
	LogBase       float64
	// Origin is the data value columns and areas grow from (raw, not log).
	Origin     float64
	IsInversed bool
}

// NewLinear returns a linear axis over [start, end] with origin 0.
func NewLinear(start, end float64) *Axis {
	return &Axis{Range: NewRange(start, end)}
}

// NewLogarithmic returns a log axis whose visible range covers the raw
// values [start, end]. Its origin is the range start so columns grow from
// the bottom of the plot.
func NewLogarithmic(start, end, base float64) *Axis {
	a := &Axis{IsLogarithmic: true, LogBase: base}
	a.Range = NewRange(a.Transform(start), a.Transform(end))
	a.Origin = a.Untransform(a.Range.Start)
	return a
}

func (a *Axis) base() float64 {
	if a.LogBase <= 0 || a.LogBase == 1 {
		return 10
	}
	return a.LogBase
}

// Transform converts a raw data value into the axis domain. For log axes
// non-positive values have no image and yield NaN.
func (a *Axis) Transform(v float64) float64 {
	if !a.IsLogarithmic {
		return v
	}
	if v <= 0 {
		return math.NaN()
	}
	return math.Log(v) / math.Log(a.base())
}

// Untransform recovers the raw value from an axis-domain value.
func (a *Axis) Untransform(v float64) float64 {
	if !a.IsLogarithmic {
		return v
	}
	return math.Pow(a.base(), v)
}

// TransformedOrigin returns the origin in the axis domain, clamped into the
// visible range so a log axis with origin 0 still has a usable baseline.
func (a *Axis) TransformedOrigin() float64 {
	o := a.Transform(a.Origin)
	if math.IsNaN(o) {
		return a.Range.Start
	}
	return o
}

// ValueToCoefficient maps a raw value to its position in [0, 1] across the
// visible range. It returns NaN for a nil axis, a zero-width range or a
// value outside the log domain.
func (a *Axis) ValueToCoefficient(v float64) float64 {
	if a == nil {
		return math.NaN()
	}
	return a.coefficient(a.Transform(v))
}

// TransformedToCoefficient is ValueToCoefficient for a value already in the
// axis domain.
func (a *Axis) TransformedToCoefficient(v float64) float64 {
	if a == nil {
		return math.NaN()
	}
	return a.coefficient(v)
}

func (a *Axis) coefficient(v float64) float64 {
	d := a.Range.Delta()
	if d == 0 || math.IsNaN(d) || math.IsNaN(v) {
		return math.NaN()
	}
	c := (v - a.Range.Start) / d
	if a.IsInversed {
		c = 1 - c
	}
	return c
}

// CoefficientToValue is the inverse of ValueToCoefficient.
func (a *Axis) CoefficientToValue(c float64) float64 {
	if a == nil || a.Range.Delta() == 0 {
		return math.NaN()
	}
	if a.IsInversed {
		c = 1 - c
	}
	return a.Untransform(a.Range.Start + c*a.Range.Delta())
}

// Visible reports whether the raw value falls in the visible range.
func (a *Axis) Visible(v float64) bool {
	return a.Range.Inside(a.Transform(v))
}

// ClampValue limits a raw value to the visible range, comparing in the axis
// domain. Values with no image on a log axis clamp to the range start.
func (a *Axis) ClampValue(v float64) float64 {
	t := a.Transform(v)
	if math.IsNaN(t) {
		if math.IsNaN(v) {
			return v
		}
		t = a.Range.Start
	}
	return a.Untransform(a.Range.Clamp(t))
}
