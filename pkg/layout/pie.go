package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// Tunable visual constants.
var (
	// RingGap separates concentric pie/doughnut rings.
	RingGap = 0.1
	// JoinTolerance is how far (device units) past the ribbon half-width a
	// line join intersection may lie and still be snapped.
	JoinTolerance = 3.0
	// SliceDegrees is the arc covered by one tessellated sector quad.
	SliceDegrees = 6.0
)

// Sweeps distributes [startAngle, endAngle] (degrees) over values in
// proportion to their magnitude. NaN values get no sweep. When every value
// is zero all sweeps are zero.
func Sweeps(values []float64, startAngle, endAngle float64) (starts, sweeps []float64) {
	abs := make([]float64, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			abs[i] = math.Abs(v)
		}
	}
	total := endAngle - startAngle
	sum := floats.Sum(abs)
	starts = make([]float64, len(values))
	sweeps = make([]float64, len(values))
	angle := startAngle
	for i, v := range abs {
		starts[i] = angle
		if sum != 0 {
			sweeps[i] = v * total / sum
		}
		angle += sweeps[i]
	}
	return starts, sweeps
}

// Bisector returns the unit direction of the middle of a sector. Angles are
// degrees, clockwise from +x on a y-down surface.
func Bisector(startAngle, sweep float64) math3d.Vec2 {
	a := (startAngle + sweep/2) * math.Pi / 180
	return math3d.V2(math.Cos(a), math.Sin(a))
}

// ExplodeOffset returns the shift of an exploded sector's center.
func ExplodeOffset(startAngle, sweep, explodeRadius float64) math3d.Vec2 {
	return Bisector(startAngle, sweep).Scale(explodeRadius)
}

// Exploded reports whether the sector at index is pulled out.
func Exploded(index, explodeIndex int, explodeAll bool) bool {
	return explodeAll || index == explodeIndex
}

// Ring returns the inner and outer radius of the series at index among count
// concentric series sharing radius. hole is the fraction of radius left
// empty in the middle (0 for a pie); coefficient in (0, 1] is how much of
// its band the ring fills, measured inward from its outer edge.
func Ring(radius float64, index, count int, coefficient, hole float64) (inner, outer float64) {
	if count <= 0 {
		count, index = 1, 0
	}
	if coefficient <= 0 || coefficient > 1 {
		coefficient = 1
	}
	hole = max(0, min(1, hole))
	start := radius * hole
	band := (radius - start) / float64(count)
	outer = start + band*float64(index+1)
	inner = max(start, outer-band*coefficient)
	if index > 0 {
		inner = min(outer, inner+RingGap)
	}
	return inner, outer
}

// TessellationCount returns how many flat slices approximate a sweep.
func TessellationCount(sweep float64) int {
	sweep = math.Abs(sweep)
	if sweep == 0 || math.IsNaN(sweep) {
		return 0
	}
	return int(math.Ceil(sweep / SliceDegrees))
}
