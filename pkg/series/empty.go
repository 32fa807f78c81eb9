package series

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// EmptyPoints selects how NaN values are treated before geometry is built.
type EmptyPoints int

const (
	// Gap leaves the point without geometry; runs split around it.
	Gap EmptyPoints = iota
	// Zero substitutes 0.
	Zero
	// Average substitutes the mean of the nearest valid neighbors.
	Average
	// Drop removes the point entirely.
	Drop
)

// Apply returns x and y with empty y values handled. The inputs are not
// modified.
func (e EmptyPoints) Apply(xs, ys []float64) ([]float64, []float64) {
	switch e {
	case Zero:
		out := make([]float64, len(ys))
		for i, y := range ys {
			if math.IsNaN(y) {
				y = 0
			}
			out[i] = y
		}
		return xs, out
	case Average:
		return xs, averageEmpty(ys)
	case Drop:
		keep := make([]bool, len(ys))
		n := 0
		for i, y := range ys {
			if keep[i] = !math.IsNaN(y); keep[i] {
				n++
			}
		}
		ox := make([]float64, 0, n)
		oy := make([]float64, 0, n)
		for i := range ys {
			if keep[i] {
				ox = append(ox, xs[i])
				oy = append(oy, ys[i])
			}
		}
		return ox, oy
	default:
		return xs, ys
	}
}

// averageEmpty replaces each NaN with the mean of its nearest valid
// neighbors on either side, or the single neighbor at an edge.
func averageEmpty(ys []float64) []float64 {
	out := make([]float64, len(ys))
	copy(out, ys)
	for i, y := range ys {
		if !math.IsNaN(y) {
			continue
		}
		var near []float64
		for j := i - 1; j >= 0; j-- {
			if !math.IsNaN(ys[j]) {
				near = append(near, ys[j])
				break
			}
		}
		for j := i + 1; j < len(ys); j++ {
			if !math.IsNaN(ys[j]) {
				near = append(near, ys[j])
				break
			}
		}
		if len(near) > 0 {
			out[i] = floats.Sum(near) / float64(len(near))
		}
	}
	return out
}
