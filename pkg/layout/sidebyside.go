// Package layout computes where series sit relative to each other: the
// horizontal slot within a category, the depth band along z, cumulative
// stack values, and pie/doughnut sector placement.
package layout

import (
	"math"
	"slices"

	"github.com/taigrr/chart3d/pkg/axis"
)

// SideBySide is the slot a series occupies within a category, as offsets
// from the category value.
type SideBySide struct {
	Start, End float64
}

// Delta returns the slot width.
func (s SideBySide) Delta() float64 {
	return s.End - s.Start
}

// Median returns half the slot width.
func (s SideBySide) Median() float64 {
	return s.Delta() / 2
}

// Center returns the middle of the slot relative to the category.
func (s SideBySide) Center() float64 {
	return s.Start + s.Median()
}

// Slotted describes a series for slot assignment.
type Slotted struct {
	Visible bool
	Stacked bool
	// Stacked series with equal labels share one slot.
	GroupingLabel string
}

// AssignSlots returns the 1-based side-by-side position of every series and
// the number of distinct positions. Hidden series get position 0.
func AssignSlots(series []Slotted) (positions []int, count int) {
	positions = make([]int, len(series))
	groups := make(map[string]int)
	for i, s := range series {
		if !s.Visible {
			continue
		}
		if s.Stacked {
			if p, ok := groups[s.GroupingLabel]; ok {
				positions[i] = p
				continue
			}
			count++
			groups[s.GroupingLabel] = count
			positions[i] = count
			continue
		}
		count++
		positions[i] = count
	}
	return positions, count
}

// SideBySideInfo returns the slot for position (1-based) among count
// siblings. spacing is the gap fraction in [0, 1]; minDelta is the smallest
// distance between categories. A zero count is treated as a single series.
func SideBySideInfo(position, count int, spacing, minDelta float64) SideBySide {
	if count <= 0 {
		count, position = 1, 1
	}
	if minDelta <= 0 || math.IsNaN(minDelta) {
		minDelta = 1
	}
	spacing = max(0, min(1, spacing))
	width := (1 - spacing) * minDelta
	divisor := width / float64(count)
	start := divisor*float64(position-1) - width/2
	return SideBySide{Start: start, End: start + divisor}
}

// ApplySegmentSpacing shrinks a slot symmetrically by delta*s/2 on each side.
func ApplySegmentSpacing(info SideBySide, s float64) SideBySide {
	if s <= 0 {
		return info
	}
	pad := info.Delta() * min(s, 1) / 2
	return SideBySide{Start: info.Start + pad, End: info.End - pad}
}

// ClampSlot trims the absolute extent of a slot at category x to the
// visible range r. It returns the trimmed slot and false when nothing of it
// is visible.
func ClampSlot(info SideBySide, x float64, r axis.Range) (SideBySide, bool) {
	lo := max(x+info.Start, r.Start)
	hi := min(x+info.End, r.End)
	if lo > hi {
		return SideBySide{}, false
	}
	return SideBySide{Start: lo - x, End: hi - x}, true
}

// CategoryRange pads a data x range for category series. PaddingNormal adds
// half a category on each side so the outermost slots fit; PaddingNone
// keeps the exact data range and the outermost slots are clipped.
func CategoryRange(data axis.Range, p axis.Padding, minDelta float64) axis.Range {
	if data.IsEmpty() || p == axis.PaddingNone {
		return data
	}
	if minDelta <= 0 {
		minDelta = 1
	}
	return axis.Range{Start: data.Start - minDelta/2, End: data.End + minDelta/2}
}

// MinPointsDelta returns the smallest positive gap between distinct x
// values across all runs, or 1 when there is none.
func MinPointsDelta(runs ...[]float64) float64 {
	var xs []float64
	for _, r := range runs {
		for _, x := range r {
			if !math.IsNaN(x) {
				xs = append(xs, x)
			}
		}
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)
	delta := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		delta = min(delta, xs[i]-xs[i-1])
	}
	if math.IsInf(delta, 1) {
		return 1
	}
	return delta
}
