package layout

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Stack holds the cumulative extent of one stacked series per category.
type Stack struct {
	Start []float64
	End   []float64
}

type stackEntry struct {
	id      int
	rank    int
	group   string
	values  []float64
	percent bool
	stack   Stack
}

// Accumulator computes stack baselines for every stacked series of a chart.
// Series sharing a grouping label stack together, lowest rank at the
// bottom; equal ranks keep registration order.
// Results are cached until Invalidate, Set or Remove.
type Accumulator struct {
	// Origin is the baseline of the first series in each stack.
	Origin float64

	entries    []*stackEntry
	calculated bool
}

// NewAccumulator returns an accumulator stacking from origin.
func NewAccumulator(origin float64) *Accumulator {
	return &Accumulator{Origin: origin}
}

// Set registers or replaces the values of series id at the given rank
// within its group. percent selects the 100% variant, where each value
// becomes its share of the category's absolute sum within the group.
func (a *Accumulator) Set(id, rank int, group string, values []float64, percent bool) {
	a.calculated = false
	for _, e := range a.entries {
		if e.id == id {
			e.rank, e.group, e.values, e.percent = rank, group, values, percent
			return
		}
	}
	a.entries = append(a.entries, &stackEntry{id: id, rank: rank, group: group, values: values, percent: percent})
}

// SetRank moves series id to rank without touching its values.
func (a *Accumulator) SetRank(id, rank int) {
	for _, e := range a.entries {
		if e.id == id && e.rank != rank {
			e.rank = rank
			a.calculated = false
		}
	}
}

// Remove drops series id.
func (a *Accumulator) Remove(id int) {
	for i, e := range a.entries {
		if e.id == id {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			a.calculated = false
			return
		}
	}
}

// Reset drops every series.
func (a *Accumulator) Reset() {
	a.entries = a.entries[:0]
	a.calculated = false
}

// Invalidate forces the next Accumulate to recompute.
func (a *Accumulator) Invalidate() {
	a.calculated = false
}

// Calculated reports whether cached results are current.
func (a *Accumulator) Calculated() bool {
	return a.calculated
}

// Values returns the stack of series id, accumulating first if needed.
func (a *Accumulator) Values(id int) (Stack, bool) {
	a.Accumulate()
	for _, e := range a.entries {
		if e.id == id {
			return e.stack, true
		}
	}
	return Stack{}, false
}

// Accumulate recomputes every group. Later series depend on the running
// totals of earlier ones, so a group is always derived as a whole.
func (a *Accumulator) Accumulate() {
	if a.calculated {
		return
	}
	slices.SortStableFunc(a.entries, func(x, y *stackEntry) int {
		return cmp.Compare(x.rank, y.rank)
	})
	var order []string
	groups := make(map[string][]*stackEntry)
	for _, e := range a.entries {
		if _, ok := groups[e.group]; !ok {
			order = append(order, e.group)
		}
		groups[e.group] = append(groups[e.group], e)
	}
	for _, g := range order {
		a.accumulateGroup(groups[g])
	}
	a.calculated = true
}

func (a *Accumulator) accumulateGroup(entries []*stackEntry) {
	n := 0
	for _, e := range entries {
		n = max(n, len(e.values))
	}
	// Absolute sums per category for 100% series.
	sums := make([]float64, n)
	abs := make([]float64, 0, len(entries))
	for i := range n {
		abs = abs[:0]
		for _, e := range entries {
			if i < len(e.values) && !math.IsNaN(e.values[i]) {
				abs = append(abs, math.Abs(e.values[i]))
			}
		}
		sums[i] = floats.Sum(abs)
	}

	pos := make([]float64, n)
	neg := make([]float64, n)
	posSeen := make([]bool, n)
	negSeen := make([]bool, n)
	for _, e := range entries {
		m := len(e.values)
		e.stack = Stack{Start: make([]float64, m), End: make([]float64, m)}
		for i, v := range e.values {
			if math.IsNaN(v) {
				e.stack.Start[i], e.stack.End[i] = a.Origin, a.Origin
				continue
			}
			if e.percent {
				if sums[i] == 0 {
					v = 0
				} else {
					v = v / sums[i] * 100
				}
			}
			total, seen := &pos[i], &posSeen[i]
			if v < 0 {
				total, seen = &neg[i], &negSeen[i]
			}
			start := *total
			if !*seen {
				start = a.Origin
			}
			end := v + *total
			e.stack.Start[i], e.stack.End[i] = start, end
			*total = end
			*seen = true
		}
	}
}
