package layout

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/taigrr/chart3d/pkg/axis"
)

const tol = 1e-9

func TestSideBySidePartition(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		for _, s := range []float64{0, 0.2, 0.5, 0.9} {
			var slots []SideBySide
			for p := 1; p <= n; p++ {
				slots = append(slots, SideBySideInfo(p, n, s, 1))
			}
			width := 0.0
			for i, sl := range slots {
				width += sl.Delta()
				if i > 0 && sl.Start < slots[i-1].End-tol {
					t.Errorf("n=%d s=%v: slot %d overlaps previous", n, s, i)
				}
			}
			if !scalar.EqualWithinAbs(width, 1-s, tol) {
				t.Errorf("n=%d s=%v: total width %v, want %v", n, s, width, 1-s)
			}
			center := (slots[0].Start + slots[n-1].End) / 2
			if !scalar.EqualWithinAbs(center, 0, tol) {
				t.Errorf("n=%d s=%v: union centered at %v", n, s, center)
			}
		}
	}
}

func TestSideBySideZeroCount(t *testing.T) {
	got := SideBySideInfo(3, 0, 0, 1)
	if got != (SideBySide{-0.5, 0.5}) {
		t.Errorf("zero count slot = %+v, want full width", got)
	}
}

func TestSideBySideMinDelta(t *testing.T) {
	got := SideBySideInfo(2, 2, 0, 4)
	if got != (SideBySide{0, 2}) {
		t.Errorf("slot = %+v, want [0, 2]", got)
	}
	if got.Median() != 1 || got.Center() != 1 {
		t.Errorf("median %v center %v", got.Median(), got.Center())
	}
}

func TestApplySegmentSpacing(t *testing.T) {
	got := ApplySegmentSpacing(SideBySide{-0.5, 0.5}, 0.2)
	if !scalar.EqualWithinAbs(got.Start, -0.4, tol) || !scalar.EqualWithinAbs(got.End, 0.4, tol) {
		t.Errorf("spaced = %+v, want [-0.4, 0.4]", got)
	}
	if ApplySegmentSpacing(got, 0) != got {
		t.Error("zero spacing must be a no-op")
	}
}

func TestClampSlot(t *testing.T) {
	info := SideBySide{-0.4, 0.4}
	got, ok := ClampSlot(info, 0, axis.Range{Start: 0, End: 5})
	if !ok || got != (SideBySide{0, 0.4}) {
		t.Errorf("clamped = %+v %v", got, ok)
	}
	if _, ok := ClampSlot(info, 9, axis.Range{Start: 0, End: 5}); ok {
		t.Error("slot outside range should be hidden")
	}
}

func TestCategoryRange(t *testing.T) {
	data := axis.Range{Start: 0, End: 4}
	if got := CategoryRange(data, axis.PaddingNormal, 1); got != (axis.Range{Start: -0.5, End: 4.5}) {
		t.Errorf("normal padding = %+v", got)
	}
	if got := CategoryRange(data, axis.PaddingNone, 1); got != data {
		t.Errorf("no padding = %+v", got)
	}
}

func TestAssignSlots(t *testing.T) {
	series := []Slotted{
		{Visible: true},
		{Visible: true, Stacked: true, GroupingLabel: "a"},
		{Visible: false},
		{Visible: true, Stacked: true, GroupingLabel: "a"},
		{Visible: true, Stacked: true, GroupingLabel: "b"},
		{Visible: true, Stacked: true},
		{Visible: true, Stacked: true},
	}
	pos, count := AssignSlots(series)
	want := []int{1, 2, 0, 2, 3, 4, 4}
	if !slices.Equal(pos, want) || count != 4 {
		t.Errorf("positions %v count %d, want %v count 4", pos, count, want)
	}
}

func TestMinPointsDelta(t *testing.T) {
	tests := []struct {
		name string
		runs [][]float64
		want float64
	}{
		{"empty", nil, 1},
		{"single", [][]float64{{3}}, 1},
		{"duplicates", [][]float64{{0, 2, 2, 6}}, 2},
		{"across runs", [][]float64{{0, 4}, {1.5, math.NaN()}}, 1.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MinPointsDelta(tc.runs...); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDepthBand(t *testing.T) {
	tests := []struct {
		name         string
		depth        float64
		index, count int
		shared       bool
		want         DepthBand
	}{
		{"single", 10, 0, 1, false, DepthBand{2.5, 7.5}},
		{"shared", 10, 3, 7, true, DepthBand{2.5, 7.5}},
		{"first of two", 70, 0, 2, false, DepthBand{10, 30}},
		{"second of two", 70, 1, 2, false, DepthBand{40, 60}},
		{"zero count", 10, 4, 0, false, DepthBand{2.5, 7.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DepthBandFor(tc.depth, tc.index, tc.count, tc.shared)
			if !scalar.EqualWithinAbs(got.Start, tc.want.Start, tol) || !scalar.EqualWithinAbs(got.End, tc.want.End, tol) {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestAccumulateStacks(t *testing.T) {
	a := NewAccumulator(0)
	a.Set(1, 1, "", []float64{2, -1, math.NaN()}, false)
	a.Set(2, 2, "", []float64{3, -4, 5}, false)
	a.Set(3, 3, "other", []float64{7}, false)

	s1, _ := a.Values(1)
	s2, _ := a.Values(2)
	s3, _ := a.Values(3)
	check := func(name string, got, want []float64) {
		t.Helper()
		if !slices.Equal(got, want) {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	check("s1 start", s1.Start, []float64{0, 0, 0})
	check("s1 end", s1.End, []float64{2, -1, 0})
	check("s2 start", s2.Start, []float64{2, -1, 0})
	check("s2 end", s2.End, []float64{5, -5, 5})
	check("independent group start", s3.Start, []float64{0})
	check("independent group end", s3.End, []float64{7})
}

func TestAccumulateIdempotent(t *testing.T) {
	a := NewAccumulator(0)
	a.Set(1, 1, "g", []float64{1, 2, 3}, false)
	a.Set(2, 2, "g", []float64{4, -5, 6}, false)
	first, _ := a.Values(2)
	firstStart := slices.Clone(first.Start)
	if !a.Calculated() {
		t.Fatal("expected cached results")
	}
	a.Invalidate()
	a.Accumulate()
	a.Accumulate()
	second, _ := a.Values(2)
	if !slices.Equal(firstStart, second.Start) || !slices.Equal(first.End, second.End) {
		t.Errorf("recompute changed results: %v vs %v", first, second)
	}
}

func TestAccumulatePercent(t *testing.T) {
	a := NewAccumulator(0)
	a.Set(1, 1, "", []float64{1, 0, -2}, true)
	a.Set(2, 2, "", []float64{3, 0, 6}, true)
	s1, _ := a.Values(1)
	s2, _ := a.Values(2)
	// Category 0: 25% + 75%.
	if !scalar.EqualWithinAbs(s2.End[0], 100, tol) || !scalar.EqualWithinAbs(s1.End[0], 25, tol) {
		t.Errorf("category 0: s1 %v s2 %v", s1.End[0], s2.End[0])
	}
	// Zero sum guard.
	if s1.End[1] != 0 || s2.End[1] != 0 {
		t.Errorf("zero-sum category: %v %v", s1.End[1], s2.End[1])
	}
	// Shares of |v| sum to 1.
	share := math.Abs(s1.End[2]-s1.Start[2]) + math.Abs(s2.End[2]-s2.Start[2])
	if !scalar.EqualWithinAbs(share/100, 1, tol) {
		t.Errorf("shares sum to %v", share/100)
	}
}

func TestAccumulatorRemove(t *testing.T) {
	a := NewAccumulator(0)
	a.Set(1, 1, "", []float64{1}, false)
	a.Set(2, 2, "", []float64{1}, false)
	a.Remove(1)
	s, _ := a.Values(2)
	if s.Start[0] != 0 || s.End[0] != 1 {
		t.Errorf("after remove: %+v", s)
	}
	if _, ok := a.Values(1); ok {
		t.Error("removed series still present")
	}
}

func TestAccumulatorRank(t *testing.T) {
	a := NewAccumulator(0)
	// Registered out of order, as after a hide/show toggle.
	a.Set(2, 1, "", []float64{2}, false)
	a.Set(1, 0, "", []float64{1}, false)
	a.Accumulate()
	s1, _ := a.Values(1)
	s2, _ := a.Values(2)
	if s1.Start[0] != 0 || s1.End[0] != 1 {
		t.Errorf("rank 0 = %+v, want [0,1]", s1)
	}
	if s2.Start[0] != 1 || s2.End[0] != 3 {
		t.Errorf("rank 1 = %+v, want [1,3]", s2)
	}

	a.SetRank(1, 2)
	if a.Calculated() {
		t.Fatal("rank change left stacks calculated")
	}
	a.Accumulate()
	s1, _ = a.Values(1)
	if s1.Start[0] != 2 || s1.End[0] != 3 {
		t.Errorf("after SetRank = %+v, want [2,3]", s1)
	}
}

func TestSweeps(t *testing.T) {
	starts, sweeps := Sweeps([]float64{1, 1, 2}, 0, 360)
	if !slices.Equal(sweeps, []float64{90, 90, 180}) {
		t.Errorf("sweeps = %v", sweeps)
	}
	if !slices.Equal(starts, []float64{0, 90, 180}) {
		t.Errorf("starts = %v", starts)
	}

	_, sweeps = Sweeps([]float64{0, 0}, 0, 360)
	if !slices.Equal(sweeps, []float64{0, 0}) {
		t.Errorf("zero sum sweeps = %v", sweeps)
	}
	_, sweeps = Sweeps([]float64{-1, math.NaN(), 3}, 90, 270)
	if !slices.Equal(sweeps, []float64{45, 0, 135}) {
		t.Errorf("half pie sweeps = %v", sweeps)
	}
}

func TestExplodeOffset(t *testing.T) {
	// Bisector at 90 degrees points down on a y-down surface.
	off := ExplodeOffset(0, 180, 10)
	if !scalar.EqualWithinAbs(off.X, 0, tol) || !scalar.EqualWithinAbs(off.Y, 10, tol) {
		t.Errorf("offset = %v, want (0, 10)", off)
	}
	if !Exploded(2, 2, false) || Exploded(1, 2, false) || !Exploded(1, -1, true) {
		t.Error("Exploded selection wrong")
	}
}

func TestRing(t *testing.T) {
	tests := []struct {
		name                string
		index, count        int
		coefficient, hole   float64
		wantInner, wantOuter float64
	}{
		{"pie", 0, 1, 1, 0, 0, 100},
		{"doughnut", 0, 1, 1, 0.4, 40, 100},
		{"inner of two", 0, 2, 1, 0, 0, 50},
		{"outer of two", 1, 2, 1, 0, 50 + 0.1, 100},
		{"partial band", 1, 2, 0.5, 0, 75 + 0.1, 100},
		{"zero count", 3, 0, 1, 0, 0, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, out := Ring(100, tc.index, tc.count, tc.coefficient, tc.hole)
			if !scalar.EqualWithinAbs(in, tc.wantInner, tol) || !scalar.EqualWithinAbs(out, tc.wantOuter, tol) {
				t.Errorf("got [%v, %v], want [%v, %v]", in, out, tc.wantInner, tc.wantOuter)
			}
		})
	}
}

func TestTessellationCount(t *testing.T) {
	tests := []struct {
		sweep float64
		want  int
	}{
		{0, 0}, {1, 1}, {6, 1}, {6.5, 2}, {90, 15}, {360, 60}, {-12, 2},
	}
	for _, tc := range tests {
		if got := TessellationCount(tc.sweep); got != tc.want {
			t.Errorf("TessellationCount(%v) = %d, want %d", tc.sweep, got, tc.want)
		}
	}
}

func BenchmarkAccumulate(b *testing.B) {
	a := NewAccumulator(0)
	vals := make([]float64, 500)
	for i := range vals {
		vals[i] = float64(i%7) - 3
	}
	for id := range 8 {
		a.Set(id, id, "", vals, id%2 == 0)
	}
	for b.Loop() {
		a.Invalidate()
		a.Accumulate()
	}
}
