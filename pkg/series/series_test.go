package series

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/taigrr/chart3d/pkg/axis"
	"github.com/taigrr/chart3d/pkg/geometry"
	"github.com/taigrr/chart3d/pkg/scene"
)

var viewport = axis.Rect{Width: 300, Height: 200}

func newChart(t *testing.T, series ...*Series) *Chart {
	t.Helper()
	c := NewChart(viewport, 10)
	for _, s := range series {
		if err := c.AddSeries(s); err != nil {
			t.Fatalf("AddSeries(%s): %v", s.Name, err)
		}
	}
	return c
}

func setData(t *testing.T, c *Chart, s *Series, ys ...float64) {
	t.Helper()
	if err := c.SetData(s, nil, ys, nil); err != nil {
		t.Fatalf("SetData(%s): %v", s.Name, err)
	}
}

func face(t *testing.T, c *Chart, seg *Segment, id int) *scene.Polygon {
	t.Helper()
	p, ok := c.Scene().Get(scene.Key{Segment: seg.ID, Face: id})
	if !ok {
		t.Fatalf("segment %d has no face %d", seg.ID, id)
	}
	return p
}

// screenY is the screen y of v for an auto-fitted [-2, 5] axis.
func screenY(v float64) float64 {
	return viewport.Height * (1 - (v+2)/7)
}

func TestColumnLayout(t *testing.T) {
	s := New("sales", Column)
	s.Spacing = 0
	c := newChart(t, s)
	setData(t, c, s, 3, -2, 5)
	if s.State() != Idle {
		t.Fatalf("state before layout = %v", s.State())
	}
	if !c.Layout() {
		t.Fatal("first Layout should run")
	}
	if s.State() != Built {
		t.Errorf("state after layout = %v", s.State())
	}

	segs := s.Segments()
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	for i, v := range []float64{3, -2, 5} {
		seg := segs[i]
		if seg.ZRange != (axis.Range{Start: 2.5, End: 7.5}) {
			t.Errorf("segment %d band = %+v, want [2.5, 7.5]", i, seg.ZRange)
		}
		want := axis.NewRange(0, v)
		if seg.YRange != want {
			t.Errorf("segment %d y range = %+v, want %+v", i, seg.YRange, want)
		}
		if seg.FaceCount() != geometry.BoxFaceCount {
			t.Errorf("segment %d has %d faces", i, seg.FaceCount())
		}
	}

	neg := segs[1]
	top := face(t, c, neg, geometry.FaceTop)
	bottom := face(t, c, neg, geometry.FaceBottom)
	for _, v := range top.Vertices {
		if !scalar.EqualWithinAbs(v.Y, screenY(0), 1e-9) {
			t.Errorf("top face vertex y = %v, want %v", v.Y, screenY(0))
		}
	}
	for _, v := range bottom.Vertices {
		if !scalar.EqualWithinAbs(v.Y, screenY(-2), 1e-9) {
			t.Errorf("bottom face vertex y = %v, want %v", v.Y, screenY(-2))
		}
	}
	// Category 1 of [-0.5, 2.5] spans [0.5, 1.5].
	front := face(t, c, neg, geometry.FaceFront)
	for _, v := range front.Vertices {
		if v.X < 100-1e-9 || v.X > 200+1e-9 || v.Z != 2.5 {
			t.Errorf("front vertex %v outside the category slot", v)
		}
	}
}

func TestDataErrors(t *testing.T) {
	s := New("s", Line)
	c := newChart(t, s)

	err := c.SetData(s, []float64{0, 1}, []float64{1, 2, 3}, nil)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	var de *DataError
	if !errors.As(err, &de) || de.Field != "x" || de.Series != "s" {
		t.Errorf("err = %#v", err)
	}
	if err := c.SetData(s, nil, []float64{1, 2}, []float64{1}); !errors.As(err, &de) || de.Field != "z" {
		t.Errorf("z mismatch err = %v", err)
	}

	setData(t, c, s, 1, 2, 3)
	if err := c.SetValues(s, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("SetValues err = %v", err)
	}
	stranger := New("stranger", Line)
	if err := c.SetValues(stranger, nil); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("unknown series err = %v", err)
	}
	if err := c.RemoveSeries(stranger); !errors.Is(err, ErrUnknownSeries) {
		t.Errorf("RemoveSeries err = %v", err)
	}
}

func TestMixedOrientation(t *testing.T) {
	c := newChart(t, New("c", Column), New("l", Line))
	if err := c.AddSeries(New("b", StackedBar)); !errors.Is(err, ErrMixedOrientation) {
		t.Errorf("err = %v, want ErrMixedOrientation", err)
	}
	if err := c.AddSeries(New("p", Pie)); err != nil {
		t.Errorf("pie should mix freely: %v", err)
	}
}

func TestSetValuesUpdatesInPlace(t *testing.T) {
	s := New("s", Column)
	c := newChart(t, s)
	setData(t, c, s, 1, 2, 3)
	c.Layout()
	seg := s.Segments()[2]
	before := face(t, c, seg, geometry.FaceTop)
	y := before.Vertices[0].Y

	if err := c.SetValues(s, []float64{1, 2, 1.5}); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if s.Segments()[2] != seg {
		t.Fatal("segment replaced by a value change")
	}
	after := face(t, c, seg, geometry.FaceTop)
	if after != before {
		t.Error("polygon replaced by a value change")
	}
	if after.Vertices[0].Y == y {
		t.Error("top face did not move")
	}

	// A data change discards the cache.
	setData(t, c, s, 1, 2, 3)
	c.Layout()
	if face(t, c, s.Segments()[2], geometry.FaceTop) == before {
		t.Error("SetData kept cached polygons")
	}
}

func TestEmptyValueKeepsTopology(t *testing.T) {
	s := New("s", Column)
	c := newChart(t, s)
	setData(t, c, s, 1, 2, 3)
	c.Layout()
	n := c.Scene().Len()
	if err := c.SetValues(s, []float64{1, math.NaN(), 3}); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if c.Scene().Len() != n {
		t.Errorf("scene size changed from %d to %d", n, c.Scene().Len())
	}
	if got := len(c.Scene().Polygons()); got != 2*geometry.BoxFaceCount {
		t.Errorf("drawable = %d, want %d", got, 2*geometry.BoxFaceCount)
	}
	if !s.Segments()[1].YRange.IsEmpty() {
		t.Errorf("empty point has y range %+v", s.Segments()[1].YRange)
	}
}

func TestEmptyPointModes(t *testing.T) {
	tests := []struct {
		mode     EmptyPoints
		segments int
		middle   axis.Range
	}{
		{Gap, 3, axis.EmptyRange()},
		{Zero, 3, axis.Range{}},
		{Average, 3, axis.Range{Start: 0, End: 2}},
		{Drop, 2, axis.Range{Start: 0, End: 3}},
	}
	for _, tc := range tests {
		s := New("s", Column)
		s.EmptyPoints = tc.mode
		c := newChart(t, s)
		setData(t, c, s, 1, math.NaN(), 3)
		c.Layout()
		segs := s.Segments()
		if len(segs) != tc.segments {
			t.Errorf("mode %d: %d segments, want %d", tc.mode, len(segs), tc.segments)
			continue
		}
		got := segs[1].YRange
		if got != tc.middle && !(got.IsEmpty() && tc.middle.IsEmpty()) {
			t.Errorf("mode %d: middle y range %+v, want %+v", tc.mode, got, tc.middle)
		}
	}
}

func TestDropActsAsGapWhenStacked(t *testing.T) {
	s := New("s", StackedColumn)
	s.EmptyPoints = Drop
	c := newChart(t, s)
	setData(t, c, s, 1, math.NaN(), 3)
	c.Layout()
	if n := len(s.Segments()); n != 3 {
		t.Errorf("stacked series dropped a category: %d segments", n)
	}
}

func TestHiddenAndRemovedSeries(t *testing.T) {
	a, b := New("a", Column), New("b", Column)
	c := newChart(t, a, b)
	setData(t, c, a, 1, 2)
	setData(t, c, b, 3, 4)
	c.Layout()
	if n := c.Scene().Len(); n != 4*geometry.BoxFaceCount {
		t.Fatalf("scene has %d polygons", n)
	}

	if err := c.SetVisible(a, false); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if len(a.Segments()) != 0 {
		t.Error("hidden series kept segments")
	}
	owned := make(map[scene.SegmentID]bool)
	for _, seg := range b.Segments() {
		owned[seg.ID] = true
	}
	for _, p := range c.Scene().Polygons() {
		if !owned[p.Key.Segment] {
			t.Errorf("hidden series polygon %v still drawn", p.Key)
		}
	}
	if n := c.Scene().Len(); n != 2*geometry.BoxFaceCount {
		t.Errorf("scene has %d polygons after hide", n)
	}

	if err := c.RemoveSeries(b); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if n := c.Scene().Len(); n != 0 {
		t.Errorf("scene has %d polygons after remove", n)
	}
	if len(c.Series()) != 1 {
		t.Errorf("series count = %d", len(c.Series()))
	}
}

func TestSideBySideSlots(t *testing.T) {
	a, b := New("a", Column), New("b", Column)
	a.Spacing, b.Spacing = 0, 0
	c := newChart(t, a, b)
	setData(t, c, a, 1, 2)
	setData(t, c, b, 3, 4)
	c.Layout()
	ra, rb := a.Segments()[0].XRange, b.Segments()[0].XRange
	if ra != (axis.Range{Start: -0.5, End: 0}) || rb != (axis.Range{Start: 0, End: 0.5}) {
		t.Errorf("slots = %+v, %+v", ra, rb)
	}
	if a.Segments()[0].ZRange != b.Segments()[0].ZRange {
		t.Error("side-by-side columns should share a band")
	}

	c.SetSideBySide(false)
	c.Layout()
	ra, rb = a.Segments()[0].XRange, b.Segments()[0].XRange
	if ra != rb {
		t.Errorf("layered columns should fill the category: %+v, %+v", ra, rb)
	}
	za, zb := a.Segments()[0].ZRange, b.Segments()[0].ZRange
	if za.End > zb.Start {
		t.Errorf("layered bands overlap: %+v, %+v", za, zb)
	}
}

func TestStackedColumns(t *testing.T) {
	a, b := New("a", StackedColumn), New("b", StackedColumn)
	c := newChart(t, a, b)
	setData(t, c, a, 1, 2)
	setData(t, c, b, 3, -1)
	c.Layout()

	if a.Segments()[0].XRange != b.Segments()[0].XRange {
		t.Error("stacked series should share a slot")
	}
	tests := []struct {
		seg  *Segment
		want axis.Range
	}{
		{a.Segments()[0], axis.Range{Start: 0, End: 1}},
		{a.Segments()[1], axis.Range{Start: 0, End: 2}},
		{b.Segments()[0], axis.Range{Start: 1, End: 4}},
		{b.Segments()[1], axis.Range{Start: -1, End: 0}},
	}
	for i, tc := range tests {
		if tc.seg.YRange != tc.want {
			t.Errorf("case %d: y range %+v, want %+v", i, tc.seg.YRange, tc.want)
		}
	}
	_, y, _ := c.DataBounds()
	if y != (axis.Range{Start: -1, End: 4}) {
		t.Errorf("data bounds y = %+v", y)
	}
}

func TestStackedPercent(t *testing.T) {
	a, b := New("a", StackedColumn100), New("b", StackedColumn100)
	c := newChart(t, a, b)
	setData(t, c, a, 1, 3)
	setData(t, c, b, 3, 1)
	c.Layout()
	for i, want := range []float64{25, 75} {
		if got := a.Segments()[i].YRange.End; !scalar.EqualWithinAbs(got, want, 1e-9) {
			t.Errorf("a[%d] end = %v, want %v", i, got, want)
		}
		if got := b.Segments()[i].YRange.End; !scalar.EqualWithinAbs(got, 100, 1e-9) {
			t.Errorf("b[%d] end = %v, want 100", i, got)
		}
	}
}

// spanX returns the screen x extent of a face.
func spanX(p *scene.Polygon) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range p.Vertices {
		lo, hi = math.Min(lo, v.X), math.Max(hi, v.X)
	}
	return lo, hi
}

func TestBarLayout(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		data  [][]float64
		// want is the screen x span of the first category's front face,
		// per series, for a fitted [0, 3] value axis over 300px.
		want [][2]float64
	}{
		{"bar", []Kind{Bar, Bar}, [][]float64{{1}, {3}}, [][2]float64{{0, 100}, {0, 300}}},
		{"stacked", []Kind{StackedBar, StackedBar}, [][]float64{{1}, {2}}, [][2]float64{{0, 100}, {100, 300}}},
		{"percent", []Kind{StackedBar100, StackedBar100}, [][]float64{{1}, {2}}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ss []*Series
			for i, k := range tc.kinds {
				s := New(string(rune('a'+i)), k)
				s.Spacing = 0
				ss = append(ss, s)
			}
			c := newChart(t, ss...)
			for i, s := range ss {
				setData(t, c, s, tc.data[i]...)
			}
			c.Layout()
			if !c.Transformer().Transposed {
				t.Fatal("bar chart not transposed")
			}
			for i, s := range ss {
				front := face(t, c, s.Segments()[0], geometry.FaceFront)
				lo, hi := spanX(front)
				if tc.want != nil {
					if !scalar.EqualWithinAbs(lo, tc.want[i][0], 1e-9) || !scalar.EqualWithinAbs(hi, tc.want[i][1], 1e-9) {
						t.Errorf("series %d spans x [%v, %v], want %v", i, lo, hi, tc.want[i])
					}
				}
				// Bars grow along screen x; side-by-side bars split the category height.
				ylo, yhi := math.Inf(1), math.Inf(-1)
				for _, v := range front.Vertices {
					ylo, yhi = math.Min(ylo, v.Y), math.Max(yhi, v.Y)
				}
				slots := 1.0
				if tc.kinds[0] == Bar {
					slots = float64(len(ss))
				}
				if hi-lo <= 0 || !scalar.EqualWithinAbs(yhi-ylo, viewport.Height/slots, 1e-9) {
					t.Errorf("series %d front face is %vx%v, want a horizontal bar %v high", i, hi-lo, yhi-ylo, viewport.Height/slots)
				}
			}
		})
	}
}

func TestStackedVisibilityToggle(t *testing.T) {
	a, b := New("a", StackedColumn), New("b", StackedColumn)
	c := newChart(t, a, b)
	setData(t, c, a, 1)
	setData(t, c, b, 2)
	c.Layout()

	if err := c.SetVisible(a, false); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if got := b.Segments()[0].YRange; got != (axis.Range{Start: 0, End: 2}) {
		t.Errorf("b alone = %+v, want [0,2]", got)
	}

	if err := c.SetVisible(a, true); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if got := a.Segments()[0].YRange; got != (axis.Range{Start: 0, End: 1}) {
		t.Errorf("a after show = %+v, want [0,1]", got)
	}
	if got := b.Segments()[0].YRange; got != (axis.Range{Start: 1, End: 3}) {
		t.Errorf("b after show = %+v, want [1,3]", got)
	}
}

func TestLineRuns(t *testing.T) {
	s := New("s", Line)
	c := newChart(t, s)
	setData(t, c, s, 1, 2, math.NaN(), 3, 4)
	c.Layout()
	segs := s.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %d runs, want 2", len(segs))
	}
	for i, seg := range segs {
		if seg.Index != i || seg.FaceCount() != geometry.RibbonFaceCount(2) {
			t.Errorf("run %d: index %d, %d faces", i, seg.Index, seg.FaceCount())
		}
	}
	if segs[1].XRange != (axis.Range{Start: 3, End: 4}) {
		t.Errorf("second run x range = %+v", segs[1].XRange)
	}
}

func TestAreaFaces(t *testing.T) {
	s := New("s", Area)
	c := newChart(t, s)
	setData(t, c, s, 1, 2, 3)
	c.Layout()
	segs := s.Segments()
	if len(segs) != 1 {
		t.Fatalf("got %d segments", len(segs))
	}
	if got, want := segs[0].FaceCount(), geometry.AreaFaceCount(3, false); got != want {
		t.Errorf("faces = %d, want %d", got, want)
	}
	if segs[0].YRange != (axis.Range{Start: 0, End: 3}) {
		t.Errorf("area y range should reach the origin: %+v", segs[0].YRange)
	}
}

func TestPieSweeps(t *testing.T) {
	s := New("s", Pie)
	c := newChart(t, s)
	setData(t, c, s, 1, 1, 2)
	c.Layout()
	segs := s.Segments()
	if len(segs) != 3 {
		t.Fatalf("got %d slices", len(segs))
	}
	want := []axis.Range{{Start: 0, End: 90}, {Start: 90, End: 180}, {Start: 180, End: 360}}
	for i, seg := range segs {
		if !scalar.EqualWithinAbs(seg.XRange.Start, want[i].Start, 1e-9) ||
			!scalar.EqualWithinAbs(seg.XRange.End, want[i].End, 1e-9) {
			t.Errorf("slice %d angles %+v, want %+v", i, seg.XRange, want[i])
		}
		if seg.FaceCount() == 0 {
			t.Errorf("slice %d has no faces", i)
		}
		if seg.ZRange != (axis.Range{Start: 2.5, End: 7.5}) {
			t.Errorf("slice %d band %+v", i, seg.ZRange)
		}
	}
}

func TestDoughnutHole(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		holes []float64
		inner float64
	}{
		{"pie then doughnut", []Kind{Pie, Doughnut}, []float64{0.4, 0.5}, 50},
		{"widest doughnut", []Kind{Doughnut, Doughnut}, []float64{0.2, 0.6}, 60},
		{"pies only", []Kind{Pie, Pie}, []float64{0.4, 0.4}, 0},
	}
	center := viewport.Center()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ss []*Series
			for i, k := range tc.kinds {
				s := New(string(rune('a'+i)), k)
				s.InnerRadius = tc.holes[i]
				ss = append(ss, s)
			}
			c := newChart(t, ss...)
			for _, s := range ss {
				setData(t, c, s, 1, 1)
			}
			c.Layout()
			nearest := math.Inf(1)
			for _, seg := range ss[0].Segments() {
				for _, p := range seg.polys {
					for _, v := range p.Vertices {
						nearest = math.Min(nearest, math.Hypot(v.X-center.X, v.Y-center.Y))
					}
				}
			}
			if !scalar.EqualWithinAbs(nearest, tc.inner, 1e-6) {
				t.Errorf("innermost ring starts at %v, want %v", nearest, tc.inner)
			}
		})
	}
}

func TestDrawOrderFarFirst(t *testing.T) {
	col, line := New("col", Column), New("line", Line)
	c := newChart(t, col, line)
	setData(t, c, col, 1, 2, 3, 4, 5)
	setData(t, c, line, 1, 2, 3, 4, 5)
	c.Layout()

	owner := func() map[scene.SegmentID]*Series {
		m := make(map[scene.SegmentID]*Series)
		for _, s := range []*Series{col, line} {
			for _, seg := range s.Segments() {
				m[seg.ID] = s
			}
		}
		return m
	}
	check := func() {
		t.Helper()
		m := owner()
		seenCol := false
		for _, p := range c.Scene().Polygons() {
			switch m[p.Key.Segment] {
			case col:
				seenCol = true
			case line:
				if seenCol {
					t.Fatalf("line polygon %v drawn after a column", p.Key)
				}
			default:
				t.Fatalf("orphan polygon %v", p.Key)
			}
		}
	}
	check()

	// Splitting the line adds a run that must still go behind the columns.
	if err := c.SetValues(line, []float64{1, 2, math.NaN(), 4, 5}); err != nil {
		t.Fatal(err)
	}
	c.Layout()
	if len(line.Segments()) != 2 {
		t.Fatalf("got %d runs", len(line.Segments()))
	}
	check()
}

func TestLayoutCoalesces(t *testing.T) {
	s := New("s", Column)
	c := newChart(t, s)
	redraws := 0
	c.OnRedraw(func() { redraws++ })
	setData(t, c, s, 1, 2, 3)
	for _, v := range []float64{4, 5, 6} {
		if err := c.SetValues(s, []float64{1, 2, v}); err != nil {
			t.Fatal(err)
		}
	}
	if !c.Layout() || redraws != 1 {
		t.Errorf("redraws = %d after one layout", redraws)
	}
	if c.Layout() || redraws != 1 {
		t.Error("clean chart should not lay out again")
	}
	c.Invalidate()
	if !c.Layout() || redraws != 2 {
		t.Errorf("Invalidate did not force a pass, redraws = %d", redraws)
	}
}

func TestDataBounds(t *testing.T) {
	s := New("s", Column)
	s.Spacing = 0
	c := newChart(t, s)
	setData(t, c, s, 3, -2, 5)
	c.Layout()
	x, y, z := c.DataBounds()
	if x != (axis.Range{Start: -0.5, End: 2.5}) {
		t.Errorf("x = %+v", x)
	}
	if y != (axis.Range{Start: -2, End: 5}) {
		t.Errorf("y = %+v", y)
	}
	if z != (axis.Range{Start: 2.5, End: 7.5}) {
		t.Errorf("z = %+v", z)
	}
}

func TestExplicitAxesClip(t *testing.T) {
	s := New("s", Column)
	c := newChart(t, s)
	setData(t, c, s, 10, 20)
	c.SetAxes(axis.NewLinear(-0.5, 1.5), axis.NewLinear(0, 15), nil)
	c.Layout()
	top := face(t, c, s.Segments()[1], geometry.FaceTop)
	for _, v := range top.Vertices {
		if !scalar.EqualWithinAbs(v.Y, 0, 1e-9) {
			t.Errorf("clipped column top y = %v, want 0", v.Y)
		}
	}
}

func TestXPadding(t *testing.T) {
	tests := []struct {
		name     string
		padding  axis.Padding
		explicit *axis.Axis
		want     axis.Range
		frontX   [2]float64
	}{
		{"normal", axis.PaddingNormal, nil, axis.Range{Start: -0.5, End: 1.5}, [2]float64{0, 150}},
		{"none clips outer slot", axis.PaddingNone, nil, axis.Range{Start: 0, End: 1}, [2]float64{0, 150}},
		{"explicit axis unpadded", axis.PaddingNormal, axis.NewLinear(0, 2), axis.Range{Start: 0, End: 2}, [2]float64{0, 75}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New("s", Column)
			s.Spacing = 0
			c := newChart(t, s)
			setData(t, c, s, 1, 2)
			c.SetXPadding(tc.padding)
			c.SetAxes(tc.explicit, nil, nil)
			c.Layout()
			if got := c.Transformer().X.Range; got != tc.want {
				t.Errorf("x range = %+v, want %+v", got, tc.want)
			}
			lo, hi := spanX(face(t, c, s.Segments()[0], geometry.FaceFront))
			if !scalar.EqualWithinAbs(lo, tc.frontX[0], 1e-9) || !scalar.EqualWithinAbs(hi, tc.frontX[1], 1e-9) {
				t.Errorf("first column spans x [%v, %v], want %v", lo, hi, tc.frontX)
			}
		})
	}
}

func TestSetViewport(t *testing.T) {
	s := New("s", Column)
	c := newChart(t, s)
	setData(t, c, s, 1)
	c.Layout()
	c.SetViewport(axis.Rect{Width: 600, Height: 400}, 20)
	if !c.Layout() {
		t.Fatal("resize did not trigger a layout")
	}
	bottom := face(t, c, s.Segments()[0], geometry.FaceBottom)
	for _, v := range bottom.Vertices {
		if !scalar.EqualWithinAbs(v.Y, 400, 1e-9) {
			t.Errorf("column bottom y = %v, want 400", v.Y)
		}
	}
	if r, depth := c.Viewport(); r.Width != 600 || depth != 20 {
		t.Errorf("Viewport = %+v, %v", r, depth)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"column", Column},
		{" Stacked-Column-100 ", StackedColumn100},
		{"doughnut", Doughnut},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseKind(%q) = %v, %v", tc.in, got, err)
		}
		if got.String() != strings.ToLower(strings.TrimSpace(tc.in)) {
			t.Errorf("String() = %q", got.String())
		}
	}
	if _, err := ParseKind("radar"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v", err)
	}
}

func TestKindPredicates(t *testing.T) {
	if !StackedBar100.Stacked() || !StackedBar100.Percent() || !StackedBar100.Transposed() || !StackedBar100.Boxed() {
		t.Error("StackedBar100 predicates")
	}
	if Line.Stacked() || !Line.Run() || Line.Boxed() {
		t.Error("Line predicates")
	}
	if !Doughnut.Circular() || Scatter.Circular() {
		t.Error("Circular predicates")
	}
}

func TestAverageEmpty(t *testing.T) {
	nan := math.NaN()
	_, got := Average.Apply(nil, []float64{nan, 2, nan, 6, nan})
	want := []float64{2, 2, 4, 6, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Average[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLayoutLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	s := New("s", Column)
	c := newChart(t, s)
	setData(t, c, s, 1)
	c.Layout()
	if !strings.Contains(buf.String(), "chart layout") {
		t.Errorf("log = %q", buf.String())
	}
}

func BenchmarkSetValuesLayout(b *testing.B) {
	s := New("s", Column)
	c := NewChart(viewport, 10)
	if err := c.AddSeries(s); err != nil {
		b.Fatal(err)
	}
	ys := make([]float64, 200)
	for i := range ys {
		ys[i] = float64(i % 17)
	}
	if err := c.SetData(s, nil, ys, nil); err != nil {
		b.Fatal(err)
	}
	c.Layout()
	for b.Loop() {
		ys[0]++
		if err := c.SetValues(s, ys); err != nil {
			b.Fatal(err)
		}
		c.Layout()
	}
}
