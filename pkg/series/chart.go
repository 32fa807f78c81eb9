// Package series turns chart series data into scene polygons.
//
// A Chart owns one Scene shared by all of its series. Mutators only mark
// the chart dirty; Layout performs a single coalesced rebuild and then
// signals redraw. Data changes discard a series' geometry cache, while
// value, axis and viewport changes update cached polygons in place when
// the topology is unchanged.
package series

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/taigrr/chart3d/pkg/axis"
	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/scene"
)

// Chart lays out a set of series into one scene.
type Chart struct {
	mu sync.Mutex

	// Explicit axes. A nil X or Y axis is fitted to the data.
	x, y, z  *axis.Axis
	viewport axis.Rect
	depth    float64
	// Columns of different series share a category side by side. When
	// false each series gets its own depth band instead.
	sideBySide bool
	xPadding   axis.Padding

	scene  *scene.Scene
	series []*Series
	stacks *layout.Accumulator
	tr     axis.Transformer

	nextSegment scene.SegmentID
	nextSeries  int
	redraw      []func()
	dirty       bool
	// Series order or depth layering changed; the scene is rebuilt.
	structural bool
}

// NewChart returns an empty chart drawing into viewport with the given
// scene depth.
func NewChart(viewport axis.Rect, depth float64) *Chart {
	return &Chart{
		viewport:   viewport,
		depth:      depth,
		sideBySide: true,
		scene:      scene.New(),
		stacks:     layout.NewAccumulator(0),
	}
}

// Scene returns the chart's draw list.
func (c *Chart) Scene() *scene.Scene {
	return c.scene
}

// Series returns the series in the order they were added.
func (c *Chart) Series() []*Series {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.series)
}

// Transformer returns the coordinate mapping of the last layout pass.
func (c *Chart) Transformer() axis.Transformer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr
}

// Viewport returns the plot area and scene depth.
func (c *Chart) Viewport() (axis.Rect, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport, c.depth
}

// OnRedraw registers fn to run after every layout pass that changed
// geometry.
func (c *Chart) OnRedraw(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.redraw = append(c.redraw, fn)
}

// AddSeries appends s to the chart. Bar and column kinds cannot be mixed.
func (c *Chart) AddSeries(s *Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.series {
		if o == s {
			return nil
		}
		if o.Kind.Boxed() && s.Kind.Boxed() && o.Kind.Transposed() != s.Kind.Transposed() {
			return NewDataError(s.Name, "kind", ErrMixedOrientation)
		}
	}
	c.nextSeries++
	s.id = c.nextSeries
	s.state = Idle
	s.segments = nil
	s.rebuild = true
	s.stackDirty = true
	c.series = append(c.series, s)
	c.structural = true
	c.dirty = true
	return nil
}

// RemoveSeries drops s and all of its polygons.
func (c *Chart) RemoveSeries(s *Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.Index(c.series, s)
	if i < 0 {
		return NewDataError(s.Name, "series", ErrUnknownSeries)
	}
	for _, seg := range s.segments {
		c.scene.RemoveSegment(seg.ID)
	}
	s.segments = nil
	s.state = Idle
	c.stacks.Remove(s.id)
	c.series = slices.Delete(c.series, i, i+1)
	c.structural = true
	c.dirty = true
	return nil
}

func (c *Chart) owned(s *Series) error {
	if !slices.Contains(c.series, s) {
		return NewDataError(s.Name, "series", ErrUnknownSeries)
	}
	return nil
}

// SetData replaces the data of s and discards its cached geometry. xs may be
// nil, in which case points sit at 0, 1, 2, ...; zs is optional.
func (c *Chart) SetData(s *Series, xs, ys, zs []float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.owned(s); err != nil {
		return err
	}
	if xs == nil {
		xs = indices(len(ys))
	}
	if len(xs) != len(ys) {
		return NewDataError(s.Name, "x", ErrLengthMismatch)
	}
	if zs != nil && len(zs) != len(ys) {
		return NewDataError(s.Name, "z", ErrLengthMismatch)
	}
	s.xs, s.ys, s.zs = xs, ys, zs
	s.rebuild = true
	s.stackDirty = true
	c.dirty = true
	return nil
}

// SetValues replaces only the y values of s, keeping its x values and its
// cached geometry. It is the path animated transitions use.
func (c *Chart) SetValues(s *Series, ys []float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.owned(s); err != nil {
		return err
	}
	if len(ys) != len(s.ys) {
		return NewDataError(s.Name, "y", ErrLengthMismatch)
	}
	s.ys = ys
	s.stackDirty = true
	c.dirty = true
	return nil
}

// SetVisible shows or hides s.
func (c *Chart) SetVisible(s *Series, visible bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.owned(s); err != nil {
		return err
	}
	if s.Hidden == !visible {
		return nil
	}
	s.Hidden = !visible
	s.stackDirty = true
	c.structural = true
	c.dirty = true
	return nil
}

// SetAxes sets explicit axes. nil fits that axis to the data; a nil z axis
// keeps depth out of the mapping.
func (c *Chart) SetAxes(x, y, z *axis.Axis) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.x, c.y, c.z = x, y, z
	c.dirty = true
}

// SetViewport resizes the plot area and scene depth.
func (c *Chart) SetViewport(r axis.Rect, depth float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport, c.depth = r, depth
	c.dirty = true
}

// SetSideBySide toggles side-by-side column placement.
func (c *Chart) SetSideBySide(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sideBySide != on {
		c.sideBySide = on
		c.structural = true
		c.dirty = true
	}
}

// SetXPadding selects how a fitted category axis pads its range. An
// explicit x axis from SetAxes is used as given.
func (c *Chart) SetXPadding(p axis.Padding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.xPadding = p
	c.dirty = true
}

// Invalidate forces the next Layout to run even without changes.
func (c *Chart) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
}

// Layout rebuilds geometry if anything changed since the last pass and then
// runs the redraw callbacks. It reports whether a pass ran.
func (c *Chart) Layout() bool {
	c.mu.Lock()
	if !c.dirty {
		c.mu.Unlock()
		return false
	}
	start := time.Now()
	c.layout()
	c.dirty = false
	callbacks := slices.Clone(c.redraw)
	Logger().Debug("chart layout",
		"series", len(c.series),
		"polygons", c.scene.Len(),
		"elapsed", time.Since(start))
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return true
}

// DataBounds returns the union of the segment ranges of every visible
// series per axis, as of the last layout pass.
func (c *Chart) DataBounds() (x, y, z axis.Range) {
	c.mu.Lock()
	defer c.mu.Unlock()
	x, y, z = axis.EmptyRange(), axis.EmptyRange(), axis.EmptyRange()
	for _, s := range c.series {
		if !s.visible() {
			continue
		}
		for _, seg := range s.segments {
			x = x.Union(seg.XRange)
			y = y.Union(seg.YRange)
			z = z.Union(seg.ZRange)
		}
	}
	return x, y, z
}

// pass carries per-series layout decisions for one Layout call.
type pass struct {
	band     layout.DepthBand
	position int
	slots    int
	minDelta float64
	stack    layout.Stack
	// Circular series.
	ring, rings  int
	center       math3d.Vec2
	radius, hole float64
}

func (c *Chart) layout() {
	if c.structural {
		c.scene.Clear()
		for _, s := range c.series {
			s.segments = nil
		}
		c.structural = false
	}

	origin := 0.0
	if c.y != nil {
		origin = c.y.Untransform(c.y.TransformedOrigin())
	}
	if c.stacks.Origin != origin {
		c.stacks.Origin = origin
		c.stacks.Invalidate()
	}
	// Stacks follow chart order, whatever order series were (re)registered in.
	for i, s := range c.series {
		if !s.Kind.Stacked() {
			continue
		}
		if !s.stackDirty {
			c.stacks.SetRank(s.id, i)
			continue
		}
		if s.visible() {
			_, ys := s.prepared()
			c.stacks.Set(s.id, i, s.Kind.family()+"/"+s.GroupingLabel, ys, s.Kind.Percent())
		} else {
			c.stacks.Remove(s.id)
		}
		s.stackDirty = false
	}
	c.stacks.Accumulate()

	c.tr = c.resolveTransformer()
	passes := c.plan()

	order := make([]*Series, 0, len(c.series))
	for _, s := range c.series {
		if _, ok := passes[s]; ok {
			order = append(order, s)
		}
	}
	// Far bands first.
	slices.SortStableFunc(order, func(a, b *Series) int {
		return cmp.Compare(passes[b].band.Start, passes[a].band.Start)
	})
	for _, s := range c.series {
		if !s.visible() {
			c.reconcile(s, nil, nil)
			s.state = Built
		}
	}
	for i, s := range order {
		s.state = Rebuilding
		items := c.build(s, passes[s])
		c.reconcile(s, items, order[i+1:])
		s.state = Built
	}
}

// resolveTransformer fits missing axes to the data and builds the mapping.
func (c *Chart) resolveTransformer() axis.Transformer {
	xr, yr := axis.EmptyRange(), axis.EmptyRange()
	var boxed [][]float64
	transposed := false
	for _, s := range c.series {
		if !s.visible() || s.Kind.Circular() {
			continue
		}
		transposed = transposed || s.Kind.Transposed()
		xs, ys := s.prepared()
		if s.Kind.Boxed() {
			boxed = append(boxed, xs)
		}
		for _, x := range xs {
			xr = xr.Include(x)
		}
		if st, ok := c.stacks.Values(s.id); ok && s.Kind.Stacked() {
			for i := range st.End {
				yr = yr.Include(st.Start[i]).Include(st.End[i])
			}
			continue
		}
		for _, y := range ys {
			yr = yr.Include(y)
		}
	}

	x := c.x
	if x == nil {
		r := xr
		if len(boxed) > 0 {
			r = layout.CategoryRange(xr, c.xPadding, layout.MinPointsDelta(boxed...))
		}
		x = fitted(r, false)
	}
	y := c.y
	if y == nil {
		y = fitted(yr.Include(0), true)
	}
	if x.Range.Delta() == 0 || y.Range.Delta() == 0 {
		Logger().Warn("degenerate axis range", "x", x.Range, "y", y.Range)
	}
	return axis.Transformer{
		X: x, Y: y, Z: c.z,
		Viewport:   c.viewport,
		Depth:      c.depth,
		Transposed: transposed,
	}
}

// fitted returns a linear axis over r, widened to unit size when r is empty
// or a single value.
func fitted(r axis.Range, keepZero bool) *axis.Axis {
	if r.IsEmpty() {
		return axis.NewLinear(0, 1)
	}
	if r.Delta() == 0 {
		if keepZero && r.Start == 0 {
			return axis.NewLinear(0, 1)
		}
		return axis.NewLinear(r.Start-0.5, r.End+0.5)
	}
	return axis.NewLinear(r.Start, r.End)
}

// plan assigns slots, depth bands and rings to every visible series.
func (c *Chart) plan() map[*Series]pass {
	var (
		slotted []layout.Slotted
		boxed   []*Series
		boxedXs [][]float64
	)
	for _, s := range c.series {
		if s.visible() && s.Kind.Boxed() {
			xs, _ := s.prepared()
			boxed = append(boxed, s)
			boxedXs = append(boxedXs, xs)
			slotted = append(slotted, layout.Slotted{
				Visible:       true,
				Stacked:       s.Kind.Stacked(),
				GroupingLabel: s.Kind.family() + "/" + s.GroupingLabel,
			})
		}
	}
	positions, slots := layout.AssignSlots(slotted)
	minDelta := layout.MinPointsDelta(boxedXs...)

	// Depth layers: boxes first (one shared layer side by side, else one
	// per slot), then every other cartesian series; stacked areas of one
	// group share a layer.
	layerOf := make(map[*Series]int)
	layers := 0
	if len(boxed) > 0 {
		for i, s := range boxed {
			if c.sideBySide {
				layerOf[s] = 0
			} else {
				layerOf[s] = positions[i] - 1
			}
		}
		layers = 1
		if !c.sideBySide {
			layers = slots
		}
	}
	areaGroups := make(map[string]int)
	var circular []*Series
	for _, s := range c.series {
		switch {
		case !s.visible() || s.Kind.Boxed():
		case s.Kind.Circular():
			circular = append(circular, s)
		case s.Kind.Stacked():
			key := s.Kind.family() + "/" + s.GroupingLabel
			l, ok := areaGroups[key]
			if !ok {
				l = layers
				areaGroups[key] = l
				layers++
			}
			layerOf[s] = l
		default:
			layerOf[s] = layers
			layers++
		}
	}

	out := make(map[*Series]pass, len(c.series))
	for i, s := range boxed {
		p := pass{
			band:     layout.DepthBandFor(c.depth, layerOf[s], layers, false),
			position: positions[i],
			slots:    slots,
			minDelta: minDelta,
		}
		if !c.sideBySide {
			p.position, p.slots = 1, 1
		}
		if st, ok := c.stacks.Values(s.id); ok && s.Kind.Stacked() {
			p.stack = st
		}
		out[s] = p
	}
	for s, l := range layerOf {
		if s.Kind.Boxed() {
			continue
		}
		p := pass{band: layout.DepthBandFor(c.depth, l, layers, false)}
		if st, ok := c.stacks.Values(s.id); ok && s.Kind.Stacked() {
			p.stack = st
		}
		out[s] = p
	}

	if len(circular) > 0 {
		explode := 0.0
		for _, s := range circular {
			explode = max(explode, s.ExplodeRadius)
		}
		half := math.Min(c.viewport.Width, c.viewport.Height) / 2
		radius := math.Max(half-explode, half/4)
		center := c.viewport.Center()
		// Concentric rings share one partition, so the widest hole wins.
		hole := 0.0
		for _, s := range circular {
			if s.Kind == Doughnut {
				hole = max(hole, s.InnerRadius)
			}
		}
		for i, s := range circular {
			out[s] = pass{
				band:   layout.DepthBandFor(c.depth, 0, 0, true),
				ring:   i,
				rings:  len(circular),
				center: center,
				radius: radius,
				hole:   hole,
			}
		}
	}
	return out
}

func indices(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
