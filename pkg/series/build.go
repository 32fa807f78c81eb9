package series

import (
	"image/color"
	"math"

	"github.com/taigrr/chart3d/pkg/axis"
	"github.com/taigrr/chart3d/pkg/geometry"
	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/scene"
)

// item is the freshly built geometry of one segment.
type item struct {
	index                  int
	xs, ys, zs             []float64
	xRange, yRange, zRange axis.Range
	fill                   color.RGBA
	faces                  []geometry.Face
}

// prepared returns the series data with empty points handled. Stacked
// series never drop points so categories stay aligned across the stack.
func (s *Series) prepared() (xs, ys []float64) {
	mode := s.EmptyPoints
	if mode == Drop && s.Kind.Stacked() {
		mode = Gap
	}
	return mode.Apply(s.xs, s.ys)
}

func (c *Chart) build(s *Series, p pass) []item {
	switch {
	case s.Kind.Boxed():
		return c.buildBoxes(s, p)
	case s.Kind == Scatter:
		return c.buildScatter(s, p)
	case s.Kind == Line:
		return c.buildLine(s, p)
	case s.Kind.Run():
		return c.buildArea(s, p)
	case s.Kind.Circular():
		return c.buildSectors(s, p)
	}
	return nil
}

// bandAt returns the series band, recentered on z when a depth axis maps it.
func (c *Chart) bandAt(band layout.DepthBand, zs []float64, i int) layout.DepthBand {
	if !c.tr.HasDepthAxis() || i >= len(zs) {
		return band
	}
	d := c.tr.DepthOf(zs[i])
	if math.IsNaN(d) {
		return band
	}
	half := band.Delta() / 2
	return layout.DepthBand{Start: d - half, End: d + half}
}

func (c *Chart) buildBoxes(s *Series, p pass) []item {
	xs, ys := s.prepared()
	tr := &c.tr
	origin := tr.Origin()
	slot := layout.SideBySideInfo(p.position, p.slots, s.Spacing, p.minDelta)
	slot = layout.ApplySegmentSpacing(slot, s.SegmentSpacing)

	items := make([]item, 0, len(xs))
	for i, x := range xs {
		y := ys[i]
		start, end := origin, y
		if s.Kind.Stacked() && i < len(p.stack.End) {
			start, end = p.stack.Start[i], p.stack.End[i]
		}
		band := c.bandAt(p.band, s.zs, i)
		it := item{
			index:  i,
			xs:     []float64{x},
			ys:     []float64{y},
			fill:   s.fillFor(i),
			xRange: axis.NewRange(x+slot.Start, x+slot.End),
			yRange: axis.NewRange(start, end),
			zRange: axis.NewRange(band.Start, band.End),
		}
		sl, visible := slot, true
		if !tr.X.IsLogarithmic {
			sl, visible = layout.ClampSlot(slot, x, tr.X.Range)
		}
		if math.IsNaN(y) || !visible {
			// Zero-footprint placeholder keeps the topology for later updates.
			pt := tr.Point(x, origin, band.Start)
			it.faces = geometry.Box(pt, pt)
			it.yRange = axis.EmptyRange()
			items = append(items, it)
			continue
		}
		top := tr.Point(x+sl.Start, tr.Y.ClampValue(end), band.Start)
		bottom := tr.Point(x+sl.End, tr.Y.ClampValue(start), band.End)
		it.faces = geometry.Box(top, bottom)
		items = append(items, it)
	}
	return items
}

func (c *Chart) buildScatter(s *Series, p pass) []item {
	xs, ys := s.prepared()
	tr := &c.tr
	items := make([]item, 0, len(xs))
	for i, x := range xs {
		y := ys[i]
		band := c.bandAt(p.band, s.zs, i)
		z := (band.Start + band.End) / 2
		it := item{
			index:  i,
			xs:     []float64{x},
			ys:     []float64{y},
			fill:   s.fillFor(i),
			xRange: axis.NewRange(x, x),
			yRange: axis.NewRange(y, y),
			zRange: axis.NewRange(z, z),
		}
		center := tr.Point(x, y, z)
		if math.IsNaN(y) || !tr.X.Visible(x) || !tr.Y.Visible(y) || center.IsNaN() {
			center = tr.Point(x, tr.Origin(), z)
			it.faces = geometry.Box(center, center)
			it.yRange = axis.EmptyRange()
			items = append(items, it)
			continue
		}
		size := s.MarkerSize
		it.faces = geometry.ScatterBox(center, math3d.V3(size, size, math.Min(size, band.Delta())))
		items = append(items, it)
	}
	return items
}

// runs splits parallel slices at NaN y values into index ranges [lo, hi).
func runs(ys []float64) [][2]int {
	var out [][2]int
	lo := -1
	for i, y := range ys {
		switch {
		case math.IsNaN(y) && lo >= 0:
			out = append(out, [2]int{lo, i})
			lo = -1
		case !math.IsNaN(y) && lo < 0:
			lo = i
		}
	}
	if lo >= 0 {
		out = append(out, [2]int{lo, len(ys)})
	}
	return out
}

func (c *Chart) visiblePoints(xs, ys []float64) []math3d.Vec2 {
	pts := make([]math3d.Vec2, len(xs))
	for i := range xs {
		pts[i] = c.tr.TransformToVisible(xs[i], ys[i])
	}
	return pts
}

func (c *Chart) buildLine(s *Series, p pass) []item {
	xs, ys := s.prepared()
	xs, ys = axis.ClipRun(xs, ys, c.tr.X, c.tr.Y)
	var items []item
	for _, r := range runs(ys) {
		rx, ry := xs[r[0]:r[1]], ys[r[0]:r[1]]
		faces := geometry.Ribbon(c.visiblePoints(rx, ry), s.Thickness/2, p.band)
		if len(faces) == 0 {
			continue
		}
		items = append(items, runItem(len(items), rx, ry, ry, s.Fill, p.band, faces))
	}
	return items
}

func (c *Chart) buildArea(s *Series, p pass) []item {
	xs, ys := s.prepared()
	tr := &c.tr
	origin := tr.Y.ClampValue(tr.Origin())

	tops, bases := ys, []float64(nil)
	if s.Kind.Stacked() {
		tops = make([]float64, len(ys))
		bases = make([]float64, len(ys))
		for i, y := range ys {
			tops[i], bases[i] = math.NaN(), math.NaN()
			if !math.IsNaN(y) && i < len(p.stack.End) {
				tops[i], bases[i] = p.stack.End[i], p.stack.Start[i]
			}
		}
		_, bases = axis.ClipRun(xs, bases, tr.X, tr.Y)
	}
	xs, tops = axis.ClipRun(xs, tops, tr.X, tr.Y)

	var items []item
	for _, r := range runs(tops) {
		rx, ry := xs[r[0]:r[1]], tops[r[0]:r[1]]
		top := c.visiblePoints(rx, ry)
		var base []math3d.Vec2
		lows := ry
		if bases != nil {
			lows = bases[r[0]:r[1]]
			base = c.visiblePoints(rx, lows)
		} else {
			base = []math3d.Vec2{
				tr.TransformToVisible(rx[0], origin),
				tr.TransformToVisible(rx[len(rx)-1], origin),
			}
		}
		faces := geometry.Area(top, base, p.band)
		if len(faces) == 0 {
			continue
		}
		it := runItem(len(items), rx, ry, lows, s.Fill, p.band, faces)
		if bases == nil {
			it.yRange = it.yRange.Include(origin)
		}
		items = append(items, it)
	}
	return items
}

func runItem(index int, xs, ys, lows []float64, fill color.RGBA, band layout.DepthBand, faces []geometry.Face) item {
	it := item{
		index:  index,
		xs:     xs,
		ys:     ys,
		fill:   fill,
		faces:  faces,
		xRange: axis.EmptyRange(),
		yRange: axis.EmptyRange(),
		zRange: axis.NewRange(band.Start, band.End),
	}
	for i := range xs {
		it.xRange = it.xRange.Include(xs[i])
		it.yRange = it.yRange.Include(ys[i]).Include(lows[i])
	}
	return it
}

func (c *Chart) buildSectors(s *Series, p pass) []item {
	_, ys := s.prepared()
	starts, sweeps := layout.Sweeps(ys, s.StartAngle, s.EndAngle)
	inner, outer := layout.Ring(p.radius, p.ring, p.rings, s.RingCoefficient, p.hole)

	items := make([]item, 0, len(ys))
	for i, v := range ys {
		yr := axis.EmptyRange()
		if !math.IsNaN(v) {
			yr = axis.NewRange(0, v)
		}
		center := p.center
		if layout.Exploded(i, s.ExplodeIndex, s.ExplodeAll) {
			center = center.Add(layout.ExplodeOffset(starts[i], sweeps[i], s.ExplodeRadius))
		}
		items = append(items, item{
			index:  i,
			xs:     []float64{float64(i)},
			ys:     []float64{v},
			fill:   s.fillFor(i),
			xRange: axis.NewRange(starts[i], starts[i]+sweeps[i]),
			yRange: yr,
			zRange: axis.NewRange(p.band.Start, p.band.End),
			faces: geometry.Sector(geometry.SectorSpec{
				Center:     center,
				Inner:      inner,
				Outer:      outer,
				StartAngle: starts[i],
				Sweep:      sweeps[i],
				Band:       p.band,
			}),
		})
	}
	return items
}

// reconcile brings the scene in line with freshly built items. Segments
// whose face count is unchanged are updated in place; others are replaced
// in their draw slot; surplus segments are removed. later lists the series
// drawn after s, used to place segments that were empty until now.
func (c *Chart) reconcile(s *Series, items []item, later []*Series) {
	for i, it := range items {
		var seg *Segment
		if i < len(s.segments) {
			seg = s.segments[i]
		} else {
			c.nextSegment++
			seg = &Segment{ID: c.nextSegment, Series: s}
			s.segments = append(s.segments, seg)
		}
		seg.Index = it.index
		seg.XData, seg.YData, seg.ZData = it.xs, it.ys, it.zs
		seg.XRange, seg.YRange, seg.ZRange = it.xRange, it.yRange, it.zRange

		if !s.rebuild && len(seg.polys) == len(it.faces) && sameFaces(seg.polys, it.faces) {
			for j, f := range it.faces {
				c.scene.UpdatePolygon(seg.polys[j].Key, f.Ring, it.fill, true)
			}
			continue
		}
		polys := make([]*scene.Polygon, len(it.faces))
		for j, f := range it.faces {
			poly := scene.NewPolygon(scene.Key{Segment: seg.ID, Face: f.ID}, f.Ring, it.fill)
			poly.SetStroke(s.Stroke, s.StrokeThickness)
			polys[j] = poly
		}
		if len(seg.polys) == 0 {
			c.scene.InsertSegment(seg.ID, polys, c.nextPlaced(s, i, later))
		} else {
			c.scene.ReplaceSegment(seg.ID, polys)
		}
		seg.polys = polys
	}
	for _, seg := range s.segments[len(items):] {
		c.scene.RemoveSegment(seg.ID)
	}
	s.segments = s.segments[:len(items)]
	s.rebuild = false
}

func sameFaces(polys []*scene.Polygon, faces []geometry.Face) bool {
	for i, f := range faces {
		if polys[i].Key.Face != f.ID {
			return false
		}
	}
	return true
}

// nextPlaced returns the first segment after s.segments[i] in draw order
// that already has polygons in the scene, or 0.
func (c *Chart) nextPlaced(s *Series, i int, later []*Series) scene.SegmentID {
	for _, seg := range s.segments[i+1:] {
		if len(seg.polys) > 0 {
			return seg.ID
		}
	}
	for _, o := range later {
		for _, seg := range o.segments {
			if len(seg.polys) > 0 {
				return seg.ID
			}
		}
	}
	return 0
}
