package geometry

import (
	"math"

	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
)

// lineQuad is the thick 2D band around one line segment.
type lineQuad struct {
	ul, ur, lr, ll math3d.Vec2
	dir            math3d.Vec2
}

// intersectLines returns the intersection of the infinite lines p1-p2 and
// p3-p4. ok is false for parallel lines.
func intersectLines(p1, p2, p3, p4 math3d.Vec2) (x math3d.Vec2, ok bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	den := d1.Cross(d2)
	if math.Abs(den) < math3d.Epsilon {
		return math3d.Vec2{}, false
	}
	t := p3.Sub(p1).Cross(d2) / den
	return p1.Add(d1.Scale(t)), true
}

// dedupe drops consecutive coincident points, which have no direction.
func dedupe(points []math3d.Vec2) []math3d.Vec2 {
	out := make([]math3d.Vec2, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Distance(p) < math3d.Epsilon {
			continue
		}
		out = append(out, p)
	}
	return out
}

// lineQuads builds the offset band of every segment and snaps the edges of
// consecutive bands together where their intersection lies close enough to
// the shared point. Joins that are too sharp keep a seam.
func lineQuads(points []math3d.Vec2, half float64) []lineQuad {
	quads := make([]lineQuad, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		dir := b.Sub(a).Normalize()
		off := dir.Perp().Scale(half)
		quads = append(quads, lineQuad{
			ul: a.Add(off), ur: b.Add(off),
			lr: b.Sub(off), ll: a.Sub(off),
			dir: dir,
		})
	}
	limit := half + layout.JoinTolerance
	for i := 0; i+1 < len(quads); i++ {
		q, next := &quads[i], &quads[i+1]
		shared := points[i+1]
		if x, ok := intersectLines(q.ul, q.ur, next.ul, next.ur); ok && x.Distance(shared) <= limit {
			q.ur, next.ul = x, x
		}
		if x, ok := intersectLines(q.ll, q.lr, next.ll, next.lr); ok && x.Distance(shared) <= limit {
			q.lr, next.ll = x, x
		}
	}
	return quads
}

// Ribbon extrudes a polyline of the given half-width across the depth band.
// Fewer than two distinct points yield no faces. Faces are emitted back
// faces first, then end caps, bottoms, tops and front faces.
//
// Each end cap is one quad through the run's first (or last) point,
// perpendicular to its segment and reaching halfWidth to either side, so it
// closes the full thickness of the band.
func Ribbon(points []math3d.Vec2, halfWidth float64, band layout.DepthBand) []Face {
	for _, p := range points {
		if p.IsNaN() {
			return nil
		}
	}
	points = dedupe(points)
	if len(points) < 2 || halfWidth <= 0 {
		return nil
	}
	quads := lineQuads(points, halfWidth)

	var b builder
	for _, q := range quads {
		b.add(flat([]math3d.Vec2{q.ul, q.ur, q.lr, q.ll}, band.End), awayFromView)
	}
	first, last := quads[0], quads[len(quads)-1]
	b.add(extrude(first.ul, first.ll, band), first.dir.Scale(-1).At(0))
	b.add(extrude(last.ur, last.lr, band), last.dir.At(0))
	for _, q := range quads {
		b.add(extrude(q.ll, q.lr, band), q.dir.Perp().Scale(-1).At(0))
	}
	for _, q := range quads {
		b.add(extrude(q.ul, q.ur, band), q.dir.Perp().At(0))
	}
	for _, q := range quads {
		b.add(flat([]math3d.Vec2{q.ul, q.ur, q.lr, q.ll}, band.Start), towardViewer)
	}
	return b.faces
}

// RibbonFaceCount returns the number of faces Ribbon emits for n distinct
// points.
func RibbonFaceCount(n int) int {
	if n < 2 {
		return 0
	}
	return 4*(n-1) + 2
}
