package geometry

import (
	"slices"

	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
)

// Area extrudes the region between a top run and its base across the depth
// band. base is either two points (a flat baseline under the first and last
// top points) or one point per top point (the previous stack's run).
//
// Faces are emitted back, bottom(s), left, right, top ribbon, front. Fewer
// than two top points or a mismatched base yield no faces.
func Area(top, base []math3d.Vec2, band layout.DepthBand) []Face {
	if len(top) < 2 || (len(base) != 2 && len(base) != len(top)) {
		return nil
	}
	if slices.ContainsFunc(top, math3d.Vec2.IsNaN) || slices.ContainsFunc(base, math3d.Vec2.IsNaN) {
		return nil
	}
	stacked := len(base) == len(top)

	outline := make([]math3d.Vec2, 0, len(top)+len(base))
	outline = append(outline, top...)
	for i := len(base) - 1; i >= 0; i-- {
		outline = append(outline, base[i])
	}
	var centroid math3d.Vec2
	for _, p := range outline {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(outline)))

	var b builder
	b.add(flat(outline, band.End), awayFromView)

	if stacked {
		for i := 0; i+1 < len(base); i++ {
			ref := top[i].Lerp(top[i+1], 0.5)
			b.add(extrude(base[i], base[i+1], band), awayFrom(base[i], base[i+1], ref))
		}
	} else {
		b.add(extrude(base[0], base[1], band), awayFrom(base[0], base[1], centroid))
	}

	first, last := len(top)-1, len(base)-1
	b.add(extrude(base[0], top[0], band), awayFrom(base[0], top[0], centroid))
	b.add(extrude(top[first], base[last], band), awayFrom(top[first], base[last], centroid))

	for i := 0; i+1 < len(top); i++ {
		ref := baseUnder(top, base, i)
		b.add(extrude(top[i], top[i+1], band), awayFrom(top[i], top[i+1], ref))
	}

	b.add(flat(outline, band.Start), towardViewer)
	return b.faces
}

// baseUnder returns the base point the top edge i grows from.
func baseUnder(top, base []math3d.Vec2, i int) math3d.Vec2 {
	if len(base) == len(top) {
		return base[i].Lerp(base[i+1], 0.5)
	}
	// Closest point on the flat baseline to the edge midpoint.
	mid := top[i].Lerp(top[i+1], 0.5)
	d := base[1].Sub(base[0])
	l := d.Dot(d)
	if l == 0 {
		return base[0]
	}
	t := mid.Sub(base[0]).Dot(d) / l
	return base[0].Add(d.Scale(t))
}

// AreaFaceCount returns the number of faces Area emits for n top points.
func AreaFaceCount(n int, stacked bool) int {
	if n < 2 {
		return 0
	}
	bottoms := 1
	if stacked {
		bottoms = n - 1
	}
	return 1 + bottoms + 2 + (n - 1) + 1
}
