package export

import (
	"math"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// triangulate splits a planar ring into triangles by ear clipping in the
// plane of its dominant normal axis. It returns index triples into ring.
// Convex and concave rings are handled; degenerate rings still produce
// n-2 triangles, some of them zero-area.
func triangulate(ring []math3d.Vec3, normal math3d.Vec3) [][3]int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	pts := flatten(ring, normal.DominantAxis())
	// Orientation of the projected ring; ears turn the same way.
	sign := 1.0
	if signedArea(pts) < 0 {
		sign = -1
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	out := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			if isEar(pts, idx, i, sign) {
				ear = i
				break
			}
		}
		if ear < 0 {
			// Only degenerate corners left.
			ear = 0
		}
		prev := idx[(ear+len(idx)-1)%len(idx)]
		next := idx[(ear+1)%len(idx)]
		out = append(out, [3]int{prev, idx[ear], next})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(out, [3]int{idx[0], idx[1], idx[2]})
}

// flatten drops the given axis.
func flatten(ring []math3d.Vec3, axis int) []math3d.Vec2 {
	out := make([]math3d.Vec2, len(ring))
	for i, v := range ring {
		switch axis {
		case 0:
			out[i] = math3d.V2(v.Y, v.Z)
		case 1:
			out[i] = math3d.V2(v.Z, v.X)
		default:
			out[i] = math3d.V2(v.X, v.Y)
		}
	}
	return out
}

func signedArea(pts []math3d.Vec2) float64 {
	var a float64
	for i, p := range pts {
		a += p.Cross(pts[(i+1)%len(pts)])
	}
	return a / 2
}

func isEar(pts []math3d.Vec2, idx []int, i int, sign float64) bool {
	a := pts[idx[(i+len(idx)-1)%len(idx)]]
	b := pts[idx[i]]
	c := pts[idx[(i+1)%len(idx)]]
	if b.Sub(a).Cross(c.Sub(b))*sign <= 0 {
		return false
	}
	for j, k := range idx {
		if j == i || j == (i+1)%len(idx) || j == (i+len(idx)-1)%len(idx) {
			continue
		}
		if inTriangle(pts[k], a, b, c) {
			return false
		}
	}
	return true
}

// inTriangle reports whether p lies inside or on triangle abc.
func inTriangle(p, a, b, c math3d.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	const eps = 1e-12
	neg := d1 < -eps || d2 < -eps || d3 < -eps
	pos := d1 > eps || d2 > eps || d3 > eps
	return !(neg && pos) && !math.IsNaN(d1+d2+d3)
}
