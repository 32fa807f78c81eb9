package geometry

import (
	"math"

	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
)

// SectorSpec describes one pie or doughnut slice. Angles are degrees,
// clockwise from +x on the y-down surface.
type SectorSpec struct {
	Center       math3d.Vec2
	Inner, Outer float64
	StartAngle   float64
	Sweep        float64
	Band         layout.DepthBand
}

func polar(c math3d.Vec2, r, deg float64) math3d.Vec2 {
	a := deg * math.Pi / 180
	return math3d.V2(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
}

// Sector extrudes a slice into flat faces: back caps, inner arc (doughnut
// only), the two sides, outer arc, then front caps. The arc is split into
// layout.TessellationCount slices. A zero sweep or zero outer radius yields
// no faces. Sides are omitted for a full circle.
func Sector(s SectorSpec) []Face {
	n := layout.TessellationCount(s.Sweep)
	if n == 0 || s.Outer <= 0 || s.Inner >= s.Outer {
		return nil
	}
	hollow := s.Inner > 0

	angles := make([]float64, n+1)
	outer := make([]math3d.Vec2, n+1)
	inner := make([]math3d.Vec2, n+1)
	for k := range angles {
		angles[k] = s.StartAngle + s.Sweep*float64(k)/float64(n)
		outer[k] = polar(s.Center, s.Outer, angles[k])
		inner[k] = polar(s.Center, s.Inner, angles[k])
	}
	radial := func(k int) math3d.Vec3 {
		return polar(math3d.Vec2{}, 1, (angles[k]+angles[k+1])/2).At(0)
	}
	capRing := func(k int) []math3d.Vec2 {
		if hollow {
			return []math3d.Vec2{inner[k], outer[k], outer[k+1], inner[k+1]}
		}
		return []math3d.Vec2{s.Center, outer[k], outer[k+1]}
	}
	hub := func(k int) math3d.Vec2 {
		if hollow {
			return inner[k]
		}
		return s.Center
	}

	var b builder
	for k := range n {
		b.add(flat(capRing(k), s.Band.End), awayFromView)
	}
	if hollow {
		for k := range n {
			b.add(extrude(inner[k], inner[k+1], s.Band), radial(k).Negate())
		}
	}
	if math.Abs(s.Sweep) < 360 {
		dir := 1.0
		if s.Sweep < 0 {
			dir = -1
		}
		// Tangent of increasing angle at a is (-sin a, cos a).
		tangent := func(deg float64) math3d.Vec3 {
			a := deg * math.Pi / 180
			return math3d.V3(-math.Sin(a), math.Cos(a), 0).Scale(dir)
		}
		b.add(extrude(hub(0), outer[0], s.Band), tangent(angles[0]).Negate())
		b.add(extrude(hub(n), outer[n], s.Band), tangent(angles[n]))
	}
	for k := range n {
		b.add(extrude(outer[k], outer[k+1], s.Band), radial(k))
	}
	for k := range n {
		b.add(flat(capRing(k), s.Band.Start), towardViewer)
	}
	return b.faces
}
