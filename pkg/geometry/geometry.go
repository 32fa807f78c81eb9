// Package geometry turns resolved chart coordinates into extruded solids.
//
// Builders are pure: they take screen-space points and a depth band and
// return faces in draw order. Every ring is wound so its normal points out
// of the solid, which lets the renderer drop faces turned away from the
// viewer.
package geometry

import (
	"slices"

	"github.com/taigrr/chart3d/pkg/layout"
	"github.com/taigrr/chart3d/pkg/math3d"
)

// Face is one flat side of a solid. ID is stable for a given topology so
// callers can update faces in place by ID.
type Face struct {
	ID   int
	Ring []math3d.Vec3
}

// orient winds ring so its normal agrees with outward.
func orient(ring []math3d.Vec3, outward math3d.Vec3) []math3d.Vec3 {
	if math3d.NewellNormal(ring).Dot(outward) < 0 {
		slices.Reverse(ring)
	}
	return ring
}

// extrude builds the quad swept by edge a-b across the depth band.
func extrude(a, b math3d.Vec2, band layout.DepthBand) []math3d.Vec3 {
	return []math3d.Vec3{a.At(band.Start), b.At(band.Start), b.At(band.End), a.At(band.End)}
}

// flat lifts a 2D ring to depth z.
func flat(ring []math3d.Vec2, z float64) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(ring))
	for i, p := range ring {
		out[i] = p.At(z)
	}
	return out
}

var (
	towardViewer = math3d.V3(0, 0, -1)
	awayFromView = math3d.V3(0, 0, 1)
)

// builder collects faces and numbers them in emission order.
type builder struct {
	faces []Face
}

func (b *builder) add(ring []math3d.Vec3, outward math3d.Vec3) {
	b.faces = append(b.faces, Face{ID: len(b.faces), Ring: orient(ring, outward)})
}

// awayFrom returns the perpendicular of edge a-b pointing away from ref.
func awayFrom(a, b, ref math3d.Vec2) math3d.Vec3 {
	perp := b.Sub(a).Perp()
	mid := a.Lerp(b, 0.5)
	if mid.Sub(ref).Dot(perp) < 0 {
		perp = perp.Scale(-1)
	}
	return perp.At(0)
}
