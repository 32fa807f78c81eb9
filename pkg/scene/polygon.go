// Package scene holds the drawable polygons of a chart and the ordered list
// they are painted from.
//
// Polygons are addressed by a stable Key (owning segment, face index). The
// Scene keeps them in insertion order, which is the painter's-algorithm draw
// order; there is no per-frame depth sort.
package scene

import (
	"image/color"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// SegmentID identifies the segment that owns a group of polygons.
type SegmentID uint64

// Key addresses one polygon: the owning segment and the face index within it.
type Key struct {
	Segment SegmentID
	Face    int
}

// Polygon is a flat, closed vertex ring in world space.
type Polygon struct {
	Key      Key
	Vertices []math3d.Vec3
	// Unit normal pointing out of the solid the face belongs to.
	Normal          math3d.Vec3
	PlaneConstant   float64
	Fill            color.RGBA
	Stroke          color.RGBA
	StrokeThickness float64
	// Position in the scene's draw order; maintained by Scene.
	ZIndex  int
	Visible bool

	valid bool
}

// NewPolygon creates a visible polygon and computes its normal.
func NewPolygon(key Key, vertices []math3d.Vec3, fill color.RGBA) *Polygon {
	p := &Polygon{Key: key, Fill: fill, Visible: true}
	p.setVertices(vertices)
	return p
}

// Update replaces the geometry in place and recomputes the normal. Topology
// (the key and the draw slot) is unchanged.
func (p *Polygon) Update(vertices []math3d.Vec3, fill color.RGBA, visible bool) {
	p.Fill = fill
	p.Visible = visible
	p.setVertices(vertices)
}

// SetStroke sets the outline color and width. A zero width disables it.
func (p *Polygon) SetStroke(c color.RGBA, thickness float64) {
	p.Stroke = c
	p.StrokeThickness = thickness
}

// Valid reports whether the ring produced a usable normal. Invalid polygons
// stay in the scene but are never drawn or shaded.
func (p *Polygon) Valid() bool {
	return p.valid
}

// Plane returns the polygon's plane.
func (p *Polygon) Plane() math3d.Plane {
	return math3d.Plane{Normal: p.Normal, D: p.PlaneConstant}
}

// Centroid returns the vertex average.
func (p *Polygon) Centroid() math3d.Vec3 {
	var c math3d.Vec3
	for _, v := range p.Vertices {
		c = c.Add(v)
	}
	if len(p.Vertices) == 0 {
		return c
	}
	return c.Scale(1 / float64(len(p.Vertices)))
}

func (p *Polygon) setVertices(vertices []math3d.Vec3) {
	p.Vertices = vertices
	p.Normal, p.PlaneConstant, p.valid = math3d.Vec3{}, 0, false
	for _, v := range vertices {
		if v.IsNaN() {
			return
		}
	}
	n, ok := math3d.RingNormal(vertices)
	if !ok {
		return
	}
	// A triple on a reflex corner of a non-convex ring points the wrong way.
	if nw := math3d.NewellNormal(vertices); nw.Dot(n) < 0 {
		n = n.Negate()
	}
	p.Normal = n
	p.PlaneConstant = -n.Dot(vertices[0])
	p.valid = true
}

// Shading holds the luminance multipliers applied to a face by the dominant
// axis of its normal.
type Shading struct {
	X, Y, Z float64
}

// DefaultShading darkens side faces most and leaves faces toward the viewer
// untouched.
var DefaultShading = Shading{X: 0.7, Y: 0.9, Z: 1.0}

// Factor returns the multiplier for a normal.
func (s Shading) Factor(n math3d.Vec3) float64 {
	switch n.DominantAxis() {
	case 0:
		return s.X
	case 1:
		return s.Y
	default:
		return s.Z
	}
}

// ShadedFill returns the fill darkened for the polygon's orientation.
// Alpha is kept.
func (p *Polygon) ShadedFill(s Shading) color.RGBA {
	if !p.valid {
		return p.Fill
	}
	return Darken(p.Fill, s.Factor(p.Normal))
}

// Darken scales the color channels by f, clamped to [0, 1].
func Darken(c color.RGBA, f float64) color.RGBA {
	f = max(0, min(1, f))
	return color.RGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}
