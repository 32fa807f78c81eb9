package scene

import (
	"math"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// EmptyAABB returns a box that the first Extend replaces.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows the box to contain p.
func (b AABB) Extend(p math3d.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union grows the box to contain o.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box bounding all 8 corners after transformation.
func (b AABB) Transform(m math3d.Mat4) AABB {
	out := EmptyAABB()
	for i := range 8 {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		out = out.Extend(m.MulVec3(c))
	}
	return out
}

