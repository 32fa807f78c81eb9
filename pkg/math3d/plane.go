package math3d

// Plane represents a plane in 3D space using the equation: N·P + D = 0
// where N is the unit normal and D is the plane constant.
type Plane struct {
	Normal Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive means the point lies on the side the normal points to.
func (p Plane) DistanceToPoint(point Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// PlaneFromNormal builds the plane with the given unit normal through point.
func PlaneFromNormal(normal, point Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// CalcNormal returns normalize((v1-v2) × (v3-v2)).
// ok is false when the three points are coincident or collinear.
func CalcNormal(v1, v2, v3 Vec3) (n Vec3, ok bool) {
	c := v1.Sub(v2).Cross(v3.Sub(v2))
	l := c.Len()
	if l < Epsilon {
		return Vec3{}, false
	}
	return c.Scale(1 / l), true
}

// RingNormal searches the ring for a triple that yields a valid normal,
// starting with the first three vertices and falling back to every other
// ordered combination. ok is false when the ring is fully degenerate.
func RingNormal(ring []Vec3) (n Vec3, ok bool) {
	if len(ring) < 3 {
		return Vec3{}, false
	}
	if n, ok = CalcNormal(ring[0], ring[1], ring[2]); ok {
		return n, true
	}
	for i := 0; i < len(ring); i++ {
		for j := i + 1; j < len(ring); j++ {
			for k := j + 1; k < len(ring); k++ {
				if n, ok = CalcNormal(ring[i], ring[j], ring[k]); ok {
					return n, true
				}
			}
		}
	}
	return Vec3{}, false
}

// NewellNormal returns the area-weighted normal of a closed ring (not
// normalized). It is robust for non-convex rings, where a single vertex
// triple may sit on a reflex corner. The sign convention matches CalcNormal.
func NewellNormal(ring []Vec3) Vec3 {
	var n Vec3
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	// Newell yields a × b ordering; CalcNormal uses (v1-v2) × (v3-v2),
	// which is the opposite winding.
	return n.Negate()
}

// PlaneFromPoints builds the plane through three points. ok is false when
// they are collinear.
func PlaneFromPoints(a, b, c Vec3) (p Plane, ok bool) {
	n, ok := CalcNormal(a, b, c)
	if !ok {
		return Plane{}, false
	}
	return PlaneFromNormal(n, b), true
}
