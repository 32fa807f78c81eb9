package math3d

import "math"

// Vec2 is a point or direction on the drawing surface.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

// Scale returns a * s.
func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a.X * s, a.Y * s}
}

// Dot returns the dot product.
func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the z component of the 3D cross product of a and b.
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Len returns the length of the vector.
func (a Vec2) Len() float64 {
	return math.Hypot(a.X, a.Y)
}

// Normalize returns the unit vector, or the zero vector for zero input.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// Perp returns a rotated by +90 degrees in a y-down frame (x right, y down),
// which visually turns a rightward vector upward.
func (a Vec2) Perp() Vec2 {
	return Vec2{a.Y, -a.X}
}

// Lerp interpolates between a and b by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Distance returns the distance between two points.
func (a Vec2) Distance(b Vec2) float64 {
	return a.Sub(b).Len()
}

// IsNaN reports whether either component is NaN.
func (a Vec2) IsNaN() bool {
	return math.IsNaN(a.X) || math.IsNaN(a.Y)
}

// At lifts the point into 3D at depth z.
func (a Vec2) At(z float64) Vec3 {
	return Vec3{a.X, a.Y, z}
}

// ApproxEqual reports whether a and b differ by at most tol per component.
func (a Vec2) ApproxEqual(b Vec2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
