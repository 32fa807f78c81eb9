package render

import (
	"math"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// MaxTilt bounds the camera tilt (degrees) so top faces never flip edge-on.
const MaxTilt = 89.0

// Camera is the fixed orthographic view of a chart scene. The scene is
// rotated about Pivot and then dropped onto the drawing surface by
// discarding z; there is no perspective.
type Camera struct {
	// Rotation around the vertical axis, degrees. Positive values reveal
	// right faces.
	Rotation float64
	// Tilt around the horizontal axis, degrees. Positive values reveal top
	// faces.
	Tilt float64
	// Pivot is the world point the scene turns around, normally the middle
	// of the plot volume.
	Pivot math3d.Vec3

	// Cached view matrix (computed on demand)
	matrix math3d.Mat4
	dirty  bool
}

// NewCamera creates a camera with the given rotation and tilt (degrees).
func NewCamera(rotation, tilt float64, pivot math3d.Vec3) *Camera {
	c := &Camera{Pivot: pivot, dirty: true}
	c.SetRotation(rotation, tilt)
	return c
}

// SetRotation sets rotation and tilt in degrees. Tilt is clamped to
// [-MaxTilt, MaxTilt].
func (c *Camera) SetRotation(rotation, tilt float64) {
	c.Rotation = rotation
	c.Tilt = max(-MaxTilt, min(MaxTilt, tilt))
	c.dirty = true
}

// Rotate adds to the current rotation and tilt.
func (c *Camera) Rotate(deltaRotation, deltaTilt float64) {
	c.SetRotation(c.Rotation+deltaRotation, c.Tilt+deltaTilt)
}

// SetPivot moves the point the scene turns around.
func (c *Camera) SetPivot(p math3d.Vec3) {
	c.Pivot = p
	c.dirty = true
}

// Matrix returns the view matrix.
func (c *Camera) Matrix() math3d.Mat4 {
	if c.dirty {
		rad := math.Pi / 180
		rot := math3d.RotateX(c.Tilt * rad).Mul(math3d.RotateY(c.Rotation * rad))
		c.matrix = math3d.RotateAbout(rot, c.Pivot)
		c.dirty = false
	}
	return c.matrix
}

// Project transforms a world point into view space. X and Y are surface
// coordinates; Z grows away from the viewer.
func (c *Camera) Project(p math3d.Vec3) math3d.Vec3 {
	return c.Matrix().MulVec3(p)
}

// ProjectRing projects a polygon ring onto the drawing surface.
func (c *Camera) ProjectRing(ring []math3d.Vec3) []math3d.Vec2 {
	m := c.Matrix()
	out := make([]math3d.Vec2, len(ring))
	for i, v := range ring {
		out[i] = m.MulVec3(v).XY()
	}
	return out
}

// Unproject maps a view-space point back to world space.
func (c *Camera) Unproject(p math3d.Vec3) math3d.Vec3 {
	return c.Matrix().InverseRigid().MulVec3(p)
}

// FrontFacing reports whether a face with world normal n faces the viewer.
func (c *Camera) FrontFacing(n math3d.Vec3) bool {
	return c.Matrix().MulDir(n).Z < 0
}
