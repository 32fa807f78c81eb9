package geometry

import "github.com/taigrr/chart3d/pkg/math3d"

// Box face identities. They stay fixed across updates so per-face styling
// follows the same logical side.
const (
	FaceFront = iota
	FaceBack
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight

	BoxFaceCount
)

// BoxDrawOrder is the order box faces are emitted and painted in.
var BoxDrawOrder = [BoxFaceCount]int{FaceBack, FaceBottom, FaceLeft, FaceRight, FaceTop, FaceFront}

// Box returns the six faces of the axis-aligned box spanned by two opposite
// corners, in BoxDrawOrder with IDs set to the face identity. Front is the
// face nearest the viewer (smallest z) and top is the smallest screen y.
func Box(a, b math3d.Vec3) []Face {
	lo, hi := a.Min(b), a.Max(b)
	corner := func(x, y, z bool) math3d.Vec3 {
		c := lo
		if x {
			c.X = hi.X
		}
		if y {
			c.Y = hi.Y
		}
		if z {
			c.Z = hi.Z
		}
		return c
	}
	faces := [BoxFaceCount]struct {
		ring    []math3d.Vec3
		outward math3d.Vec3
	}{
		FaceFront:  {[]math3d.Vec3{corner(false, false, false), corner(true, false, false), corner(true, true, false), corner(false, true, false)}, towardViewer},
		FaceBack:   {[]math3d.Vec3{corner(false, false, true), corner(true, false, true), corner(true, true, true), corner(false, true, true)}, awayFromView},
		FaceTop:    {[]math3d.Vec3{corner(false, false, false), corner(true, false, false), corner(true, false, true), corner(false, false, true)}, math3d.V3(0, -1, 0)},
		FaceBottom: {[]math3d.Vec3{corner(false, true, false), corner(true, true, false), corner(true, true, true), corner(false, true, true)}, math3d.V3(0, 1, 0)},
		FaceLeft:   {[]math3d.Vec3{corner(false, false, false), corner(false, true, false), corner(false, true, true), corner(false, false, true)}, math3d.V3(-1, 0, 0)},
		FaceRight:  {[]math3d.Vec3{corner(true, false, false), corner(true, true, false), corner(true, true, true), corner(true, false, true)}, math3d.V3(1, 0, 0)},
	}
	out := make([]Face, 0, BoxFaceCount)
	for _, id := range BoxDrawOrder {
		f := faces[id]
		out = append(out, Face{ID: id, Ring: orient(f.ring, f.outward)})
	}
	return out
}

// ScatterBox returns a box of the given size centered on c.
func ScatterBox(c, size math3d.Vec3) []Face {
	half := size.Scale(0.5)
	return Box(c.Sub(half), c.Add(half))
}
