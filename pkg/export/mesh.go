// Package export converts chart scenes into triangle meshes and writes them
// as binary glTF.
package export

import (
	"fmt"
	"image/color"

	"github.com/taigrr/chart3d/pkg/math3d"
	"github.com/taigrr/chart3d/pkg/scene"
)

// Mesh is a flat-shaded triangle mesh in glTF space (y up, z toward the
// viewer).
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated by CalculateBounds)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials
}

// Material is a solid base color.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// toGLTF converts a world point (y down, z away) into glTF space. The
// conversion is a half turn about x, so handedness is kept.
func toGLTF(v math3d.Vec3, scale float64) math3d.Vec3 {
	return math3d.V3(v.X*scale, -v.Y*scale, -v.Z*scale)
}

// FromScene triangulates every drawable polygon of s. Polygons sharing a
// fill share a material. scale converts device units to glTF meters; the
// mesh is recentered on the origin.
func FromScene(name string, s *scene.Scene, scale float64) *Mesh {
	if scale <= 0 {
		scale = 1
	}
	m := NewMesh(name)
	materials := make(map[color.RGBA]int)

	for _, p := range s.Polygons() {
		mat, ok := materials[p.Fill]
		if !ok {
			mat = len(m.Materials)
			materials[p.Fill] = mat
			m.Materials = append(m.Materials, Material{
				Name: colorName(p.Fill),
				BaseColor: [4]float64{
					float64(p.Fill.R) / 255,
					float64(p.Fill.G) / 255,
					float64(p.Fill.B) / 255,
					float64(p.Fill.A) / 255,
				},
			})
		}
		m.addPolygon(p.Vertices, p.Normal, mat, scale)
	}

	m.CalculateBounds()
	m.recenter()
	return m
}

// addPolygon appends a flat polygon with its own vertices so the face
// normal is not shared with neighbors.
func (m *Mesh) addPolygon(ring []math3d.Vec3, normal math3d.Vec3, mat int, scale float64) {
	n := toGLTF(normal, 1)
	base := len(m.Vertices)
	for _, v := range ring {
		m.Vertices = append(m.Vertices, MeshVertex{Position: toGLTF(v, scale), Normal: n})
	}
	for _, tri := range triangulate(ring, normal) {
		a := m.Vertices[base+tri[0]].Position
		b := m.Vertices[base+tri[1]].Position
		c := m.Vertices[base+tri[2]].Position
		// glTF front faces wind counter-clockwise around the outward normal.
		if b.Sub(a).Cross(c.Sub(a)).Dot(n) < 0 {
			tri[1], tri[2] = tri[2], tri[1]
		}
		m.Faces = append(m.Faces, Face{
			V:        [3]int{base + tri[0], base + tri[1], base + tri[2]},
			Material: mat,
		})
	}
}

func (m *Mesh) recenter() {
	if len(m.Vertices) == 0 {
		return
	}
	c := m.Center()
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(c)
	}
	m.BoundsMin = m.BoundsMin.Sub(c)
	m.BoundsMax = m.BoundsMax.Sub(c)
}

func colorName(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
