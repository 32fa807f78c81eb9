package export

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// WriteGLB encodes m as a binary glTF document with one primitive per
// material.
func WriteGLB(w io.Writer, m *Mesh) error {
	doc, err := Document(m)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes m to a .glb file.
func SaveGLB(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGLB(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Document builds the glTF document for m. All data lives in one embedded
// buffer: positions, normals, then the index run of each material.
func Document(m *Mesh) (*gltf.Document, error) {
	if len(m.Faces) == 0 {
		return nil, fmt.Errorf("export mesh %q: no triangles", m.Name)
	}
	if uint64(len(m.Vertices)) > math.MaxUint32 {
		return nil, fmt.Errorf("export mesh %q: too many vertices", m.Name)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "chart3d"
	var buf []byte

	positions := make([]math3d.Vec3, len(m.Vertices))
	normals := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i], normals[i] = v.Position, v.Normal
	}
	posView := addView(doc, &buf, appendVec3(nil, positions), gltf.TargetArrayBuffer)
	normView := addView(doc, &buf, appendVec3(nil, normals), gltf.TargetArrayBuffer)

	posAcc := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(posView),
		ComponentType: gltf.ComponentFloat,
		Count:         len(positions),
		Type:          gltf.AccessorVec3,
		Min:           []float64{m.BoundsMin.X, m.BoundsMin.Y, m.BoundsMin.Z},
		Max:           []float64{m.BoundsMax.X, m.BoundsMax.Y, m.BoundsMax.Z},
	})
	normAcc := len(doc.Accessors)
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView:    gltf.Index(normView),
		ComponentType: gltf.ComponentFloat,
		Count:         len(normals),
		Type:          gltf.AccessorVec3,
	})

	// Group triangles by material.
	byMaterial := make([][]uint32, max(1, len(m.Materials)))
	for _, f := range m.Faces {
		mat := max(0, min(f.Material, len(byMaterial)-1))
		byMaterial[mat] = append(byMaterial[mat], uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	mesh := &gltf.Mesh{Name: m.Name}
	for _, mat := range m.Materials {
		c := mat.BaseColor
		gm := &gltf.Material{
			Name: mat.Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &c,
				MetallicFactor:  gltf.Float(0),
				RoughnessFactor: gltf.Float(1),
			},
		}
		if c[3] < 1 {
			gm.AlphaMode = gltf.AlphaBlend
		}
		doc.Materials = append(doc.Materials, gm)
	}
	for i, indices := range byMaterial {
		if len(indices) == 0 {
			continue
		}
		view := addView(doc, &buf, appendUint32(nil, indices), gltf.TargetElementArrayBuffer)
		idxAcc := len(doc.Accessors)
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    gltf.Index(view),
			ComponentType: gltf.ComponentUint,
			Count:         len(indices),
			Type:          gltf.AccessorScalar,
		})
		prim := &gltf.Primitive{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: posAcc, gltf.NORMAL: normAcc},
			Indices:    gltf.Index(idxAcc),
			Mode:       gltf.PrimitiveTriangles,
		}
		if i < len(doc.Materials) {
			prim.Material = gltf.Index(i)
		}
		mesh.Primitives = append(mesh.Primitives, prim)
	}

	doc.Buffers = []*gltf.Buffer{{ByteLength: len(buf), Data: buf}}
	doc.Meshes = append(doc.Meshes, mesh)
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// addView appends data to buf, 4-byte aligned, and registers a buffer view
// over it.
func addView(doc *gltf.Document, buf *[]byte, data []byte, target gltf.Target) int {
	for len(*buf)%4 != 0 {
		*buf = append(*buf, 0)
	}
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: len(*buf),
		ByteLength: len(data),
		Target:     target,
	})
	*buf = append(*buf, data...)
	return len(doc.BufferViews) - 1
}

func appendVec3(b []byte, vs []math3d.Vec3) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v.X)))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v.Y)))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(v.Z)))
	}
	return b
}

func appendUint32(b []byte, vs []uint32) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}

// ReadGLB decodes a glTF document written by WriteGLB back into a mesh.
func ReadGLB(r io.Reader) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode glb: %w", err)
	}
	mesh := NewMesh("")
	for _, mat := range doc.Materials {
		m := Material{Name: mat.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
			m.BaseColor = *pbr.BaseColorFactor
		}
		mesh.Materials = append(mesh.Materials, m)
	}
	for _, gm := range doc.Meshes {
		mesh.Name = gm.Name
		if err := readMesh(doc, gm, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// readMesh extracts triangle primitives from a glTF mesh.
func readMesh(doc *gltf.Document, gm *gltf.Mesh, mesh *Mesh) error {
	// Primitives of one mesh share attribute accessors; load each once.
	bases := make(map[int]int)
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		base, seen := bases[posIdx]
		if !seen {
			positions, err := readVec3(doc, posIdx)
			if err != nil {
				return fmt.Errorf("read positions: %w", err)
			}
			var normals []math3d.Vec3
			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
				if normals, err = readVec3(doc, normIdx); err != nil {
					return fmt.Errorf("read normals: %w", err)
				}
			}
			base = len(mesh.Vertices)
			bases[posIdx] = base
			for i, p := range positions {
				v := MeshVertex{Position: p}
				if i < len(normals) {
					v.Normal = normals[i]
				}
				mesh.Vertices = append(mesh.Vertices, v)
			}
		}
		if prim.Indices == nil {
			return fmt.Errorf("primitive without indices")
		}
		indices, err := readIndices(doc, *prim.Indices)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		mat := -1
		if prim.Material != nil {
			mat = *prim.Material
		}
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{
				V:        [3]int{base + indices[i], base + indices[i+1], base + indices[i+2]},
				Material: mat,
			})
		}
	}
	return nil
}

// accessorBytes returns the embedded bytes an accessor reads from and its
// element stride.
func accessorBytes(doc *gltf.Document, a *gltf.Accessor, size int) ([]byte, int, error) {
	if a.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*a.BufferView]
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}
	stride := view.ByteStride
	if stride == 0 {
		stride = size
	}
	start := view.ByteOffset + a.ByteOffset
	if a.Count > 0 && start+(a.Count-1)*stride+size > len(data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer")
	}
	return data[start:], stride, nil
}

// readVec3 reads float Vec3 data from an accessor.
func readVec3(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	a := doc.Accessors[idx]
	if a.Type != gltf.AccessorVec3 || a.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", a.Type, a.ComponentType)
	}
	data, stride, err := accessorBytes(doc, a, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, a.Count)
	for i := range out {
		b := data[i*stride:]
		out[i] = math3d.V3(float64(readFloat32(b)), float64(readFloat32(b[4:])), float64(readFloat32(b[8:])))
	}
	return out, nil
}

// readIndices reads index data of any unsigned component type.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	a := doc.Accessors[idx]
	var size int
	switch a.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", a.ComponentType)
	}
	data, stride, err := accessorBytes(doc, a, size)
	if err != nil {
		return nil, err
	}
	out := make([]int, a.Count)
	for i := range out {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		default:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
