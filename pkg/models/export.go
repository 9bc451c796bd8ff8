package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
)

// ErrTooManyVertices is returned when a mesh does not fit 16-bit indices.
var ErrTooManyVertices = errors.New("mesh exceeds 65535 vertices")

// glbBuilder packs mesh data into a single embedded buffer.
type glbBuilder struct {
	doc *gltf.Document
	buf []byte
}

func ptr[T any](v T) *T { return &v }

// align pads the buffer to a 4-byte boundary, as accessors require.
func (b *glbBuilder) align() {
	for len(b.buf)%4 != 0 {
		b.buf = append(b.buf, 0)
	}
}

func (b *glbBuilder) view(data []byte, target gltf.Target) int {
	b.align()
	offset := len(b.buf)
	b.buf = append(b.buf, data...)
	b.doc.BufferViews = append(b.doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
		Target:     target,
	})
	return len(b.doc.BufferViews) - 1
}

func (b *glbBuilder) vec3(v []MeshVertex, normal bool) int {
	data := make([]byte, 0, len(v)*12)
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, mv := range v {
		p := mv.Position
		if normal {
			p = mv.Normal
		}
		for i, c := range [3]float64{p.X, p.Y, p.Z} {
			f := float32(c)
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
			lo[i] = math.Min(lo[i], float64(f))
			hi[i] = math.Max(hi[i], float64(f))
		}
	}

	acc := &gltf.Accessor{
		BufferView:    ptr(b.view(data, gltf.TargetArrayBuffer)),
		ComponentType: gltf.ComponentFloat,
		Count:         len(v),
		Type:          gltf.AccessorVec3,
	}
	if !normal && len(v) > 0 {
		acc.Min = lo[:]
		acc.Max = hi[:]
	}
	b.doc.Accessors = append(b.doc.Accessors, acc)
	return len(b.doc.Accessors) - 1
}

func (b *glbBuilder) indices(faces []Face) int {
	data := make([]byte, 0, len(faces)*6)
	for _, f := range faces {
		for _, i := range f.V {
			data = binary.LittleEndian.AppendUint16(data, uint16(i))
		}
	}
	b.doc.Accessors = append(b.doc.Accessors, &gltf.Accessor{
		BufferView:    ptr(b.view(data, gltf.TargetElementArrayBuffer)),
		ComponentType: gltf.ComponentUshort,
		Count:         len(faces) * 3,
		Type:          gltf.AccessorScalar,
	})
	return len(b.doc.Accessors) - 1
}

func (b *glbBuilder) material(m Material) int {
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name: m.Name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: ptr(m.BaseColor),
			MetallicFactor:  ptr(m.Metallic),
			RoughnessFactor: ptr(m.Roughness),
		},
	})
	return len(b.doc.Materials) - 1
}

// BuildDocument lays meshes out as one node each under a single scene.
// Each node's extras carry its surface class; materials with the same name
// are shared.
func BuildDocument(meshes []*Mesh) (*gltf.Document, error) {
	b := &glbBuilder{
		doc: &gltf.Document{
			Asset:  gltf.Asset{Version: "2.0", Generator: "roomwalk"},
			Scene:  ptr(0),
			Scenes: []*gltf.Scene{{Name: "room"}},
		},
	}
	materials := make(map[string]int)

	for _, m := range meshes {
		if len(m.Vertices) > math.MaxUint16 {
			return nil, fmt.Errorf("%s: %w", m.Name, ErrTooManyVertices)
		}

		prim := &gltf.Primitive{
			Mode: gltf.PrimitiveTriangles,
			Attributes: map[string]int{
				gltf.POSITION: b.vec3(m.Vertices, false),
				gltf.NORMAL:   b.vec3(m.Vertices, true),
			},
			Indices: ptr(b.indices(m.Faces)),
		}
		if mat := m.PrimaryMaterial(); mat != nil {
			idx, ok := materials[mat.Name]
			if !ok {
				idx = b.material(*mat)
				materials[mat.Name] = idx
			}
			prim.Material = ptr(idx)
		}

		b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
			Name:       m.Name,
			Primitives: []*gltf.Primitive{prim},
		})
		b.doc.Nodes = append(b.doc.Nodes, &gltf.Node{
			Name:   m.Name,
			Mesh:   ptr(len(b.doc.Meshes) - 1),
			Extras: map[string]any{classExtra: m.Class.String()},
		})
		b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, len(b.doc.Nodes)-1)
	}

	b.align()
	b.doc.Buffers = []*gltf.Buffer{{ByteLength: len(b.buf), Data: b.buf}}
	return b.doc, nil
}

// ExportGLB writes meshes to a binary glTF file.
func ExportGLB(path string, meshes []*Mesh) error {
	doc, err := BuildDocument(meshes)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}
