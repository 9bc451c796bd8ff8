// Package models turns room primitives into triangle meshes with PBR
// materials, and moves them in and out of binary glTF.
package models

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// Mesh is the triangle form of one room primitive. Class carries the
// primitive's surface class so an exported file can be read back into a
// room with its assignment intact.
type Mesh struct {
	Name      string
	Class     surface.Class
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material
	Bounds    math3d.AABB
}

// MeshVertex is a position with its face normal.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face is a triangle. Material indexes Mesh.Materials, or is -1.
type Face struct {
	V        [3]int
	Material int
}

// Material is the glTF form of a catalog material.
type Material struct {
	Name      string
	BaseColor [4]float64 // linear RGBA
	Metallic  float64
	Roughness float64
}

// RGBA converts the linear base colour back to sRGB.
func (m Material) RGBA() color.RGBA {
	c := colorful.LinearRgb(m.BaseColor[0], m.BaseColor[1], m.BaseColor[2]).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, uint8(m.BaseColor[3]*255 + 0.5)}
}

// NewMesh returns an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

func (m *Mesh) fitBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = math3d.AABB{}
		return
	}
	lo, hi := m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		lo, hi = lo.Min(v.Position), hi.Max(v.Position)
	}
	m.Bounds = math3d.AABB{Min: lo, Max: hi}
}

// flatNormals gives every vertex the normal of the face that uses it.
// Room meshes never share vertices between faces.
func (m *Mesh) flatNormals() {
	for _, f := range m.Faces {
		a := m.Vertices[f.V[0]].Position
		n := m.Vertices[f.V[1]].Position.Sub(a).Cross(m.Vertices[f.V[2]].Position.Sub(a)).Normalize()
		for _, i := range f.V {
			m.Vertices[i].Normal = n
		}
	}
}

// PrimaryMaterial is the material the room assigned, or nil for a bare mesh.
func (m *Mesh) PrimaryMaterial() *Material {
	if len(m.Materials) == 0 {
		return nil
	}
	return &m.Materials[0]
}

// TriangleCount implements render.MeshRenderer.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// VertexCount implements render.MeshRenderer.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// GetVertex implements render.MeshRenderer.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace implements render.MeshRenderer.
func (m *Mesh) GetFace(i int) [3]int { return m.Faces[i].V }

// GetBounds lets the rasterizer cull the mesh.
func (m *Mesh) GetBounds() math3d.AABB { return m.Bounds }
