package models

import (
	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// boxFaces index math3d.AABB.Corners, counter-clockwise seen from outside.
var boxFaces = [6]struct {
	corners [4]int
	normal  math3d.Vec3
}{
	{[4]int{0, 4, 6, 2}, math3d.V3(-1, 0, 0)},
	{[4]int{1, 3, 7, 5}, math3d.V3(1, 0, 0)},
	{[4]int{0, 1, 5, 4}, math3d.V3(0, -1, 0)},
	{[4]int{2, 6, 7, 3}, math3d.V3(0, 1, 0)},
	{[4]int{0, 2, 3, 1}, math3d.V3(0, 0, -1)},
	{[4]int{4, 5, 7, 6}, math3d.V3(0, 0, 1)},
}

// BoxMesh builds a flat-shaded box: 24 vertices so each face keeps its own
// normal, and 12 triangles.
func BoxMesh(name string, b math3d.AABB) *Mesh {
	m := NewMesh(name)
	corners := b.Corners()

	for _, f := range boxFaces {
		base := len(m.Vertices)
		for _, ci := range f.corners {
			m.Vertices = append(m.Vertices, MeshVertex{Position: corners[ci], Normal: f.normal})
		}
		m.Faces = append(m.Faces,
			Face{V: [3]int{base, base + 1, base + 2}, Material: -1},
			Face{V: [3]int{base, base + 2, base + 3}, Material: -1},
		)
	}

	m.fitBounds()
	return m
}

// TrimMaterial is used for untagged primitives such as baseboards and
// frames, which have no catalog entry.
var TrimMaterial = Material{
	Name:      "trim",
	BaseColor: [4]float64{0.91, 0.91, 0.89, 1},
	Roughness: 0.5,
}

// FromCatalog converts a catalog material to its glTF form.
func FromCatalog(m catalog.Material) Material {
	return Material{
		Name:      m.ID,
		BaseColor: m.Linear(),
		Metallic:  m.Metalness,
		Roughness: m.Roughness,
	}
}

// FromScene builds one mesh per primitive, in scene order, each carrying
// the material its class resolves to under a.
func FromScene(s *scene.Scene, cat *catalog.Catalog, a catalog.Assignment) []*Mesh {
	meshes := make([]*Mesh, 0, len(s.Primitives))
	for _, p := range s.Primitives {
		m := BoxMesh(p.Name, p.Bounds)
		m.Class = p.Class

		mat := TrimMaterial
		if p.Class != surface.None {
			if cm, ok := cat.Resolve(a, p.Class); ok {
				mat = FromCatalog(cm)
			}
		}
		m.Materials = []Material{mat}
		for i := range m.Faces {
			m.Faces[i].Material = 0
		}
		meshes = append(meshes, m)
	}
	return meshes
}
