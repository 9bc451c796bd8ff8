package models

import (
	"math"
	"testing"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

func TestBoxMesh(t *testing.T) {
	b := math3d.NewAABB(math3d.V3(-1, 0, -2), math3d.V3(1, 3, 2))
	m := BoxMesh("box", b)

	if m.VertexCount() != 24 {
		t.Errorf("VertexCount = %d, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", m.TriangleCount())
	}
	if got := m.GetBounds(); got != b {
		t.Errorf("bounds = %v, want %v", got, b)
	}
}

// Every triangle winds counter-clockwise seen from outside, so its
// geometric normal matches the stored one and points away from the centre.
func TestBoxMeshWindingOutward(t *testing.T) {
	m := BoxMesh("box", math3d.BoxAt(math3d.V3(3, 1, -4), math3d.V3(2, 1, 0.5)))
	center := m.Bounds.Center()

	for i := 0; i < m.TriangleCount(); i++ {
		f := m.GetFace(i)
		v0, n := m.GetVertex(f[0])
		v1, _ := m.GetVertex(f[1])
		v2, _ := m.GetVertex(f[2])

		geo := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		if !geo.ApproxEqual(n, 1e-9) {
			t.Errorf("face %d: winding normal %v, stored %v", i, geo, n)
		}
		if geo.Dot(v0.Sub(center)) <= 0 {
			t.Errorf("face %d normal %v points inward", i, geo)
		}
	}
}

func TestFlatNormals(t *testing.T) {
	m := NewMesh("tri")
	m.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
	}
	m.Faces = []Face{{V: [3]int{0, 1, 2}}}
	m.flatNormals()

	for i := range m.Vertices {
		if _, n := m.GetVertex(i); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("vertex %d normal = %v, want +Z", i, n)
		}
	}
}

func TestFitBounds(t *testing.T) {
	m := BoxMesh("box", math3d.NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1)))
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(math3d.V3(2, 0, 0))
	}
	m.fitBounds()

	if m.Bounds.Min.X != 2 || m.Bounds.Max.X != 3 {
		t.Errorf("bounds = %v", m.Bounds)
	}
	if m.Bounds.Size() != math3d.V3(1, 1, 1) {
		t.Errorf("Size = %v, want (1,1,1)", m.Bounds.Size())
	}

	empty := NewMesh("empty")
	empty.fitBounds()
	if empty.Bounds != (math3d.AABB{}) {
		t.Errorf("empty bounds = %v", empty.Bounds)
	}
}

func TestPrimaryMaterial(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{
		{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}},
		{Name: "green", BaseColor: [4]float64{0, 1, 0, 1}},
	}
	if mesh.PrimaryMaterial().Name != "red" {
		t.Error("PrimaryMaterial should be the first material")
	}
	if NewMesh("bare").PrimaryMaterial() != nil {
		t.Error("bare mesh has no primary material")
	}
}

func TestMaterialRGBA(t *testing.T) {
	cat := catalog.Default()
	for _, cm := range cat.List() {
		got := FromCatalog(cm).RGBA()
		want := cm.RGBA()
		if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
			t.Errorf("%s: RGBA = %v, want %v", cm.ID, got, want)
		}
		if got.A != 255 {
			t.Errorf("%s: alpha = %d, want 255", cm.ID, got.A)
		}
	}
}

func absDiff(a, b uint8) int {
	return int(math.Abs(float64(a) - float64(b)))
}

func TestFromScene(t *testing.T) {
	room := scene.NewRoom(scene.DefaultDims())
	cat := catalog.Default()
	a := cat.DefaultAssignment()
	a[surface.Wall] = "brick"

	meshes := FromScene(room, cat, a)
	if len(meshes) != len(room.Primitives) {
		t.Fatalf("got %d meshes, want %d", len(meshes), len(room.Primitives))
	}

	for i, m := range meshes {
		p := room.Primitives[i]
		if m.Name != p.Name || m.Class != p.Class {
			t.Errorf("mesh %d = %s/%s, want %s/%s", i, m.Name, m.Class, p.Name, p.Class)
		}
		mat := m.PrimaryMaterial()
		if mat == nil {
			t.Fatalf("mesh %s has no material", m.Name)
		}
		for j, f := range m.Faces {
			if f.Material != 0 {
				t.Fatalf("mesh %s face %d material = %d", m.Name, j, f.Material)
			}
		}

		want := TrimMaterial.Name
		switch p.Class {
		case surface.Floor:
			want = "hardwood"
		case surface.Wall:
			want = "brick"
		case surface.Ceiling:
			want = "ceiling"
		}
		if mat.Name != want {
			t.Errorf("mesh %s material = %s, want %s", m.Name, mat.Name, want)
		}
	}
}
