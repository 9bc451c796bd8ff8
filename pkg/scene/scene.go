// Package scene holds the flat list of boxes that make up the room and the
// metadata tags targeting reads from them.
package scene

import (
	"sort"

	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// Primitive is one box in the scene.
type Primitive struct {
	Name   string
	Bounds math3d.AABB
	// Class is surface.None for trim such as baseboards and frames.
	Class surface.Class
	// Interactable marks primitives the aiming ray may report.
	Interactable bool
	// Clickable marks primitives the cursor picker may report.
	Clickable bool
}

// Tagged reports whether p can be targeted by the aiming ray.
func (p Primitive) Tagged() bool {
	return p.Interactable && p.Class != surface.None
}

// Hit is a ray intersection with a primitive.
type Hit struct {
	Index    int
	Distance float64
	Point    math3d.Vec3
}

// Scene is an ordered set of primitives. Order matters: on equal distance
// the earlier primitive wins.
type Scene struct {
	Primitives []Primitive
}

// New creates a scene from prims.
func New(prims ...Primitive) *Scene {
	return &Scene{Primitives: prims}
}

// Add appends a primitive.
func (s *Scene) Add(p Primitive) {
	s.Primitives = append(s.Primitives, p)
}

// Intersect returns every primitive hit by r, nearest first. Equal
// distances keep scene order.
func (s *Scene) Intersect(r math3d.Ray) []Hit {
	var hits []Hit
	for i, p := range s.Primitives {
		d, ok := p.Bounds.Intersect(r)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Index: i, Distance: d, Point: r.At(d)})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Distance < hits[b].Distance
	})
	return hits
}

// Bounds returns the box enclosing every primitive.
func (s *Scene) Bounds() math3d.AABB {
	if len(s.Primitives) == 0 {
		return math3d.AABB{}
	}
	b := s.Primitives[0].Bounds
	for _, p := range s.Primitives[1:] {
		b.Min = b.Min.Min(p.Bounds.Min)
		b.Max = b.Max.Max(p.Bounds.Max)
	}
	return b
}

// Find returns the first primitive named name.
func (s *Scene) Find(name string) (Primitive, bool) {
	for _, p := range s.Primitives {
		if p.Name == name {
			return p, true
		}
	}
	return Primitive{}, false
}
