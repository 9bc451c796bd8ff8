package render

import (
	"github.com/taigrr/roomwalk/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so Normal has unit length and distances are
// in world units.
func (p *Plane) Normalize() {
	if l := p.Normal.Len(); l != 0 {
		p.Normal = p.Normal.Scale(1 / l)
		p.D /= l
	}
}

// DistanceToPoint is the signed distance to q, positive on the normal side.
func (p Plane) DistanceToPoint(q math3d.Vec3) float64 {
	return p.Normal.Dot(q) + p.D
}

// Frustum is the camera's view volume as six inward-facing planes, in the
// order left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the planes of a view-projection matrix by
// adding and subtracting its first three rows from the fourth.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	w := math3d.V4(m[3], m[7], m[11], m[15])

	var f Frustum
	for axis := range 3 {
		r := math3d.V4(m[axis], m[axis+4], m[axis+8], m[axis+12])
		f.Planes[2*axis] = Plane{Normal: math3d.V3(w.X+r.X, w.Y+r.Y, w.Z+r.Z), D: w.W + r.W}
		f.Planes[2*axis+1] = Plane{Normal: math3d.V3(w.X-r.X, w.Y-r.Y, w.Z-r.Z), D: w.W - r.W}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// IntersectAABB reports whether any part of box may be visible. For each
// plane only the box corner furthest along its normal is tested.
func (f Frustum) IntersectAABB(box math3d.AABB) bool {
	for _, p := range f.Planes {
		corner := box.Min
		if p.Normal.X >= 0 {
			corner.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			corner.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			corner.Z = box.Max.Z
		}
		if p.DistanceToPoint(corner) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether q is inside all six planes.
func (f Frustum) ContainsPoint(q math3d.Vec3) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(q) < 0 {
			return false
		}
	}
	return true
}

// Frustum returns the camera's current view volume.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
