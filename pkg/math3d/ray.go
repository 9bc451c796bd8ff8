package math3d

import "math"

// Ray is a half-line starting at Origin. Dir is expected to be unit length so
// that intersection parameters are distances.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay creates a ray and normalizes its direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a box from two opposite corners in any order.
func NewAABB(a, b Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// BoxAt creates a box from its center and full size.
func BoxAt(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Center returns the center of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box on each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint reports whether p is inside or on the box.
func (b AABB) ContainsPoint(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corners of the box. Bit 0 of the index selects
// max X, bit 1 max Y, bit 2 max Z.
func (b AABB) Corners() [8]Vec3 {
	var c [8]Vec3
	for i := range 8 {
		c[i] = Vec3{b.Min.X, b.Min.Y, b.Min.Z}
		if i&1 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// Intersect returns the distance along r to the first point on the box
// surface. A ray starting inside the box reports the exit distance.
func (b AABB) Intersect(r Ray) (float64, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)

	for axis := range 3 {
		o, d := r.Origin.Axis(axis), r.Dir.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)

		if d == 0 {
			// Parallel to this slab: miss unless the origin is between the planes.
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
