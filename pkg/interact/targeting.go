package interact

import (
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// DefaultMaxDistance is how far the aiming ray reaches.
const DefaultMaxDistance = 20.0

// Nearest returns the closest tagged primitive hit by ray no farther than
// maxDistance. Untagged primitives are transparent to it. On equal
// distance the earlier primitive wins.
func Nearest(ray math3d.Ray, prims []scene.Primitive, maxDistance float64) (surface.Hit, bool) {
	best := -1
	bestDist := 0.0
	for i, p := range prims {
		if !p.Tagged() {
			continue
		}
		d, ok := p.Bounds.Intersect(ray)
		if !ok || d > maxDistance {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return surface.Hit{}, false
	}
	return surface.Hit{
		Class:     prims[best].Class,
		Distance:  bestDist,
		Point:     ray.At(bestDist),
		Primitive: prims[best].Name,
	}, true
}

// Detector finds the surface under the viewport centre each tick while
// enabled.
type Detector struct {
	MaxDistance float64
	enabled     bool
}

// NewDetector creates a disabled detector.
func NewDetector(maxDistance float64) *Detector {
	return &Detector{MaxDistance: maxDistance}
}

// Enable turns detection on from the next Detect call.
func (d *Detector) Enable() { d.enabled = true }

// Disable turns detection off from the next Detect call.
func (d *Detector) Disable() { d.enabled = false }

// Enabled reports whether Detect looks at the scene.
func (d *Detector) Enabled() bool { return d.enabled }

// Detect returns the aimed-at surface, or none when disabled.
func (d *Detector) Detect(ray math3d.Ray, prims []scene.Primitive) (surface.Hit, bool) {
	if !d.enabled {
		return surface.Hit{}, false
	}
	return Nearest(ray, prims, d.MaxDistance)
}

// Viewer produces the rays used for aiming and clicking.
type Viewer interface {
	CenterRay() math3d.Ray
	ScreenRay(ndcX, ndcY float64) math3d.Ray
}

// PickClickable returns the nearest clickable primitive under the cursor.
// While captured the cursor is hidden and the viewport centre is used
// instead. There is no distance limit.
func PickClickable(v Viewer, ndcX, ndcY float64, captured bool, prims []scene.Primitive) (surface.Hit, bool) {
	ray := v.CenterRay()
	if !captured {
		ray = v.ScreenRay(ndcX, ndcY)
	}

	best := -1
	bestDist := 0.0
	for i, p := range prims {
		if !p.Clickable {
			continue
		}
		d, ok := p.Bounds.Intersect(ray)
		if !ok {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return surface.Hit{}, false
	}
	return surface.Hit{
		Class:     prims[best].Class,
		Distance:  bestDist,
		Point:     ray.At(bestDist),
		Primitive: prims[best].Name,
	}, true
}
