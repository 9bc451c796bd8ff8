package render

import (
	"github.com/taigrr/roomwalk/pkg/math3d"
)

// Wireframe draws lines in world space on top of the rasterized frame.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// boxEdges index math3d.AABB.Corners.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along X
	{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along Y
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along Z
}

// DrawLine3D draws a line between two world points, clipped to the near
// plane. Depth is ignored.
func (w *Wireframe) DrawLine3D(a, b math3d.Vec3, color Color) {
	viewProj := w.camera.ViewProjectionMatrix()

	clipA := viewProj.MulVec4(math3d.Point(a))
	clipB := viewProj.MulVec4(math3d.Point(b))

	da, db := clipA.Z+clipA.W, clipB.Z+clipB.W
	if da < 0 && db < 0 {
		return
	}
	if da < 0 || db < 0 {
		clipped := clipNear([]math3d.Vec4{clipA, clipB})
		if len(clipped) < 2 {
			return
		}
		clipA, clipB = clipped[0], clipped[1]
	}

	sa := toScreen(clipA, w.fb.Width, w.fb.Height)
	sb := toScreen(clipB, w.fb.Width, w.fb.Height)
	w.fb.DrawLine(int(sa.X), int(sa.Y), int(sb.X), int(sb.Y), color)
}

// DrawBox outlines an axis-aligned box.
func (w *Wireframe) DrawBox(b math3d.AABB, color Color) {
	c := b.Corners()
	for _, e := range boxEdges {
		w.DrawLine3D(c[e[0]], c[e[1]], color)
	}
}

// DrawCrosshair marks the viewport centre, where the aiming ray points.
func (w *Wireframe) DrawCrosshair(size int, color Color) {
	cx, cy := w.fb.Width/2, w.fb.Height/2
	w.fb.DrawLine(cx-size, cy, cx+size, cy, color)
	w.fb.DrawLine(cx, cy-size/2, cx, cy+size/2, color)
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	h := size / 2
	w.DrawLine3D(math3d.V3(pos.X-h, pos.Y, pos.Z), math3d.V3(pos.X+h, pos.Y, pos.Z), color)
	w.DrawLine3D(math3d.V3(pos.X, pos.Y-h, pos.Z), math3d.V3(pos.X, pos.Y+h, pos.Z), color)
	w.DrawLine3D(math3d.V3(pos.X, pos.Y, pos.Z-h), math3d.V3(pos.X, pos.Y, pos.Z+h), color)
}
