package render

import (
	"math"
	"testing"

	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/scene"
)

func BenchmarkFrustumExtract(b *testing.B) {
	cam := NewCamera()
	cam.SetRotation(-0.2, 0.7)
	viewProj := cam.ViewProjectionMatrix()

	for b.Loop() {
		_ = NewFrustumFromMatrix(viewProj)
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.1, 1000.0)
	frustum := NewFrustumFromMatrix(proj)
	box := math3d.NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5))

	for b.Loop() {
		_ = frustum.IntersectAABB(box)
	}
}

// BenchmarkRoomCulling culls every room primitive from the start pose.
func BenchmarkRoomCulling(b *testing.B) {
	room := scene.NewRoom(scene.DefaultDims())
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 1.6, -2))
	frustum := cam.Frustum()

	for b.Loop() {
		visible := 0
		for _, p := range room.Primitives {
			if frustum.IntersectAABB(p.Bounds) {
				visible++
			}
		}
		_ = visible
	}
}
