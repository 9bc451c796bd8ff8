package roomview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/render"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

func newView(t *testing.T, pos math3d.Vec3) *View {
	t.Helper()
	cam := render.NewCamera()
	cam.SetPosition(pos)
	v := New(cam, scene.NewRoom(scene.DefaultDims()), 80, 48)
	cat := catalog.Default()
	v.Rebuild(cat, cat.DefaultAssignment())
	return v
}

func countColor(fb *render.Framebuffer, c render.Color) int {
	n := 0
	for y := range fb.Height {
		for x := range fb.Width {
			if fb.GetPixel(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawFillsRoom(t *testing.T) {
	v := newView(t, math3d.V3(0, 1.6, -2))
	require.Len(t, v.Meshes(), len(v.scene.Primitives))

	stats := v.Draw(interact.Context{Mode: interact.UIIdle})
	assert.Positive(t, stats.MeshesDrawn)
	assert.Positive(t, stats.MeshesCulled, "walls behind the camera are culled")

	centre := v.Framebuffer.GetPixel(40, 24)
	assert.NotEqual(t, v.Background, centre, "the south wall fills the view")
	assert.NotEqual(t, CrosshairColor, centre, "no crosshair outside first-person mode")
}

func TestDrawAimingAids(t *testing.T) {
	v := newView(t, math3d.V3(0, 1.6, 2))
	ctx := interact.Context{
		Mode:        interact.Moving,
		ShowTooltip: true,
		HasTarget:   true,
		Target:      surface.Hit{Class: surface.Wall, Primitive: "wall-south", Distance: 5},
	}

	v.Draw(ctx)
	assert.Equal(t, CrosshairColor, v.Framebuffer.GetPixel(40, 24))
	assert.Positive(t, countColor(v.Framebuffer, OutlineColor))

	v.Outline = false
	v.Draw(ctx)
	assert.Zero(t, countColor(v.Framebuffer, OutlineColor))
}

func TestRebuildFollowsAssignment(t *testing.T) {
	v := newView(t, math3d.V3(0, 1.6, -2))
	v.Draw(interact.Context{})
	before := v.Framebuffer.GetPixel(40, 24)

	cat := catalog.Default()
	a := cat.DefaultAssignment()
	a[surface.Wall] = "brick"
	v.Rebuild(cat, a)
	v.Draw(interact.Context{})

	assert.NotEqual(t, before, v.Framebuffer.GetPixel(40, 24))
}

func TestResize(t *testing.T) {
	v := newView(t, math3d.V3(0, 1.6, -2))
	v.Resize(120, 40)

	assert.Equal(t, 120, v.Framebuffer.Width)
	assert.Equal(t, 40, v.Framebuffer.Height)
	assert.InDelta(t, 3.0, v.Camera.AspectRatio, 1e-9)
}
