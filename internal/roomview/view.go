// Package roomview draws the room and the aiming aids into a framebuffer.
// It is shared by the terminal frontend and the headless snapshot command.
package roomview

import (
	"image/color"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/models"
	"github.com/taigrr/roomwalk/pkg/render"
	"github.com/taigrr/roomwalk/pkg/scene"
)

// Colors used for the aiming aids.
var (
	OutlineColor   = render.RGB(255, 220, 0)
	CrosshairColor = render.RGB(255, 255, 255)
)

// View owns the framebuffer and rasterizer for one camera.
type View struct {
	Camera      *render.Camera
	Framebuffer *render.Framebuffer

	rasterizer *render.Rasterizer
	wireframe  *render.Wireframe

	scene  *scene.Scene
	meshes []*models.Mesh

	Background color.RGBA
	LightDir   math3d.Vec3
	// Outline draws a box around the targeted surface while moving.
	Outline bool
}

// New creates a view of width x height pixels.
func New(cam *render.Camera, scn *scene.Scene, width, height int) *View {
	v := &View{
		Camera:     cam,
		scene:      scn,
		Background: render.ColorSky,
		LightDir:   math3d.V3(0.4, 1, 0.25).Normalize(),
		Outline:    true,
	}
	v.Resize(width, height)
	return v
}

// Resize replaces the framebuffer and fixes the camera aspect.
func (v *View) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	v.Framebuffer = render.NewFramebuffer(width, height)
	v.rasterizer = render.NewRasterizer(v.Camera, v.Framebuffer)
	v.wireframe = render.NewWireframe(v.Camera, v.Framebuffer)
	v.Camera.SetAspectRatio(float64(width) / float64(height))
}

// Rebuild regenerates the meshes so they show assignment.
func (v *View) Rebuild(cat *catalog.Catalog, assignment catalog.Assignment) {
	v.meshes = models.FromScene(v.scene, cat, assignment)
}

// Meshes returns the current room meshes.
func (v *View) Meshes() []*models.Mesh {
	return v.meshes
}

// Draw renders one frame for ctx.
func (v *View) Draw(ctx interact.Context) render.CullingStats {
	v.Framebuffer.Clear(v.Background)
	v.rasterizer.ClearDepth()
	v.rasterizer.ResetCullingStats()

	for _, m := range v.meshes {
		base := CrosshairColor
		if mat := m.PrimaryMaterial(); mat != nil {
			base = mat.RGBA()
		}
		v.rasterizer.DrawMesh(m, base, v.LightDir)
	}

	if ctx.Mode != interact.Moving {
		return v.rasterizer.CullingStats
	}
	if v.Outline && ctx.ShowTooltip {
		if p, ok := v.scene.Find(ctx.Target.Primitive); ok {
			v.wireframe.DrawBox(p.Bounds, OutlineColor)
		}
	}
	v.wireframe.DrawCrosshair(max(2, v.Framebuffer.Width/80), CrosshairColor)
	return v.rasterizer.CullingStats
}
