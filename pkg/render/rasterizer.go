package render

import (
	"math"

	"github.com/taigrr/roomwalk/pkg/math3d"
)

// Vertex is a triangle corner in world space.
type Vertex struct {
	Position math3d.Vec3
	Color    Color
}

// Triangle represents a triangle to be rasterized. Front faces wind
// counter-clockwise when seen from outside.
type Triangle struct {
	V [3]Vertex
}

// Rasterizer draws depth-tested, flat-lit triangles into a Framebuffer.
type Rasterizer struct {
	camera                 *Camera
	fb                     *Framebuffer
	zbuffer                []float64    // Depth buffer (1D array, row-major)
	CullingStats           CullingStats // Statistics for debugging/benchmarking
	DisableBackfaceCulling bool         // If true, render both sides of triangles
}

// CullingStats tracks frustum culling performance.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Copy-doubling fill
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetCullingStats resets the culling statistics (call once per frame).
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// IsVisible tests if a world-space box is inside the camera frustum.
func (r *Rasterizer) IsVisible(bounds math3d.AABB) bool {
	return r.camera.Frustum().IntersectAABB(bounds)
}

func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y float64 // Screen coordinates
	Z    float64 // NDC depth
}

// clipNear clips a clip-space polygon against the near plane (z >= -w).
// The camera sits inside the room, so floor and wall triangles routinely
// reach behind it.
func clipNear(in []math3d.Vec4) []math3d.Vec4 {
	out := make([]math3d.Vec4, 0, len(in)+1)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := a.Z+a.W, b.Z+b.W
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, math3d.V4(
				a.X+(b.X-a.X)*t,
				a.Y+(b.Y-a.Y)*t,
				a.Z+(b.Z-a.Z)*t,
				a.W+(b.W-a.W)*t,
			))
		}
	}
	return out
}

func toScreen(c math3d.Vec4, width, height int) screenVertex {
	ndc := c.PerspectiveDivide()
	return screenVertex{
		X: (ndc.X + 1) * 0.5 * float64(width),
		Y: (1 - ndc.Y) * 0.5 * float64(height), // Y flipped
		Z: ndc.Z,
	}
}

// DrawTriangle rasterizes a single flat-coloured triangle. The first
// vertex colour is used for the whole face.
func (r *Rasterizer) DrawTriangle(tri Triangle) {
	viewProj := r.camera.ViewProjectionMatrix()

	poly := []math3d.Vec4{
		viewProj.MulVec4(math3d.Point(tri.V[0].Position)),
		viewProj.MulVec4(math3d.Point(tri.V[1].Position)),
		viewProj.MulVec4(math3d.Point(tri.V[2].Position)),
	}
	poly = clipNear(poly)
	if len(poly) < 3 {
		return
	}

	sv := make([]screenVertex, len(poly))
	for i, c := range poly {
		sv[i] = toScreen(c, r.Width(), r.Height())
	}
	for i := 1; i+1 < len(sv); i++ {
		r.fill(sv[0], sv[i], sv[i+1], tri.V[0].Color)
	}
}

func (r *Rasterizer) fill(a, b, c screenVertex, color Color) {
	// Backface culling using screen-space winding (Y down)
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if cross == 0 {
		return
	}
	if cross > 0 && !r.DisableBackfaceCulling {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(a.X, b.X, c.X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(a.X, b.X, c.X))))
	minY := int(math.Max(0, math.Floor(min3(a.Y, b.Y, c.Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(a.Y, b.Y, c.Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(a.X, a.Y, b.X, b.Y, c.X, c.Y, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// NDC depth is affine in screen space.
			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			if z >= r.getDepth(x, y) {
				continue
			}

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, color)
		}
	}
}

// DrawTriangleFlat draws a triangle with a single color.
func (r *Rasterizer) DrawTriangleFlat(v0, v1, v2 math3d.Vec3, color Color) {
	r.DrawTriangle(Triangle{
		V: [3]Vertex{
			{Position: v0, Color: color},
			{Position: v1, Color: color},
			{Position: v2, Color: color},
		},
	})
}

// Shade scales base by a simple two-sided directional term. The room is lit
// from inside, so faces pointing away from the light still get half of it.
func Shade(base Color, normal, lightDir math3d.Vec3) Color {
	intensity := math.Abs(normal.Dot(lightDir.Normalize()))
	intensity = 0.45 + 0.55*intensity // Ambient + diffuse
	return MultiplyColor(base, intensity)
}

// MultiplyColor scales the RGB channels of c by f, clamping to 255.
func MultiplyColor(c Color, f float64) Color {
	scale := func(v uint8) uint8 {
		return uint8(math.Min(255, float64(v)*f))
	}
	return RGBA(scale(c.R), scale(c.G), scale(c.B), c.A)
}

// DrawTriangleLit draws a triangle shaded by its face normal.
func (r *Rasterizer) DrawTriangleLit(v0, v1, v2 math3d.Vec3, baseColor Color, lightDir math3d.Vec3) {
	normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	r.DrawTriangleFlat(v0, v1, v2, Shade(baseColor, normal, lightDir))
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

// MeshRenderer is satisfied by models.Mesh. Declared here so render does
// not import models.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer extends MeshRenderer with bounds for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() math3d.AABB
}

// tryFrustumCull reports whether mesh is outside the view.
func (r *Rasterizer) tryFrustumCull(mesh MeshRenderer) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}

	r.CullingStats.MeshesTested++

	if !r.IsVisible(bounded.GetBounds()) {
		r.CullingStats.MeshesCulled++
		return true
	}

	r.CullingStats.MeshesDrawn++
	return false
}

// DrawMesh renders a world-space mesh in one colour with flat lighting.
// Returns false when the mesh was culled.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, color Color, lightDir math3d.Vec3) bool {
	if r.tryFrustumCull(mesh) {
		return false
	}

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		v0, _ := mesh.GetVertex(face[0])
		v1, _ := mesh.GetVertex(face[1])
		v2, _ := mesh.GetVertex(face[2])

		r.DrawTriangleLit(v0, v1, v2, color, lightDir)
	}
	return true
}
