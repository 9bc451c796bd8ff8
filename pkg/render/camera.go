package render

import (
	"math"

	"github.com/taigrr/roomwalk/pkg/math3d"
)

// Camera is a first-person camera. Position is the eye point.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (radians)
	Pitch float64 // look up/down
	Yaw   float64 // look left/right

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	// Cached matrices (computed on demand)
	viewMatrix     math3d.Mat4
	projMatrix     math3d.Mat4
	viewProjMatrix math3d.Mat4
	viewDirty      bool
	projDirty      bool
	vpDirty        bool
}

// MaxPitch keeps the view just short of straight up or down.
const MaxPitch = math.Pi/2 - 0.01

// NewCamera creates a camera at standing height looking down -Z with a
// 75 degree vertical field of view.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 1.6, 0),
		FOV:         75 * math.Pi / 180,
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
		vpDirty:     true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
	c.vpDirty = true
}

// SetRotation sets pitch and yaw, clamping pitch.
func (c *Camera) SetRotation(pitch, yaw float64) {
	c.Pitch = clampPitch(pitch)
	c.Yaw = yaw
	c.viewDirty = true
	c.vpDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
	c.vpDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
	c.vpDirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.V3(
		-math.Sin(c.Yaw)*math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw)*math.Cos(c.Pitch),
	)
}

// Right returns the horizontal right direction.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.V3(
		math.Cos(c.Yaw),
		0,
		-math.Sin(c.Yaw),
	)
}

// Up returns the camera up direction.
func (c *Camera) Up() math3d.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Pose returns the eye position and view direction.
func (c *Camera) Pose() (eye, forward math3d.Vec3) {
	return c.Position, c.Forward()
}

// CenterRay is the ray through the middle of the viewport.
func (c *Camera) CenterRay() math3d.Ray {
	return math3d.NewRay(c.Position, c.Forward())
}

// ScreenRay returns the ray through a viewport point given in normalized
// device coordinates, (-1,-1) bottom-left to (1,1) top-right.
func (c *Camera) ScreenRay(ndcX, ndcY float64) math3d.Ray {
	th := math.Tan(c.FOV / 2)
	local := math3d.V4(ndcX*th*c.AspectRatio, ndcY*th, -1, 0)
	world := math3d.Orientation(c.Pitch, c.Yaw).MulVec4(local)
	return math3d.NewRay(c.Position, math3d.V3(world.X, world.Y, world.Z))
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.computeViewMatrix()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.vpDirty {
		c.viewProjMatrix = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.vpDirty = false
	}
	return c.viewProjMatrix
}

func (c *Camera) computeViewMatrix() {
	c.viewMatrix = math3d.FirstPersonView(c.Position, c.Pitch, c.Yaw)
}

// Translate moves the camera by delta.
func (c *Camera) Translate(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
	c.viewDirty = true
	c.vpDirty = true
}

// SetHeight pins the eye to height y.
func (c *Camera) SetHeight(y float64) {
	c.Position.Y = y
	c.viewDirty = true
	c.vpDirty = true
}

// Rotate turns the camera by the given angles (in radians).
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.SetRotation(c.Pitch+deltaPitch, c.Yaw+deltaYaw)
}

func clampPitch(p float64) float64 {
	return math.Max(-MaxPitch, math.Min(MaxPitch, p))
}

// WorldToScreen transforms a world point to screen coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clipPos := c.ViewProjectionMatrix().MulVec4(math3d.Point(worldPos))

	// Behind the camera
	if clipPos.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clipPos.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	depth = ndc.Z

	return x, y, depth, true
}

// ScreenToNDC converts a pixel position to normalized device coordinates.
func ScreenToNDC(x, y float64, screenWidth, screenHeight int) (float64, float64) {
	return x/float64(screenWidth)*2 - 1, 1 - y/float64(screenHeight)*2
}
