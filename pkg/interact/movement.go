package interact

import (
	"math"

	"github.com/taigrr/roomwalk/pkg/math3d"
)

const (
	// DefaultSpeed is the walking speed in units per second.
	DefaultSpeed = 5.0
	// DefaultEyeHeight is the fixed camera height.
	DefaultEyeHeight = 1.6
)

// Body is the part of the camera movement writes to.
type Body interface {
	Forward() math3d.Vec3
	Translate(delta math3d.Vec3)
	SetHeight(y float64)
}

// Intent turns held keys into a planar intent: Y is depth (forward
// positive), X is lateral (right positive). Diagonals are normalised so
// the length is 0 or 1.
func Intent(k KeyState) math3d.Vec2 {
	var v math3d.Vec2
	if k.Forward {
		v.Y++
	}
	if k.Back {
		v.Y--
	}
	if k.Left {
		v.X--
	}
	if k.Right {
		v.X++
	}
	if v.X == 0 && v.Y == 0 {
		return v
	}
	return v.Normalize()
}

// Displacement converts an intent into a world-space step for a viewer
// facing forward. Looking straight up or down gives no heading and so no
// movement.
func Displacement(forward math3d.Vec3, intent math3d.Vec2, speed, dt float64) math3d.Vec3 {
	if intent.X == 0 && intent.Y == 0 {
		return math3d.Vec3{}
	}
	flat := math3d.V3(forward.X, 0, forward.Z)
	if flat.LenSq() < 1e-12 {
		return math3d.Vec3{}
	}
	fwd := flat.Normalize()
	lateral := fwd.Cross(math3d.Up()).Normalize()

	return fwd.Scale(intent.Y).Add(lateral.Scale(intent.X)).Scale(speed * dt)
}

// Movement integrates held direction keys into camera motion. It only
// listens to keys while enabled.
type Movement struct {
	Speed     float64
	EyeHeight float64
	// RetainKeys keeps held keys across disable, so re-enabling resumes
	// the previous motion.
	RetainKeys bool

	keys        KeyState
	enabled     bool
	unsubscribe func()
}

// NewMovement creates a disabled controller.
func NewMovement(speed, eyeHeight float64) *Movement {
	return &Movement{Speed: speed, EyeHeight: eyeHeight}
}

// Enable subscribes to d. Enabling twice is a no-op.
func (m *Movement) Enable(d *Dispatcher) {
	if m.enabled {
		return
	}
	m.enabled = true
	m.unsubscribe = d.Subscribe(m.HandleKey)
}

// Disable releases the key subscription.
func (m *Movement) Disable() {
	if !m.enabled {
		return
	}
	m.enabled = false
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	if !m.RetainKeys {
		m.keys = KeyState{}
	}
}

// Enabled reports whether the controller moves the camera.
func (m *Movement) Enabled() bool {
	return m.enabled
}

// Keys returns the held direction keys.
func (m *Movement) Keys() KeyState {
	return m.keys
}

// HandleKey records a direction key. Ignored while disabled.
func (m *Movement) HandleKey(ev KeyEvent) {
	if !m.enabled {
		return
	}
	m.keys.Apply(ev)
}

// Step moves body for dt seconds and pins it to eye height. It returns the
// displacement applied; a disabled controller does nothing.
func (m *Movement) Step(body Body, dt float64) math3d.Vec3 {
	if !m.enabled {
		return math3d.Vec3{}
	}
	dt = math.Max(dt, 0)
	delta := Displacement(body.Forward(), Intent(m.keys), m.Speed, dt)
	body.Translate(delta)
	body.SetHeight(m.EyeHeight)
	return delta
}
