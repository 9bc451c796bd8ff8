package render

import (
	"github.com/charmbracelet/harmonica"
)

// LookAxis tracks one rotation axis. Input adds velocity; a critically
// damped spring bleeds it back to zero so the view glides to a stop.
type LookAxis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity
}

// NewLookAxis creates an axis with the given spring frequency and damping.
func NewLookAxis(fps int, frequency, damping float64) LookAxis {
	return LookAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Step returns the rotation for this frame and decays the velocity.
func (a *LookAxis) Step() float64 {
	delta := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return delta
}

// Stop kills any remaining motion.
func (a *LookAxis) Stop() {
	a.Velocity = 0
	a.velAccel = 0
}

// Look smooths mouse and keyboard look input before it reaches the camera.
type Look struct {
	Pitch, Yaw  LookAxis
	Sensitivity float64 // radians per input unit
}

// NewLook creates look smoothing ticking at fps.
func NewLook(fps int, frequency, damping, sensitivity float64) *Look {
	return &Look{
		Pitch:       NewLookAxis(fps, frequency, damping),
		Yaw:         NewLookAxis(fps, frequency, damping),
		Sensitivity: sensitivity,
	}
}

// Nudge adds look input. Positive dx turns right, positive dy looks down,
// matching mouse motion on screen.
func (l *Look) Nudge(dx, dy float64) {
	l.Yaw.Velocity -= dx * l.Sensitivity
	l.Pitch.Velocity -= dy * l.Sensitivity
}

// Apply advances both axes one frame and rotates cam.
func (l *Look) Apply(cam *Camera) {
	dp := l.Pitch.Step()
	dy := l.Yaw.Step()
	if dp == 0 && dy == 0 {
		return
	}
	cam.Rotate(dp, dy)
}

// Stop halts both axes.
func (l *Look) Stop() {
	l.Pitch.Stop()
	l.Yaw.Stop()
}

// Moving reports whether the view is still turning.
func (l *Look) Moving() bool {
	const eps = 1e-5
	return abs64(l.Pitch.Velocity) > eps || abs64(l.Yaw.Velocity) > eps
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
