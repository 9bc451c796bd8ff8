package interact

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/render"
)

func TestIntent(t *testing.T) {
	s := 1 / math.Sqrt2
	tests := []struct {
		name string
		keys KeyState
		want math3d.Vec2
	}{
		{"none", KeyState{}, math3d.V2(0, 0)},
		{"forward", KeyState{Forward: true}, math3d.V2(0, 1)},
		{"back", KeyState{Back: true}, math3d.V2(0, -1)},
		{"left", KeyState{Left: true}, math3d.V2(-1, 0)},
		{"right", KeyState{Right: true}, math3d.V2(1, 0)},
		{"forward left", KeyState{Forward: true, Left: true}, math3d.V2(-s, s)},
		{"back right", KeyState{Back: true, Right: true}, math3d.V2(s, -s)},
		{"opposites cancel", KeyState{Forward: true, Back: true}, math3d.V2(0, 0)},
		{"all", KeyState{Forward: true, Back: true, Left: true, Right: true}, math3d.V2(0, 0)},
		{"three", KeyState{Forward: true, Left: true, Right: true}, math3d.V2(0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Intent(tc.keys)
			assert.InDelta(t, tc.want.X, got.X, 1e-12)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-12)
		})
	}
}

func TestIntentMagnitudeProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("intent length is 0 or 1", prop.ForAll(
		func(f, b, l, r bool) bool {
			n := Intent(KeyState{Forward: f, Back: b, Left: l, Right: r}).Len()
			return n == 0 || math.Abs(n-1) < 1e-12
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestDisplacement(t *testing.T) {
	tests := []struct {
		name    string
		forward math3d.Vec3
		intent  math3d.Vec2
		want    math3d.Vec3
	}{
		{"forward down -Z", math3d.V3(0, 0, -1), math3d.V2(0, 1), math3d.V3(0, 0, -5)},
		{"strafe right", math3d.V3(0, 0, -1), math3d.V2(1, 0), math3d.V3(5, 0, 0)},
		{"strafe left", math3d.V3(0, 0, -1), math3d.V2(-1, 0), math3d.V3(-5, 0, 0)},
		{"pitched view stays flat", math3d.V3(0, 0.8, -0.6), math3d.V2(0, 1), math3d.V3(0, 0, -5)},
		{"facing -X", math3d.V3(-1, 0, 0), math3d.V2(0, -1), math3d.V3(5, 0, 0)},
		{"straight up", math3d.V3(0, 1, 0), math3d.V2(0, 1), math3d.V3(0, 0, 0)},
		{"no intent", math3d.V3(0, 0, -1), math3d.V2(0, 0), math3d.V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Displacement(tc.forward, tc.intent, DefaultSpeed, 1)
			assert.True(t, got.ApproxEqual(tc.want, 1e-9), "got %v, want %v", got, tc.want)
		})
	}
}

func TestEyeHeightProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("height after a step is eye level", prop.ForAll(
		func(y, pitch, yaw, dt float64, f, l bool) bool {
			cam := render.NewCamera()
			cam.SetPosition(math3d.V3(0, y, 0))
			cam.SetRotation(pitch, yaw)

			m := NewMovement(DefaultSpeed, DefaultEyeHeight)
			d := NewDispatcher()
			m.Enable(d)
			d.Dispatch(KeyEvent{Action: ActionForward, Down: f})
			d.Dispatch(KeyEvent{Action: ActionLeft, Down: l})
			m.Step(cam, dt)

			return cam.Position.Y == DefaultEyeHeight
		},
		gen.Float64Range(-10, 10),
		gen.Float64Range(-1.5, 1.5),
		gen.Float64Range(-math.Pi, math.Pi),
		gen.Float64Range(0, 1),
		gen.Bool(), gen.Bool(),
	))

	properties.Property("step length is speed times dt", prop.ForAll(
		func(pitch, yaw, dt float64) bool {
			cam := render.NewCamera()
			cam.SetRotation(pitch, yaw)

			m := NewMovement(DefaultSpeed, DefaultEyeHeight)
			d := NewDispatcher()
			m.Enable(d)
			d.Dispatch(KeyEvent{Action: ActionForward, Down: true})
			d.Dispatch(KeyEvent{Action: ActionRight, Down: true})
			delta := m.Step(cam, dt)

			return math.Abs(delta.Len()-DefaultSpeed*dt) < 1e-9 && delta.Y == 0
		},
		gen.Float64Range(-1.5, 1.5),
		gen.Float64Range(-math.Pi, math.Pi),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t)
}

func TestMovementDisabled(t *testing.T) {
	cam := render.NewCamera()
	cam.SetPosition(math3d.V3(1, 3, 1))
	m := NewMovement(DefaultSpeed, DefaultEyeHeight)

	m.HandleKey(KeyEvent{Action: ActionForward, Down: true})
	assert.False(t, m.Keys().Any(), "keys are ignored while disabled")

	delta := m.Step(cam, 1)
	assert.Equal(t, math3d.Vec3{}, delta)
	assert.Equal(t, math3d.V3(1, 3, 1), cam.Position, "disabled controller leaves the camera alone")
}

func TestMovementSubscriptionLifecycle(t *testing.T) {
	d := NewDispatcher()
	m := NewMovement(DefaultSpeed, DefaultEyeHeight)

	m.Enable(d)
	m.Enable(d)
	assert.Equal(t, 1, d.Len())
	assert.True(t, m.Enabled())

	d.Dispatch(KeyEvent{Action: ActionBack, Down: true})
	assert.True(t, m.Keys().Back)

	m.Disable()
	m.Disable()
	assert.Equal(t, 0, d.Len())
	assert.False(t, m.Keys().Any())

	d.Dispatch(KeyEvent{Action: ActionBack, Down: true})
	assert.False(t, m.Keys().Back)
}
