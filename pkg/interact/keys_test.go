package interact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	for _, a := range []Action{ActionForward, ActionBack, ActionLeft, ActionRight, ActionOpenPicker, ActionClosePicker, ActionQuit, ActionLookUp} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := ParseAction("  Open-Picker ")
	require.NoError(t, err)
	assert.Equal(t, ActionOpenPicker, got)

	_, err = ParseAction("none")
	assert.Error(t, err)
	_, err = ParseAction("jump")
	assert.Error(t, err)

	assert.Equal(t, "action(42)", Action(42).String())
}

func TestActionMovement(t *testing.T) {
	assert.True(t, ActionForward.Movement())
	assert.True(t, ActionRight.Movement())
	assert.False(t, ActionNone.Movement())
	assert.False(t, ActionOpenPicker.Movement())
	assert.False(t, ActionLookLeft.Movement())

	assert.True(t, ActionLookLeft.Look())
	assert.True(t, ActionLookDown.Look())
	assert.False(t, ActionRight.Look())
}

func TestKeyStateApply(t *testing.T) {
	var k KeyState
	assert.True(t, k.Apply(KeyEvent{Action: ActionLeft, Down: true}))
	assert.True(t, k.Left)
	assert.True(t, k.Any())

	assert.False(t, k.Apply(KeyEvent{Action: ActionOpenPicker, Down: true}))

	assert.True(t, k.Apply(KeyEvent{Action: ActionLeft}))
	assert.False(t, k.Any())
}

func TestDispatcherOrder(t *testing.T) {
	d := NewDispatcher()
	var got []string
	d.Subscribe(func(KeyEvent) { got = append(got, "a") })
	d.Subscribe(func(KeyEvent) { got = append(got, "b") })

	d.Dispatch(KeyEvent{Action: ActionForward, Down: true})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDispatcherUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	var a, b int
	unA := d.Subscribe(func(KeyEvent) { a++ })
	unB := d.Subscribe(func(KeyEvent) { b++ })

	unA()
	unA()
	assert.Equal(t, 1, d.Len(), "unsubscribe is idempotent")

	d.Dispatch(KeyEvent{})
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)

	unB()
	assert.Equal(t, 0, d.Len())
}

func TestDispatcherUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	var un func()
	un = d.Subscribe(func(KeyEvent) {
		calls++
		un()
	})
	d.Subscribe(func(KeyEvent) { calls++ })

	d.Dispatch(KeyEvent{})
	assert.Equal(t, 2, calls, "every handler subscribed at dispatch time runs")

	d.Dispatch(KeyEvent{})
	assert.Equal(t, 3, calls)
}
