package interact

import (
	"fmt"
	"strings"
)

// Action is what a key does, independent of which key it is.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionOpenPicker
	ActionClosePicker
	ActionQuit
	ActionLookLeft
	ActionLookRight
	ActionLookUp
	ActionLookDown
)

var actionNames = [...]string{
	ActionNone:        "none",
	ActionForward:     "forward",
	ActionBack:        "back",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionOpenPicker:  "open-picker",
	ActionClosePicker: "close-picker",
	ActionQuit:        "quit",
	ActionLookLeft:    "look-left",
	ActionLookRight:   "look-right",
	ActionLookUp:      "look-up",
	ActionLookDown:    "look-down",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts a config name such as "open-picker" to an Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range actionNames {
		if i != int(ActionNone) && n == s {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", s)
}

// Movement reports whether a is one of the four direction actions.
func (a Action) Movement() bool {
	return a >= ActionForward && a <= ActionRight
}

// Look reports whether a turns the view. Frontends without relative
// pointer motion use these to steer.
func (a Action) Look() bool {
	return a >= ActionLookLeft && a <= ActionLookDown
}

// KeyEvent is a press or release of a mapped key.
type KeyEvent struct {
	Action Action
	Down   bool
}

// KeyState holds the four direction keys.
type KeyState struct {
	Forward, Back, Left, Right bool
}

// Apply records ev and reports whether it touched a direction key.
func (k *KeyState) Apply(ev KeyEvent) bool {
	switch ev.Action {
	case ActionForward:
		k.Forward = ev.Down
	case ActionBack:
		k.Back = ev.Down
	case ActionLeft:
		k.Left = ev.Down
	case ActionRight:
		k.Right = ev.Down
	default:
		return false
	}
	return true
}

// Any reports whether a direction key is held.
func (k KeyState) Any() bool {
	return k.Forward || k.Back || k.Left || k.Right
}

// KeyHandler receives key events from a Dispatcher.
type KeyHandler func(KeyEvent)

// Dispatcher fans key events out to subscribers in subscription order.
// It is not safe for concurrent use; the frontend feeds it from the tick
// goroutine.
type Dispatcher struct {
	subs []subscription
	next int
}

type subscription struct {
	id int
	fn KeyHandler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is a no-op.
func (d *Dispatcher) Subscribe(fn KeyHandler) (unsubscribe func()) {
	d.next++
	id := d.next
	d.subs = append(d.subs, subscription{id: id, fn: fn})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch delivers ev to every current subscriber.
func (d *Dispatcher) Dispatch(ev KeyEvent) {
	// Handlers may unsubscribe while we iterate.
	subs := append([]subscription(nil), d.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (d *Dispatcher) Len() int {
	return len(d.subs)
}
