package tui

import (
	"cmp"
	"slices"
	"time"

	"github.com/taigrr/roomwalk/pkg/interact"
)

// keyMatcher is satisfied by uv.KeyPressEvent and uv.KeyReleaseEvent.
type keyMatcher interface {
	MatchString(s ...string) bool
}

type binding struct {
	key    string
	action interact.Action
}

// Keymap translates terminal keys to actions.
type Keymap struct {
	bindings []binding
}

// NewKeymap builds a keymap from key name to action.
func NewKeymap(m map[string]interact.Action) Keymap {
	km := Keymap{bindings: make([]binding, 0, len(m))}
	for k, a := range m {
		km.bindings = append(km.bindings, binding{key: k, action: a})
	}
	slices.SortFunc(km.bindings, func(a, b binding) int { return cmp.Compare(a.key, b.key) })
	return km
}

// Action returns the action bound to ev, or ActionNone.
func (k Keymap) Action(ev keyMatcher) interact.Action {
	for _, b := range k.bindings {
		if ev.MatchString(b.key) {
			return b.action
		}
	}
	return interact.ActionNone
}

// Keys returns the keys bound to a, in sorted order.
func (k Keymap) Keys(a interact.Action) []string {
	var keys []string
	for _, b := range k.bindings {
		if b.action == a {
			keys = append(keys, b.key)
		}
	}
	return keys
}

// holdTracker turns key presses into held keys. Terminals that speak the
// kitty keyboard protocol report releases; for the rest a key counts as
// released when no repeat arrives within timeout.
type holdTracker struct {
	timeout  time.Duration
	releases bool
	held     map[interact.Action]time.Time
}

func newHoldTracker(timeout time.Duration) *holdTracker {
	return &holdTracker{
		timeout: timeout,
		held:    make(map[interact.Action]time.Time),
	}
}

// press records a press at now and reports whether the key was up.
func (h *holdTracker) press(a interact.Action, now time.Time) bool {
	_, down := h.held[a]
	h.held[a] = now
	return !down
}

// release records a reported release and reports whether the key was down.
// After the first reported release the timeout no longer applies.
func (h *holdTracker) release(a interact.Action) bool {
	h.releases = true
	_, down := h.held[a]
	delete(h.held, a)
	return down
}

// expire releases keys not refreshed within the timeout.
func (h *holdTracker) expire(now time.Time) []interact.Action {
	if h.releases {
		return nil
	}
	var out []interact.Action
	for a, last := range h.held {
		if now.Sub(last) >= h.timeout {
			out = append(out, a)
			delete(h.held, a)
		}
	}
	slices.Sort(out)
	return out
}

func (h *holdTracker) down(a interact.Action) bool {
	_, ok := h.held[a]
	return ok
}

// reset forgets every held key.
func (h *holdTracker) reset() {
	clear(h.held)
}
