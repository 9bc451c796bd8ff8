package gl

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cursor is the window's pointer capture: a disabled cursor is hidden,
// locked to the window, and reports unbounded motion. A request is
// confirmed once the cursor is seen hidden on a later frame.
type cursor struct {
	requested bool
	active    bool
}

func (c *cursor) RequestLock() {
	rl.DisableCursor()
	c.requested = true
}

func (c *cursor) ExitLock() {
	c.requested = false
	c.active = false
	rl.EnableCursor()
}

// confirm reports, once, that a pending request took effect.
func (c *cursor) confirm() bool {
	if !c.requested || !rl.IsCursorHidden() {
		return false
	}
	c.requested = false
	c.active = true
	return true
}

// revoke gives the cursor back after focus loss and reports whether it
// was captured.
func (c *cursor) revoke() bool {
	was := c.active
	c.ExitLock()
	return was
}
