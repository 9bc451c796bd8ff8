package tui

import (
	"io"
	"log/slog"
)

// Terminal mode sequences.
const (
	mouseButtonsOn  = "\x1b[?1002h" // press, release and drag
	mouseButtonsOff = "\x1b[?1002l"
	mouseMotionOn   = "\x1b[?1003h" // every motion, buttons or not
	mouseMotionOff  = "\x1b[?1003l"
	mouseSGROn      = "\x1b[?1006h"
	mouseSGROff     = "\x1b[?1006l"
	focusOn         = "\x1b[?1004h"
	focusOff        = "\x1b[?1004l"
	kittyKeysPush   = "\x1b[>3u" // disambiguate + report event types
	kittyKeysPop    = "\x1b[<u"
)

// mouseCapture is the terminal's pointer capture. Capture means the
// terminal reports every mouse motion so it can drive the view. The
// terminal never acknowledges the mode switch, so a request is confirmed
// on the frame after it was written, and only if the write succeeded.
type mouseCapture struct {
	w      io.Writer
	logger *slog.Logger

	requested bool
	active    bool
}

func newMouseCapture(w io.Writer, logger *slog.Logger) *mouseCapture {
	return &mouseCapture{w: w, logger: logger}
}

// setup enables the modes that stay on for the whole session.
func (c *mouseCapture) setup() {
	c.write(mouseButtonsOn + mouseSGROn + focusOn + kittyKeysPush)
}

// teardown restores the terminal.
func (c *mouseCapture) teardown() {
	c.write(mouseMotionOff + mouseButtonsOff + mouseSGROff + focusOff + kittyKeysPop)
}

// RequestLock asks the terminal for motion reports.
func (c *mouseCapture) RequestLock() {
	c.requested = c.write(mouseMotionOn)
}

// ExitLock turns motion reports off again.
func (c *mouseCapture) ExitLock() {
	c.requested = false
	c.active = false
	c.write(mouseMotionOff)
}

// confirm reports, once, that a pending request took effect.
func (c *mouseCapture) confirm() bool {
	if !c.requested {
		return false
	}
	c.requested = false
	c.active = true
	return true
}

// revoke drops capture without being asked to, as on focus loss. It
// reports whether capture was active.
func (c *mouseCapture) revoke() bool {
	was := c.active
	c.ExitLock()
	return was
}

func (c *mouseCapture) write(s string) bool {
	if _, err := io.WriteString(c.w, s); err != nil {
		c.logger.Warn("terminal write failed", "err", err)
		return false
	}
	return true
}

// pointer turns absolute mouse cells into motion deltas.
type pointer struct {
	x, y  int
	valid bool
}

// move returns the motion since the last call. The first call after a
// reset only records the position.
func (p *pointer) move(x, y int) (dx, dy int, ok bool) {
	if !p.valid {
		p.x, p.y, p.valid = x, y, true
		return 0, 0, false
	}
	dx, dy = x-p.x, y-p.y
	p.x, p.y = x, y
	return dx, dy, dx != 0 || dy != 0
}

func (p *pointer) reset() {
	p.valid = false
}
