package interact

import (
	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// TooltipText is shown while aiming at an editable surface.
const TooltipText = "Press E to change material"

var instructions = [...]string{
	UIIdle:         "Click to enter first-person mode",
	CapturePending: "Entering FPS mode...",
	Moving:         "WASD to move, mouse to look, E to open material selector",
	PickerOpen:     "Choose a material, then click Done or press ESC",
}

// Instructions returns the help line for mode.
func Instructions(mode Mode) string {
	if mode < 0 || int(mode) >= len(instructions) {
		return ""
	}
	return instructions[mode]
}

// Context is a read-only snapshot of everything a frontend draws. It is
// rebuilt on request and never aliases machine state.
type Context struct {
	Mode             Mode
	CursorVisible    bool
	MovementEnabled  bool
	TargetingEnabled bool
	Captured         bool

	Instructions string
	ShowTooltip  bool

	// Target is the surface under the aiming ray, valid when HasTarget.
	Target    surface.Hit
	HasTarget bool

	// SelectedClass is surface.None unless the picker is open.
	SelectedClass surface.Class
	PickerEntries []catalog.Material
	PickerCursor  int

	Assignment catalog.Assignment
}

// PickerOpen reports whether the overlay should be drawn.
func (c Context) PickerOpen() bool {
	return c.Mode == PickerOpen
}

// Current returns the assigned material id for the picker's class.
func (c Context) Current() string {
	return c.Assignment[c.SelectedClass]
}

// Context returns a snapshot of the machine.
func (m *Machine) Context() Context {
	ctx := Context{
		Mode:             m.mode,
		CursorVisible:    m.mode.CursorVisible(),
		MovementEnabled:  m.movement.Enabled(),
		TargetingEnabled: m.detector.Enabled(),
		Captured:         m.bridge.Captured(),
		Instructions:     Instructions(m.mode),
		Target:           m.target,
		HasTarget:        m.hasTarget,
		SelectedClass:    m.picker.Class(),
		Assignment:       m.assignment.Clone(),
	}
	ctx.ShowTooltip = m.mode == Moving && m.hasTarget && m.cat.Editable(m.target.Class)
	if m.mode == PickerOpen {
		ctx.PickerEntries = m.picker.Entries()
		ctx.PickerCursor = m.picker.Cursor()
	}
	return ctx
}
