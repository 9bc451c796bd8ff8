// Package interact coordinates pointer capture, first-person movement,
// surface targeting and the material picker. A Machine owns the current
// mode and is the only thing that turns those components on and off.
package interact

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// ErrPickerClosed is returned by selection calls outside PickerOpen.
var ErrPickerClosed = errors.New("material picker is not open")

// Mode is the interaction mode. Exactly one is active.
type Mode int

const (
	// UIIdle shows the cursor and waits for a capture request.
	UIIdle Mode = iota
	// CapturePending waits for the platform to confirm capture.
	CapturePending
	// Moving has capture, movement and targeting.
	Moving
	// PickerOpen shows the material overlay with the cursor free.
	PickerOpen
)

var modeNames = [...]string{
	UIIdle:         "UIIdle",
	CapturePending: "CapturePending",
	Moving:         "Moving",
	PickerOpen:     "PickerOpen",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// CursorVisible reports whether the platform cursor shows in this mode.
func (m Mode) CursorVisible() bool {
	return m == UIIdle || m == PickerOpen
}

// Camera is everything the machine reads from and writes to the view.
type Camera interface {
	Body
	Viewer
}

// Config holds the tunables of the interaction core.
type Config struct {
	// Speed is the walking speed in metres per second.
	Speed float64
	// EyeHeight pins the camera height while moving.
	EyeHeight float64
	// RetainKeysOnDisable keeps held direction keys when movement stops.
	RetainKeysOnDisable bool
	// MaxDistance is the farthest surface targeting reports.
	MaxDistance float64
	// CaptureTimeout returns a pending capture request to UIIdle after
	// this long. Zero waits forever.
	CaptureTimeout time.Duration
}

// DefaultConfig returns the reference tunables.
func DefaultConfig() Config {
	return Config{
		Speed:       DefaultSpeed,
		EyeHeight:   DefaultEyeHeight,
		MaxDistance: DefaultMaxDistance,
	}
}

// Hooks are optional observers. Each is called synchronously from the
// method that caused the change.
type Hooks struct {
	ModeChanged      func(from, to Mode)
	SurfaceTargeted  func(hit surface.Hit, ok bool)
	PickerOpened     func(class surface.Class)
	PickerClosed     func(class surface.Class)
	MaterialAssigned func(class surface.Class, id string)
}

// Option configures a Machine.
type Option func(*Machine)

// WithHooks installs observers.
func WithHooks(h Hooks) Option {
	return func(m *Machine) { m.hooks = h }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// WithAssignment sets the starting materials. Entries the catalog does not
// offer fall back to class defaults.
func WithAssignment(a catalog.Assignment) Option {
	return func(m *Machine) { m.assignment = a }
}

// WithDispatcher shares a key dispatcher with other subscribers.
func WithDispatcher(d *Dispatcher) Option {
	return func(m *Machine) { m.keys = d }
}

// Machine is the interaction state machine. It is not safe for concurrent
// use: frontends call it from a single loop, applying queued input before
// each Tick.
type Machine struct {
	cfg    Config
	cat    *catalog.Catalog
	scn    *scene.Scene
	cam    Camera
	bridge *CaptureBridge
	keys   *Dispatcher

	movement *Movement
	detector *Detector
	picker   Picker

	mode       Mode
	target     surface.Hit
	hasTarget  bool
	assignment catalog.Assignment
	pendingFor time.Duration

	hooks  Hooks
	logger *slog.Logger
}

// NewMachine creates a machine in UIIdle.
func NewMachine(cfg Config, cat *catalog.Catalog, scn *scene.Scene, cam Camera, platform Capturer, opts ...Option) *Machine {
	m := &Machine{
		cfg:      cfg,
		cat:      cat,
		scn:      scn,
		cam:      cam,
		bridge:   NewCaptureBridge(platform),
		movement: NewMovement(cfg.Speed, cfg.EyeHeight),
		detector: NewDetector(cfg.MaxDistance),
		mode:     UIIdle,
		logger:   slog.New(slog.DiscardHandler),
	}
	m.movement.RetainKeys = cfg.RetainKeysOnDisable
	for _, opt := range opts {
		opt(m)
	}
	if m.keys == nil {
		m.keys = NewDispatcher()
	}
	m.assignment = cat.Reconcile(m.assignment)
	m.bridge.SetListener(m)
	return m
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Bridge returns the capture bridge; platforms report lock changes to it.
func (m *Machine) Bridge() *CaptureBridge {
	return m.bridge
}

// Dispatcher returns the key dispatcher.
func (m *Machine) Dispatcher() *Dispatcher {
	return m.keys
}

// Movement returns the movement controller.
func (m *Machine) Movement() *Movement {
	return m.movement
}

// Target returns the surface under the aiming ray.
func (m *Machine) Target() (surface.Hit, bool) {
	return m.target, m.hasTarget
}

// Assignment returns a copy of the current materials.
func (m *Machine) Assignment() catalog.Assignment {
	return m.assignment.Clone()
}

// Catalog returns the catalog in use.
func (m *Machine) Catalog() *catalog.Catalog {
	return m.cat
}

func (m *Machine) setMode(to Mode) {
	from := m.mode
	if from == to {
		return
	}
	m.mode = to
	m.logger.Debug("mode changed", "from", from, "to", to)

	if to == Moving {
		m.movement.Enable(m.keys)
		m.detector.Enable()
	} else {
		m.movement.Disable()
		m.detector.Disable()
		m.setTarget(surface.Hit{}, false)
	}
	if to == CapturePending {
		m.pendingFor = 0
	}

	if m.hooks.ModeChanged != nil {
		m.hooks.ModeChanged(from, to)
	}
}

func (m *Machine) setTarget(hit surface.Hit, ok bool) {
	changed := ok != m.hasTarget || (ok && (hit.Primitive != m.target.Primitive || hit.Class != m.target.Class))
	m.target, m.hasTarget = hit, ok
	if !ok {
		m.target = surface.Hit{}
	}
	if changed && m.hooks.SurfaceTargeted != nil {
		m.hooks.SurfaceTargeted(m.target, ok)
	}
}

// RequestCapture handles a capture gesture. In UIIdle it starts a request;
// while one is pending it asks the platform again and restarts the timeout,
// since a refused request is never answered.
func (m *Machine) RequestCapture() {
	switch m.mode {
	case UIIdle:
		m.setMode(CapturePending)
	case CapturePending:
		m.logger.Debug("capture still pending, asking again")
		m.pendingFor = 0
	default:
		return
	}
	m.bridge.RequestCapture()
}

// CaptureAcquired implements CaptureListener. Confirmation also arrives
// without a request when the platform grants capture on its own.
func (m *Machine) CaptureAcquired() {
	switch m.mode {
	case UIIdle, CapturePending:
		m.setMode(Moving)
	case PickerOpen:
		// The overlay needs the cursor; hand stray capture back.
		m.logger.Debug("capture acquired while picker open, releasing")
		m.bridge.ReleaseCapture()
	}
}

// CaptureReleased implements CaptureListener. The picker absorbs it: the
// machine released capture itself when opening the overlay.
func (m *Machine) CaptureReleased() {
	if m.mode == Moving {
		m.setMode(UIIdle)
	}
}

// HandleKey routes a mapped key. Direction keys go to the dispatcher; the
// picker keys drive the machine on press.
func (m *Machine) HandleKey(ev KeyEvent) {
	switch ev.Action {
	case ActionOpenPicker:
		if ev.Down {
			m.OpenPicker()
		}
		return
	case ActionClosePicker:
		if ev.Down {
			m.ClosePicker()
		}
		return
	}
	m.keys.Dispatch(ev)
}

// OpenPicker opens the overlay for the targeted surface. It needs Moving
// and a target whose class has a curated material list, and reports
// whether it opened.
func (m *Machine) OpenPicker() bool {
	if m.mode != Moving || !m.hasTarget {
		return false
	}
	class := m.target.Class
	if !m.cat.Editable(class) {
		m.logger.Debug("open picker ignored", "class", class)
		return false
	}

	m.setMode(PickerOpen)
	m.picker.open(class, m.cat.ForClass(class), m.assignment[class])
	// Mode first: the release this triggers is absorbed by PickerOpen.
	m.bridge.ReleaseCapture()

	m.logger.Info("picker opened", "class", class, "current", m.assignment[class])
	if m.hooks.PickerOpened != nil {
		m.hooks.PickerOpened(class)
	}
	return true
}

// ClosePicker is the Done action. It reports whether the picker was open.
func (m *Machine) ClosePicker() bool {
	if m.mode != PickerOpen {
		return false
	}
	class := m.picker.Class()
	m.picker.close()
	m.setMode(UIIdle)

	m.logger.Info("picker closed", "class", class, "material", m.assignment[class])
	if m.hooks.PickerClosed != nil {
		m.hooks.PickerClosed(class)
	}
	return true
}

// Select assigns material id to the picker's class. The overlay stays
// open so several materials can be compared.
func (m *Machine) Select(id string) error {
	if m.mode != PickerOpen {
		return ErrPickerClosed
	}
	class := m.picker.Class()
	if err := m.cat.Validate(class, id); err != nil {
		return err
	}
	if i := m.picker.index(id); i >= 0 {
		m.picker.cursor = i
	}
	if m.assignment[class] == id {
		return nil
	}
	m.assignment[class] = id

	m.logger.Info("material assigned", "class", class, "material", id)
	if m.hooks.MaterialAssigned != nil {
		m.hooks.MaterialAssigned(class, id)
	}
	return nil
}

// SelectIndex selects the i-th entry of the picker.
func (m *Machine) SelectIndex(i int) error {
	if m.mode != PickerOpen {
		return ErrPickerClosed
	}
	entries := m.picker.entries
	if i < 0 || i >= len(entries) {
		return fmt.Errorf("picker entry %d: %w", i+1, catalog.ErrUnknownMaterial)
	}
	return m.Select(entries[i].ID)
}

// SelectHighlighted selects the highlighted entry.
func (m *Machine) SelectHighlighted() error {
	if m.mode != PickerOpen {
		return ErrPickerClosed
	}
	return m.SelectIndex(m.picker.Cursor())
}

// MoveHighlight moves the picker highlight by delta rows.
func (m *Machine) MoveHighlight(delta int) {
	if m.mode == PickerOpen {
		m.picker.Move(delta)
	}
}

// Tick advances one frame: the capture timeout, then movement, then
// targeting. Input and capture events for this frame must already have
// been applied.
func (m *Machine) Tick(dt time.Duration) {
	if m.mode == CapturePending && m.cfg.CaptureTimeout > 0 {
		m.pendingFor += dt
		if m.pendingFor >= m.cfg.CaptureTimeout {
			m.logger.Warn("capture request timed out", "after", m.pendingFor)
			m.bridge.ReleaseCapture()
			m.setMode(UIIdle)
		}
	}

	m.movement.Step(m.cam, dt.Seconds())

	hit, ok := m.detector.Detect(m.cam.CenterRay(), m.scn.Primitives)
	m.setTarget(hit, ok)
}

// Pick returns the clickable surface under the cursor, given in NDC. It
// reports nothing while the picker is open.
func (m *Machine) Pick(ndcX, ndcY float64) (surface.Hit, bool) {
	if m.mode == PickerOpen {
		return surface.Hit{}, false
	}
	return PickClickable(m.cam, ndcX, ndcY, m.bridge.Captured(), m.scn.Primitives)
}

// SetConfig applies new tunables from the next tick.
func (m *Machine) SetConfig(cfg Config) {
	m.cfg = cfg
	m.movement.Speed = cfg.Speed
	m.movement.EyeHeight = cfg.EyeHeight
	m.movement.RetainKeys = cfg.RetainKeysOnDisable
	m.detector.MaxDistance = cfg.MaxDistance
}

// SetCatalog swaps the catalog. Assigned materials the new catalog still
// offers are kept, the rest reset to class defaults. An open picker is
// refreshed, or closed when its class is no longer editable.
func (m *Machine) SetCatalog(cat *catalog.Catalog) {
	old := m.assignment
	m.cat = cat
	m.assignment = cat.Reconcile(old)

	for _, class := range cat.EditableClasses() {
		if id := m.assignment[class]; id != old[class] && m.hooks.MaterialAssigned != nil {
			m.hooks.MaterialAssigned(class, id)
		}
	}

	if m.mode != PickerOpen {
		return
	}
	class := m.picker.Class()
	if !cat.Editable(class) {
		m.ClosePicker()
		return
	}
	m.picker.open(class, cat.ForClass(class), m.assignment[class])
}

// Close releases capture and every subscription.
func (m *Machine) Close() {
	m.movement.Disable()
	m.detector.Disable()
	m.bridge.ReleaseCapture()
}
