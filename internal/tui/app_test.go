package tui

import (
	"bytes"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/roomwalk/internal/config"
	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/surface"
)

type fakeDisplay struct {
	uv.ScreenBuffer
	displays int
}

func (d *fakeDisplay) Display() error {
	d.displays++
	return nil
}

type harness struct {
	app  *App
	out  *bytes.Buffer
	scr  *fakeDisplay
	now  time.Time
	step time.Duration
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{
		out:  &bytes.Buffer{},
		scr:  &fakeDisplay{ScreenBuffer: uv.NewScreenBuffer(80, 24)},
		now:  time.Unix(1000, 0),
		step: 100 * time.Millisecond,
	}
	app, err := newApp(cfg, discard(), h.scr, h.out, 80, 24)
	require.NoError(t, err)
	h.app = app
	return h
}

func (h *harness) frame(t *testing.T) {
	t.Helper()
	h.now = h.now.Add(h.step)
	require.NoError(t, h.app.frame(h.step, h.now))
}

func (h *harness) send(ev uv.Event) {
	h.app.handle(ev, h.now)
}

func (h *harness) press(k uv.Key) {
	h.send(uv.KeyPressEvent(k))
}

func (h *harness) mode() interact.Mode {
	return h.app.machine.Mode()
}

// enterMoving clicks the view and waits for the capture confirmation.
func (h *harness) enterMoving(t *testing.T) {
	t.Helper()
	h.send(uv.MouseClickEvent{X: 40, Y: 12, Button: uv.MouseLeft})
	require.Equal(t, interact.CapturePending, h.mode())
	h.frame(t)
	require.Equal(t, interact.Moving, h.mode())
}

func TestAppCaptureOnClick(t *testing.T) {
	h := newHarness(t, config.Default())
	assert.Equal(t, interact.UIIdle, h.mode())

	h.send(uv.MouseClickEvent{X: 40, Y: 12, Button: uv.MouseRight})
	assert.Equal(t, interact.UIIdle, h.mode(), "only the left button captures")

	h.enterMoving(t)
	assert.Contains(t, h.out.String(), mouseMotionOn)
	assert.True(t, h.app.machine.Bridge().Captured())
	assert.Equal(t, 1, h.scr.displays)
}

func TestAppCaptureOnEnter(t *testing.T) {
	h := newHarness(t, config.Default())
	h.press(uv.Key{Code: uv.KeyEnter})
	assert.Equal(t, interact.CapturePending, h.mode())
}

// brokenWriter fails every write until fixed.
type brokenWriter struct {
	bytes.Buffer
	broken bool
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.broken {
		return failingWriter{}.Write(p)
	}
	return w.Buffer.Write(p)
}

func TestAppRetryAfterFailedCapture(t *testing.T) {
	h := newHarness(t, config.Default())
	w := &brokenWriter{broken: true}
	h.app.capture.w = w

	h.send(uv.MouseClickEvent{X: 40, Y: 12, Button: uv.MouseLeft})
	h.frame(t)
	assert.Equal(t, interact.CapturePending, h.mode(), "failed write is never confirmed")

	w.broken = false
	h.send(uv.MouseClickEvent{X: 40, Y: 12, Button: uv.MouseLeft})
	h.frame(t)
	assert.Equal(t, interact.Moving, h.mode())
	assert.Contains(t, w.String(), mouseMotionOn)
}

func TestAppEscapeReleases(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)

	h.out.Reset()
	h.press(uv.Key{Code: uv.KeyEscape})
	assert.Equal(t, interact.UIIdle, h.mode())
	assert.Contains(t, h.out.String(), mouseMotionOff)
	assert.False(t, h.app.machine.Bridge().Captured())
}

func TestAppBlurRevokesCapture(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)

	h.send(uv.BlurEvent{})
	assert.Equal(t, interact.UIIdle, h.mode())

	h.frame(t)
	assert.Equal(t, interact.UIIdle, h.mode(), "a revoked capture is not confirmed again")
}

func TestAppMovementHeldKey(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)
	start := h.app.cam.Position

	h.press(uv.Key{Code: 'w', Text: "w"})
	h.frame(t)
	moved := h.app.cam.Position
	assert.InDelta(t, start.Z-0.5, moved.Z, 1e-9, "forward is -Z at 5 m/s")
	assert.InDelta(t, start.X, moved.X, 1e-9)
	assert.InDelta(t, interact.DefaultEyeHeight, moved.Y, 1e-9)

	h.send(uv.KeyReleaseEvent{Code: 'w', Text: "w"})
	h.frame(t)
	assert.Equal(t, moved, h.app.cam.Position)
}

func TestAppMovementKeyTimeout(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)

	h.press(uv.Key{Code: 's', Text: "s"})
	h.frame(t)
	moved := h.app.cam.Position

	h.step = time.Second
	h.frame(t)
	assert.Equal(t, moved, h.app.cam.Position, "an unrepeated key is released after the hold timeout")
}

func TestAppMovementIgnoredWhenIdle(t *testing.T) {
	h := newHarness(t, config.Default())
	start := h.app.cam.Position

	h.press(uv.Key{Code: 'w', Text: "w"})
	h.frame(t)
	assert.Equal(t, start, h.app.cam.Position)
}

func TestAppPickerFlow(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)
	h.frame(t)

	hit, ok := h.app.machine.Target()
	require.True(t, ok)
	require.Equal(t, "wall-south", hit.Primitive)

	h.out.Reset()
	h.press(uv.Key{Code: 'e', Text: "e"})
	require.Equal(t, interact.PickerOpen, h.mode())
	assert.Contains(t, h.out.String(), mouseMotionOff, "the overlay needs the cursor")

	h.frame(t)
	require.Len(t, h.app.layout.rows, 3)

	h.press(uv.Key{Code: '2', Text: "2"})
	assert.Equal(t, "bluePaint", h.app.machine.Assignment()[surface.Wall])
	assert.True(t, h.app.dirty)
	h.frame(t)
	assert.False(t, h.app.dirty)

	h.press(uv.Key{Code: uv.KeyDown})
	h.press(uv.Key{Code: uv.KeyEnter})
	assert.Equal(t, "brick", h.app.machine.Assignment()[surface.Wall])

	row := h.app.layout.rows[0]
	h.send(uv.MouseClickEvent{X: row.Min.X + 4, Y: row.Min.Y, Button: uv.MouseLeft})
	assert.Equal(t, "whitePaint", h.app.machine.Assignment()[surface.Wall])
	assert.Equal(t, interact.PickerOpen, h.mode(), "selecting keeps the overlay open")

	done := h.app.layout.done
	h.send(uv.MouseClickEvent{X: done.Min.X, Y: done.Min.Y, Button: uv.MouseLeft})
	assert.Equal(t, interact.UIIdle, h.mode())
}

func TestAppPickerEscape(t *testing.T) {
	h := newHarness(t, config.Default())
	h.enterMoving(t)
	h.frame(t)
	h.press(uv.Key{Code: 'e', Text: "e"})
	require.Equal(t, interact.PickerOpen, h.mode())

	h.press(uv.Key{Code: '9', Text: "9"})
	assert.Equal(t, "whitePaint", h.app.machine.Assignment()[surface.Wall], "out of range entry")

	h.press(uv.Key{Code: uv.KeyEscape})
	assert.Equal(t, interact.UIIdle, h.mode())
}

func TestAppQuit(t *testing.T) {
	for _, k := range []uv.Key{{Code: 'q', Text: "q"}, {Code: 'c', Mod: uv.ModCtrl}} {
		h := newHarness(t, config.Default())
		h.press(k)
		assert.True(t, h.app.quit)
	}
}

func TestAppReload(t *testing.T) {
	h := newHarness(t, config.Default())

	next := config.Default()
	next.Materials.Classes[1] = catalog.ClassEntry{Class: surface.Wall, Materials: []string{"brick"}, Default: "brick"}
	next.Keys["forward"] = []string{"i"}
	next.Render.Background = "#000000"
	h.app.dirty = false

	h.app.reload(next)
	assert.Equal(t, "brick", h.app.machine.Assignment()[surface.Wall])
	assert.True(t, h.app.dirty)
	assert.Equal(t, interact.ActionForward, h.app.keymap.Action(uv.KeyPressEvent{Code: 'i', Text: "i"}))
	assert.Equal(t, uint8(0), h.app.view.Background.R)
}

func TestAppReloadRejected(t *testing.T) {
	h := newHarness(t, config.Default())
	before := h.app.cfg

	next := config.Default()
	next.Keys["back"] = []string{"w"}
	h.app.reload(next)
	assert.Same(t, before, h.app.cfg)
	assert.Equal(t, interact.ActionForward, h.app.keymap.Action(uv.KeyPressEvent{Code: 'w', Text: "w"}))
}

func TestAppResize(t *testing.T) {
	h := newHarness(t, config.Default())
	h.scr.ScreenBuffer = uv.NewScreenBuffer(40, 10)
	h.app.resize(h.scr, 40, 10)

	assert.Equal(t, 40, h.app.view.Framebuffer.Width)
	assert.Equal(t, 20, h.app.view.Framebuffer.Height)
	h.frame(t)
}

func TestFPSCounter(t *testing.T) {
	var f fpsCounter
	t0 := time.Unix(0, 0)
	for i := range 30 {
		f.tick(t0.Add(time.Duration(i) * time.Second / 30))
	}
	assert.Zero(t, f.fps, "first window still open")
	assert.InDelta(t, 30, f.tick(t0.Add(time.Second)), 2)
}
