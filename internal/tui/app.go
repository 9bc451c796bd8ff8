// Package tui is the terminal frontend. The room is rasterized into a
// half-block framebuffer, and "pointer capture" means the terminal reports
// every mouse motion so it can steer the view.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/roomwalk/internal/config"
	"github.com/taigrr/roomwalk/internal/roomview"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/render"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// App holds the terminal walkthrough state. Every field is owned by the
// frame loop.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	renderer *render.TerminalRenderer
	view     *roomview.View
	cam      *render.Camera
	look     *render.Look
	machine  *interact.Machine

	capture *mouseCapture
	pointer pointer
	hold    *holdTracker
	keymap  Keymap
	layout  pickerLayout

	fps   fpsCounter
	dirty bool
	quit  bool
}

// newApp wires the walkthrough to a screen of width x height cells. w
// receives terminal mode sequences.
func newApp(cfg *config.Config, logger *slog.Logger, scr render.Display, w io.Writer, width, height int) (*App, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		logger:  logger,
		capture: newMouseCapture(w, logger.With("component", "capture")),
		hold:    newHoldTracker(cfg.Capture.HoldTimeout),
		keymap:  NewKeymap(km),
		dirty:   true,
	}

	a.cam = render.NewCamera()
	a.cam.SetFOV(cfg.FOV())
	pos, pitch, yaw := cfg.StartPose()
	a.cam.SetPosition(pos)
	a.cam.SetRotation(pitch, yaw)
	a.look = newLook(cfg)

	scn := scene.NewRoom(cfg.Room)
	a.renderer = render.NewTerminalRenderer(scr, width, height)
	fbw, fbh := a.renderer.FramebufferSize()
	a.view = roomview.New(a.cam, scn, fbw, fbh)
	a.view.Background = cfg.Background()
	a.view.Outline = cfg.Render.Outline

	a.machine = interact.NewMachine(cfg.Interact(), cat, scn, a.cam, a.capture,
		interact.WithLogger(logger.With("component", "machine")),
		interact.WithHooks(interact.Hooks{
			ModeChanged:      a.modeChanged,
			MaterialAssigned: a.materialAssigned,
			SurfaceTargeted: func(hit surface.Hit, ok bool) {
				if ok {
					a.logger.Debug("surface targeted", "class", hit.Class, "primitive", hit.Primitive, "distance", hit.Distance)
				}
			},
			PickerOpened: func(c surface.Class) { a.logger.Info("picker opened", "class", c) },
			PickerClosed: func(c surface.Class) { a.logger.Info("picker closed", "class", c) },
		}),
	)
	return a, nil
}

func newLook(cfg *config.Config) *render.Look {
	return render.NewLook(cfg.Render.FPS, cfg.Look.Frequency, cfg.Look.Damping, cfg.Look.Sensitivity)
}

func (a *App) modeChanged(from, to interact.Mode) {
	a.logger.Info("mode changed", "from", from, "to", to)
	a.pointer.reset()
	if to == interact.Moving {
		return
	}
	a.look.Stop()
	if !a.cfg.Movement.RetainKeysOnDisable {
		a.hold.reset()
	}
}

func (a *App) materialAssigned(class surface.Class, id string) {
	a.logger.Info("material assigned", "class", class, "material", id)
	a.dirty = true
}

// handle applies one input event.
func (a *App) handle(ev uv.Event, now time.Time) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		a.keyPress(ev, now)

	case uv.KeyReleaseEvent:
		action := a.keymap.Action(ev)
		if a.hold.release(action) && action.Movement() {
			a.machine.HandleKey(interact.KeyEvent{Action: action})
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			a.click(ev.X, ev.Y)
		}

	case uv.MouseMotionEvent:
		if a.machine.Mode() != interact.Moving {
			return
		}
		// Cells are twice as tall as they are wide.
		if dx, dy, ok := a.pointer.move(ev.X, ev.Y); ok {
			a.look.Nudge(float64(dx), float64(dy)*2)
		}

	case uv.BlurEvent:
		if a.capture.revoke() {
			a.logger.Info("focus lost, capture revoked")
			a.machine.Bridge().NotifyUnlocked()
		}
	}
}

func (a *App) keyPress(ev uv.KeyPressEvent, now time.Time) {
	action := a.keymap.Action(ev)
	if action == interact.ActionQuit {
		a.quit = true
		return
	}

	switch a.machine.Mode() {
	case interact.PickerOpen:
		a.pickerKey(ev, action)
		return
	case interact.Moving:
		if ev.MatchString("esc") || action == interact.ActionClosePicker {
			a.machine.Bridge().ReleaseCapture()
			return
		}
	case interact.UIIdle, interact.CapturePending:
		if ev.MatchString("enter", "space") {
			a.machine.RequestCapture()
			return
		}
	}

	switch {
	case action.Movement() || action.Look():
		if a.machine.Mode() != interact.Moving {
			return
		}
		if a.hold.press(action, now) && action.Movement() {
			a.machine.HandleKey(interact.KeyEvent{Action: action, Down: true})
		}
	case action != interact.ActionNone && !ev.IsRepeat:
		a.machine.HandleKey(interact.KeyEvent{Action: action, Down: true})
	}
}

func (a *App) pickerKey(ev uv.KeyPressEvent, action interact.Action) {
	var err error
	switch {
	case ev.MatchString("up", "k"):
		a.machine.MoveHighlight(-1)
	case ev.MatchString("down", "j"):
		a.machine.MoveHighlight(1)
	case ev.MatchString("enter", "space"):
		err = a.machine.SelectHighlighted()
	case ev.MatchString("esc", "d") || action == interact.ActionClosePicker:
		a.machine.ClosePicker()
	default:
		if t := ev.Key().Text; len(t) == 1 && t[0] >= '1' && t[0] <= '9' {
			err = a.machine.SelectIndex(int(t[0] - '1'))
		}
	}
	if err != nil {
		a.logger.Debug("picker key ignored", "key", ev.String(), "err", err)
	}
}

func (a *App) click(x, y int) {
	switch a.machine.Mode() {
	case interact.PickerOpen:
		i, done := a.layout.hit(x, y)
		switch {
		case i >= 0:
			if err := a.machine.SelectIndex(i); err != nil {
				a.logger.Debug("picker click ignored", "row", i, "err", err)
			}
		case done:
			a.machine.ClosePicker()
		}

	case interact.UIIdle, interact.CapturePending:
		a.logPick(x, y)
		a.machine.RequestCapture()

	case interact.Moving:
		a.logPick(x, y)
	}
}

// logPick reports the clickable surface under a click cell.
func (a *App) logPick(x, y int) {
	fbw, fbh := a.renderer.FramebufferSize()
	nx, ny := render.ScreenToNDC(float64(x)+0.5, float64(y*2+1), fbw, fbh)
	if hit, ok := a.machine.Pick(nx, ny); ok {
		a.logger.Debug("surface clicked", "class", hit.Class, "primitive", hit.Primitive, "point", hit.Point)
	}
}

// steer turns held look keys into view motion.
func (a *App) steer(dt time.Duration) {
	rate := a.cfg.Look.KeyRate * dt.Seconds() / a.look.Sensitivity
	var dx, dy float64
	if a.hold.down(interact.ActionLookLeft) {
		dx -= rate
	}
	if a.hold.down(interact.ActionLookRight) {
		dx += rate
	}
	if a.hold.down(interact.ActionLookUp) {
		dy -= rate
	}
	if a.hold.down(interact.ActionLookDown) {
		dy += rate
	}
	if dx != 0 || dy != 0 {
		a.look.Nudge(dx, dy)
	}
}

// reload applies a changed config between frames. Room geometry is fixed
// for the session.
func (a *App) reload(cfg *config.Config) {
	cat, err := cfg.Catalog()
	if err != nil {
		a.logger.Warn("reload rejected", "err", err)
		return
	}
	km, err := cfg.Keymap()
	if err != nil {
		a.logger.Warn("reload rejected", "err", err)
		return
	}
	if cfg.Room != a.cfg.Room {
		a.logger.Warn("room changes apply on restart")
	}

	a.cfg = cfg
	a.keymap = NewKeymap(km)
	a.hold.timeout = cfg.Capture.HoldTimeout
	a.look = newLook(cfg)
	a.cam.SetFOV(cfg.FOV())
	a.view.Background = cfg.Background()
	a.view.Outline = cfg.Render.Outline
	a.machine.SetConfig(cfg.Interact())
	a.machine.SetCatalog(cat)
	a.dirty = true
	a.logger.Info("config reloaded")
}

// resize follows a terminal size change.
func (a *App) resize(scr render.Display, width, height int) {
	a.renderer = render.NewTerminalRenderer(scr, width, height)
	fbw, fbh := a.renderer.FramebufferSize()
	a.view.Resize(fbw, fbh)
}

// frame advances the walkthrough by dt and draws it.
func (a *App) frame(dt time.Duration, now time.Time) error {
	if a.machine.Mode() == interact.Moving {
		for _, action := range a.hold.expire(now) {
			if action.Movement() {
				a.machine.HandleKey(interact.KeyEvent{Action: action})
			}
		}
		a.steer(dt)
		a.look.Apply(a.cam)
	}

	a.machine.Tick(dt)

	if a.dirty {
		a.view.Rebuild(a.machine.Catalog(), a.machine.Assignment())
		a.dirty = false
	}

	ctx := a.machine.Context()
	a.view.Draw(ctx)
	a.renderer.Render(a.view.Framebuffer)

	scr := a.renderer.Screen()
	drawHUD(scr, ctx, a.fps.tick(now))
	if ctx.PickerOpen() {
		a.layout = drawPicker(scr, ctx)
	}

	if err := a.renderer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	// Mode switches written this frame are on screen now.
	if a.capture.confirm() {
		a.machine.Bridge().NotifyLocked()
	}
	return nil
}

// fpsCounter measures frames per second over one second windows.
type fpsCounter struct {
	fps    float64
	frames int
	start  time.Time
}

func (f *fpsCounter) tick(now time.Time) float64 {
	if f.start.IsZero() {
		f.start = now
	}
	f.frames++
	if elapsed := now.Sub(f.start); elapsed >= time.Second {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.start = now
	}
	return f.fps
}

// Run takes over the terminal until ctx is done or the user quits. Configs
// received on reloads are applied between frames.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, reloads <-chan *config.Config) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	app, err := newApp(cfg, logger, term, term, width, height)
	if err != nil {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		return err
	}
	app.capture.setup()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cleanup := func() {
		app.machine.Close()
		app.capture.teardown()
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	logger.Info("walkthrough started", "width", width, "height", height)

	targetDuration := time.Second / time.Duration(cfg.Render.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()

	drain:
		for {
			select {
			case ev := <-events:
				if size, ok := ev.(uv.WindowSizeEvent); ok {
					term.Erase()
					term.Resize(size.Width, size.Height)
					app.resize(term, size.Width, size.Height)
					continue
				}
				app.handle(ev, now)
			default:
				break drain
			}
		}
		if app.quit {
			logger.Info("walkthrough finished")
			return nil
		}

		select {
		case next := <-reloads:
			app.reload(next)
			targetDuration = time.Second / time.Duration(next.Render.FPS)
		default:
		}

		dt := min(now.Sub(lastFrame), 100*time.Millisecond)
		lastFrame = now

		if err := app.frame(dt, now); err != nil {
			return err
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
