// Package gl is the windowed frontend. Pointer capture is raylib's cursor
// disable; the room is drawn as lit triangles in immediate mode.
package gl

import (
	"context"
	"image/color"
	"log/slog"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/taigrr/roomwalk/internal/config"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/models"
	"github.com/taigrr/roomwalk/pkg/render"
	"github.com/taigrr/roomwalk/pkg/scene"
	"github.com/taigrr/roomwalk/pkg/surface"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	// pixelsPerCell converts mouse pixels to the look sensitivity unit,
	// which is tuned for terminal cells.
	pixelsPerCell = 8
)

// triangle is one face with its lighting baked in.
type triangle struct {
	a, b, c rl.Vector3
	col     color.RGBA
}

// App holds the window walkthrough state.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	cam     *render.Camera
	look    *render.Look
	machine *interact.Machine
	cursor  *cursor
	keys    []binding

	scn        *scene.Scene
	tris       []triangle
	lightDir   math3d.Vec3
	background color.RGBA
	layout     pickerLayout

	dirty bool
	quit  bool
}

func newApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		logger:     logger,
		cursor:     &cursor{},
		scn:        scene.NewRoom(cfg.Room),
		lightDir:   math3d.V3(0.4, 1, 0.25).Normalize(),
		background: cfg.Background(),
		dirty:      true,
	}
	a.setKeys(km)

	a.cam = render.NewCamera()
	a.cam.SetFOV(cfg.FOV())
	pos, pitch, yaw := cfg.StartPose()
	a.cam.SetPosition(pos)
	a.cam.SetRotation(pitch, yaw)
	a.look = render.NewLook(cfg.Render.FPS, cfg.Look.Frequency, cfg.Look.Damping, cfg.Look.Sensitivity)

	a.machine = interact.NewMachine(cfg.Interact(), cat, a.scn, a.cam, a.cursor,
		interact.WithLogger(logger.With("component", "machine")),
		interact.WithHooks(interact.Hooks{
			ModeChanged: func(from, to interact.Mode) {
				logger.Info("mode changed", "from", from, "to", to)
				if to != interact.Moving {
					a.look.Stop()
				}
			},
			MaterialAssigned: func(class surface.Class, id string) {
				logger.Info("material assigned", "class", class, "material", id)
				a.dirty = true
			},
		}),
	)
	return a, nil
}

func (a *App) setKeys(km map[string]interact.Action) {
	keys, errs := bindings(km)
	for _, err := range errs {
		a.logger.Warn("key binding skipped", "err", err)
	}
	a.keys = keys
}

// rebuild bakes the current materials into triangles.
func (a *App) rebuild() {
	a.tris = a.tris[:0]
	for _, m := range models.FromScene(a.scn, a.machine.Catalog(), a.machine.Assignment()) {
		base := render.ColorWhite
		if mat := m.PrimaryMaterial(); mat != nil {
			base = mat.RGBA()
		}
		for i := range m.TriangleCount() {
			f := m.GetFace(i)
			p0, n := m.GetVertex(f[0])
			p1, _ := m.GetVertex(f[1])
			p2, _ := m.GetVertex(f[2])
			a.tris = append(a.tris, triangle{
				a:   vec(p0),
				b:   vec(p1),
				c:   vec(p2),
				col: render.Shade(base, n, a.lightDir),
			})
		}
	}
}

func vec(v math3d.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func camera3D(c *render.Camera) rl.Camera3D {
	eye, fwd := c.Pose()
	return rl.Camera3D{
		Position:   vec(eye),
		Target:     vec(eye.Add(fwd)),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(c.FOV * 180 / math.Pi),
		Projection: rl.CameraPerspective,
	}
}

func (a *App) logPick() {
	p := rl.GetMousePosition()
	nx, ny := render.ScreenToNDC(float64(p.X), float64(p.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	if hit, ok := a.machine.Pick(nx, ny); ok {
		a.logger.Debug("surface clicked", "class", hit.Class, "primitive", hit.Primitive, "point", hit.Point)
	}
}

func (a *App) input() {
	for _, b := range a.keys {
		if b.action == interact.ActionQuit && b.pressed() {
			a.quit = true
			return
		}
	}

	switch a.machine.Mode() {
	case interact.UIIdle, interact.CapturePending:
		switch {
		case rl.IsMouseButtonPressed(rl.MouseLeftButton):
			a.logPick()
			a.machine.RequestCapture()
		case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeySpace):
			a.machine.RequestCapture()
		}

	case interact.Moving:
		if rl.IsKeyPressed(rl.KeyEscape) {
			a.machine.Bridge().ReleaseCapture()
			return
		}
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.look.Nudge(float64(d.X)/pixelsPerCell, float64(d.Y)/pixelsPerCell)
		}
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			a.logPick()
		}
		for _, b := range a.keys {
			switch {
			case b.action.Movement():
				if b.pressed() {
					a.machine.HandleKey(interact.KeyEvent{Action: b.action, Down: true})
				} else if b.released() {
					a.machine.HandleKey(interact.KeyEvent{Action: b.action})
				}
			case b.action.Look():
				// Held look keys are read in steer.
			case b.pressed():
				a.machine.HandleKey(interact.KeyEvent{Action: b.action, Down: true})
			}
		}

	case interact.PickerOpen:
		a.pickerInput()
	}
}

func (a *App) pickerInput() {
	var err error
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		a.machine.MoveHighlight(-1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.machine.MoveHighlight(1)
	case rl.IsKeyPressed(rl.KeyEnter), rl.IsKeyPressed(rl.KeySpace):
		err = a.machine.SelectHighlighted()
	case rl.IsKeyPressed(rl.KeyEscape):
		a.machine.ClosePicker()
		return
	}
	for i := range 9 {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			err = a.machine.SelectIndex(i)
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		switch i, done := a.layout.hit(rl.GetMousePosition()); {
		case i >= 0:
			err = a.machine.SelectIndex(i)
		case done:
			a.machine.ClosePicker()
		}
	}
	if err != nil {
		a.logger.Debug("picker input ignored", "err", err)
	}
}

// steer turns held look keys into view motion.
func (a *App) steer(dt time.Duration) {
	rate := a.cfg.Look.KeyRate * dt.Seconds() / a.look.Sensitivity
	var dx, dy float64
	for _, b := range a.keys {
		if !b.action.Look() || !b.down() {
			continue
		}
		switch b.action {
		case interact.ActionLookLeft:
			dx -= rate
		case interact.ActionLookRight:
			dx += rate
		case interact.ActionLookUp:
			dy -= rate
		case interact.ActionLookDown:
			dy += rate
		}
	}
	if dx != 0 || dy != 0 {
		a.look.Nudge(dx, dy)
	}
}

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
	a.setKeys(km)
	a.look = render.NewLook(cfg.Render.FPS, cfg.Look.Frequency, cfg.Look.Damping, cfg.Look.Sensitivity)
	a.cam.SetFOV(cfg.FOV())
	a.background = cfg.Background()
	a.machine.SetConfig(cfg.Interact())
	a.machine.SetCatalog(cat)
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	a.dirty = true
	a.logger.Info("config reloaded")
}

func (a *App) frame(dt time.Duration) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	a.cam.SetAspectRatio(float64(w) / float64(max(h, 1)))

	if a.cursor.active && !rl.IsWindowFocused() {
		a.cursor.revoke()
		a.logger.Info("focus lost, capture revoked")
		a.machine.Bridge().NotifyUnlocked()
	}

	a.input()
	if a.machine.Mode() == interact.Moving {
		a.steer(dt)
		a.look.Apply(a.cam)
	}
	a.machine.Tick(dt)

	if a.dirty {
		a.rebuild()
		a.dirty = false
	}

	ctx := a.machine.Context()

	rl.BeginDrawing()
	rl.ClearBackground(a.background)

	rl.BeginMode3D(camera3D(a.cam))
	for _, t := range a.tris {
		rl.DrawTriangle3D(t.a, t.b, t.c, t.col)
	}
	if ctx.ShowTooltip && a.cfg.Render.Outline {
		if p, ok := a.scn.Find(ctx.Target.Primitive); ok {
			size := p.Bounds.Size().Scale(1.01)
			rl.DrawCubeWiresV(vec(p.Bounds.Center()), vec(size), tooltipColor)
		}
	}
	rl.EndMode3D()

	if ctx.Mode == interact.Moving {
		drawCrosshair()
	}
	drawHUD(ctx, float64(rl.GetFPS()))
	if ctx.PickerOpen() {
		a.layout = drawPicker(ctx)
	}
	rl.EndDrawing()

	if a.cursor.confirm() {
		a.machine.Bridge().NotifyLocked()
	}
}

// Run opens the window and runs until it is closed, the user quits or ctx
// is done. Configs received on reloads are applied between frames.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, reloads <-chan *config.Config) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "roomwalk")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Render.FPS))
	// Escape releases capture instead of closing the window.
	rl.SetExitKey(0)

	app, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer app.machine.Close()

	logger.Info("window opened", "width", windowWidth, "height", windowHeight)
	for !rl.WindowShouldClose() && !app.quit {
		select {
		case <-ctx.Done():
			return nil
		case next := <-reloads:
			app.reload(next)
		default:
		}

		dt := min(time.Duration(float64(rl.GetFrameTime())*float64(time.Second)), 100*time.Millisecond)
		app.frame(dt)
	}
	logger.Info("window closed")
	return nil
}
