// Package config loads roomwalk settings from YAML. Every field has a
// default, so a file only needs the values it changes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/scene"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full settings file.
type Config struct {
	Movement  Movement            `yaml:"movement"`
	Targeting Targeting           `yaml:"targeting"`
	Capture   Capture             `yaml:"capture"`
	Look      Look                `yaml:"look"`
	Render    Render              `yaml:"render"`
	Room      scene.Dims          `yaml:"room"`
	Start     Start               `yaml:"start"`
	Keys      map[string][]string `yaml:"keys"`
	Materials catalog.Spec        `yaml:"materials"`
	Log       Log                 `yaml:"log"`
}

// Movement controls walking.
type Movement struct {
	Speed               float64 `yaml:"speed"`
	EyeHeight           float64 `yaml:"eye_height"`
	RetainKeysOnDisable bool    `yaml:"retain_keys_on_disable"`
}

// Targeting controls the aiming ray.
type Targeting struct {
	MaxDistance float64 `yaml:"max_distance"`
}

// Capture controls pointer capture.
type Capture struct {
	// Timeout abandons a capture request the platform never confirms.
	// Zero waits forever.
	Timeout time.Duration `yaml:"timeout"`
	// HoldTimeout releases a held key when the terminal does not report
	// key releases and no repeat arrives within this window.
	HoldTimeout time.Duration `yaml:"hold_timeout"`
}

// Look controls view smoothing.
type Look struct {
	Frequency   float64 `yaml:"frequency"`
	Damping     float64 `yaml:"damping"`
	Sensitivity float64 `yaml:"sensitivity"` // radians per mouse cell
	KeyRate     float64 `yaml:"key_rate"`    // radians per second for look keys
}

// Render controls drawing.
type Render struct {
	FPS        int     `yaml:"fps"`
	FOV        float64 `yaml:"fov"` // degrees
	Background string  `yaml:"background"`
	// Outline draws a box around the targeted surface.
	Outline bool `yaml:"outline"`
}

// Start is the initial camera pose.
type Start struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`   // degrees, 0 faces -Z
	Pitch    float64    `yaml:"pitch"` // degrees
}

// Log controls the log file.
type Log struct {
	// File is where records go. Empty disables logging, "-" is stderr.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the reference settings.
func Default() *Config {
	return &Config{
		Movement: Movement{
			Speed:     interact.DefaultSpeed,
			EyeHeight: interact.DefaultEyeHeight,
		},
		Targeting: Targeting{MaxDistance: interact.DefaultMaxDistance},
		Capture:   Capture{HoldTimeout: 600 * time.Millisecond},
		Look: Look{
			Frequency:   6.0,
			Damping:     1.0,
			Sensitivity: 0.02,
			KeyRate:     1.8,
		},
		Render: Render{
			FPS:        60,
			FOV:        75,
			Background: "#87CEEB",
			Outline:    true,
		},
		Room:      scene.DefaultDims(),
		Start:     Start{Position: [3]float64{0, interact.DefaultEyeHeight, -2}},
		Keys:      DefaultKeys(),
		Materials: catalog.DefaultSpec(),
		Log: Log{
			File:  "logs/roomwalk.log",
			Level: "info",
		},
	}
}

// DefaultKeys returns the reference key bindings, keyed by action name.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		"forward":      {"w"},
		"back":         {"s"},
		"left":         {"a"},
		"right":        {"d"},
		"open-picker":  {"e"},
		"close-picker": {"escape"},
		"quit":         {"ctrl+c", "q"},
		"look-left":    {"left"},
		"look-right":   {"right"},
		"look-up":      {"up"},
		"look-down":    {"down"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Key
// bindings merge per action; other lists replace the default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Movement.Speed <= 0 {
		bad("movement.speed must be positive, got %v", c.Movement.Speed)
	}
	if c.Movement.EyeHeight <= 0 || c.Movement.EyeHeight >= c.Room.Height {
		bad("movement.eye_height must be inside the room, got %v", c.Movement.EyeHeight)
	}
	if c.Targeting.MaxDistance <= 0 {
		bad("targeting.max_distance must be positive, got %v", c.Targeting.MaxDistance)
	}
	if c.Capture.Timeout < 0 {
		bad("capture.timeout must not be negative, got %v", c.Capture.Timeout)
	}
	if c.Capture.HoldTimeout <= 0 {
		bad("capture.hold_timeout must be positive, got %v", c.Capture.HoldTimeout)
	}
	if c.Look.Frequency <= 0 || c.Look.Damping < 0 || c.Look.Sensitivity <= 0 || c.Look.KeyRate < 0 {
		bad("look: frequency and sensitivity must be positive, damping and key_rate not negative")
	}
	if c.Render.FPS <= 0 || c.Render.FPS > 240 {
		bad("render.fps must be in 1..240, got %d", c.Render.FPS)
	}
	if c.Render.FOV < 20 || c.Render.FOV > 150 {
		bad("render.fov must be in 20..150 degrees, got %v", c.Render.FOV)
	}
	if _, err := colorful.Hex(c.Render.Background); err != nil {
		bad("render.background %q is not a #rrggbb colour", c.Render.Background)
	}
	errs = append(errs, c.validateRoom()...)
	if _, err := c.Keymap(); err != nil {
		errs = append(errs, err)
	}
	if _, err := catalog.FromSpec(c.Materials); err != nil {
		errs = append(errs, fmt.Errorf("%w: materials: %w", ErrInvalid, err))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		bad("log.level %q is not debug, info, warn or error", c.Log.Level)
	}

	return errors.Join(errs...)
}

func (c *Config) validateRoom() []error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	r := c.Room
	if r.Width <= 0 || r.Height <= 0 || r.Depth <= 0 || r.WallThickness <= 0 {
		bad("room width, height, depth and wall_thickness must be positive")
		return errs
	}
	if r.DoorWidth <= 0 || r.DoorWidth >= r.Width || r.DoorHeight <= 0 || r.DoorHeight >= r.Height {
		bad("room door must fit in the north wall")
	}
	if r.WindowWidth <= 0 || r.WindowWidth >= r.Depth || r.WindowSill < 0 || r.WindowSill+r.WindowHeight >= r.Height {
		bad("room window must fit in the east wall")
	}

	p := c.Start.Position
	if math.Abs(p[0]) >= r.Width/2 || math.Abs(p[2]) >= r.Depth/2 {
		bad("start.position %v is outside the room", p)
	}
	return errs
}

// Interact returns the interaction settings.
func (c *Config) Interact() interact.Config {
	return interact.Config{
		Speed:               c.Movement.Speed,
		EyeHeight:           c.Movement.EyeHeight,
		RetainKeysOnDisable: c.Movement.RetainKeysOnDisable,
		MaxDistance:         c.Targeting.MaxDistance,
		CaptureTimeout:      c.Capture.Timeout,
	}
}

// Catalog builds the material catalog.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	cat, err := catalog.FromSpec(c.Materials)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return cat, nil
}

// Keymap resolves the bindings into key name to action. A key bound to two
// actions is an error.
func (c *Config) Keymap() (map[string]interact.Action, error) {
	names := make([]string, 0, len(c.Keys))
	for name := range c.Keys {
		names = append(names, name)
	}
	slices.Sort(names)

	km := make(map[string]interact.Action)
	for _, name := range names {
		action, err := interact.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("%w: keys: %w", ErrInvalid, err)
		}
		for _, key := range c.Keys[name] {
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				continue
			}
			if prev, ok := km[key]; ok && prev != action {
				return nil, fmt.Errorf("%w: keys: %q is bound to both %s and %s", ErrInvalid, key, prev, action)
			}
			km[key] = action
		}
	}
	return km, nil
}

// Background returns the clear colour.
func (c *Config) Background() color.RGBA {
	col, err := colorful.Hex(c.Render.Background)
	if err != nil {
		return color.RGBA{A: 255}
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FOV returns the vertical field of view in radians.
func (c *Config) FOV() float64 {
	return c.Render.FOV * math.Pi / 180
}

// StartPose returns the initial eye position and view angles in radians.
func (c *Config) StartPose() (pos math3d.Vec3, pitch, yaw float64) {
	p := c.Start.Position
	return math3d.V3(p[0], p[1], p[2]), c.Start.Pitch * math.Pi / 180, c.Start.Yaw * math.Pi / 180
}

// LogLevel returns the parsed log level, info when unset.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
