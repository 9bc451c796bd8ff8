package gl

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/taigrr/roomwalk/pkg/interact"
)

// namedKeys maps config key names to raylib key codes. Letters and digits
// are resolved in keyCode.
var namedKeys = map[string]int32{
	"escape":    rl.KeyEscape,
	"esc":       rl.KeyEscape,
	"enter":     rl.KeyEnter,
	"space":     rl.KeySpace,
	"tab":       rl.KeyTab,
	"backspace": rl.KeyBackspace,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
}

// keyCode resolves a single key name.
func keyCode(name string) (int32, bool) {
	if code, ok := namedKeys[name]; ok {
		return code, true
	}
	if len(name) != 1 {
		return 0, false
	}
	switch c := name[0]; {
	case c >= 'a' && c <= 'z':
		return rl.KeyA + int32(c-'a'), true
	case c >= '0' && c <= '9':
		return rl.KeyZero + int32(c-'0'), true
	}
	return 0, false
}

// binding is one key, optionally with ctrl held, bound to an action.
type binding struct {
	key    int32
	ctrl   bool
	action interact.Action
}

// parseBinding reads names such as "w", "escape" or "ctrl+c".
func parseBinding(name string, a interact.Action) (binding, error) {
	b := binding{action: a}
	key := name
	if rest, ok := strings.CutPrefix(name, "ctrl+"); ok {
		b.ctrl, key = true, rest
	}
	code, ok := keyCode(key)
	if !ok {
		return binding{}, fmt.Errorf("key %q has no window equivalent", name)
	}
	b.key = code
	return b, nil
}

// bindings converts a keymap. Keys the window cannot report are returned
// separately so the caller can log them.
func bindings(km map[string]interact.Action) ([]binding, []error) {
	var out []binding
	var errs []error
	for name, a := range km {
		b, err := parseBinding(name, a)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, b)
	}
	return out, errs
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

// pressed reports whether b went down this frame.
func (b binding) pressed() bool {
	return rl.IsKeyPressed(b.key) && b.ctrl == ctrlDown()
}

func (b binding) released() bool {
	return rl.IsKeyReleased(b.key)
}

func (b binding) down() bool {
	return rl.IsKeyDown(b.key)
}
