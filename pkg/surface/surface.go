// Package surface names the families of room surfaces that can be aimed at
// and recoloured, and the record produced when a ray lands on one.
package surface

import (
	"fmt"
	"strings"

	"github.com/taigrr/roomwalk/pkg/math3d"
)

// Class identifies a surface family. The zero value means untagged.
type Class int

const (
	None Class = iota
	Floor
	Wall
	Ceiling
)

var classNames = [...]string{
	None:    "none",
	Floor:   "floor",
	Wall:    "wall",
	Ceiling: "ceiling",
}

// String returns the lower-case name used in config files and the HUD.
func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// Title returns the name with its first letter capitalised.
func (c Class) Title() string {
	s := c.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Classes lists the tagged classes in a stable order.
func Classes() []Class {
	return []Class{Floor, Wall, Ceiling}
}

// ParseClass converts a name such as "floor" into a Class.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floor":
		return Floor, nil
	case "wall":
		return Wall, nil
	case "ceiling":
		return Ceiling, nil
	}
	return None, fmt.Errorf("unknown surface class %q", s)
}

// MarshalText implements encoding.TextMarshaler so classes read naturally in
// YAML and logs.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(b []byte) error {
	v, err := ParseClass(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Hit is the surface currently under the aiming ray.
type Hit struct {
	Class     Class
	Distance  float64
	Point     math3d.Vec3
	Primitive string
}

func (h Hit) String() string {
	return fmt.Sprintf("%s %q at %.2fm", h.Class, h.Primitive, h.Distance)
}
