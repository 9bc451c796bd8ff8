// Package catalog holds the materials a surface can be painted with and the
// curated subset offered for each surface class.
package catalog

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/roomwalk/pkg/surface"
)

var (
	// ErrUnknownMaterial is returned when an id is not in the catalog or not
	// offered for the requested class.
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrNotEditable is returned for classes without a curated subset.
	ErrNotEditable = errors.New("surface class is not editable")
	// ErrDuplicateMaterial is returned when the same id is added twice.
	ErrDuplicateMaterial = errors.New("duplicate material")
)

// Material describes how a surface looks.
type Material struct {
	ID        string
	Name      string
	Hex       string
	Color     colorful.Color
	Roughness float64
	Metalness float64
}

// NewMaterial parses hex and returns a material.
func NewMaterial(id, name, hex string, roughness, metalness float64) (Material, error) {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return Material{}, fmt.Errorf("parse color for %q: %w", id, err)
	}
	return Material{
		ID:        id,
		Name:      name,
		Hex:       strings.ToUpper(normalizeHex(hex)),
		Color:     c,
		Roughness: roughness,
		Metalness: metalness,
	}, nil
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}

// RGBA returns the base colour as an opaque color.RGBA.
func (m Material) RGBA() color.RGBA {
	r, g, b := m.Color.RGB255()
	return color.RGBA{r, g, b, 255}
}

// Linear returns the base colour as linear RGBA factors, the form used by
// glTF baseColorFactor.
func (m Material) Linear() [4]float64 {
	r, g, b := m.Color.LinearRgb()
	return [4]float64{r, g, b, 1}
}

// Catalog is an ordered, read-only set of materials plus per-class subsets.
// Build one with New and Add, or use Default.
type Catalog struct {
	order    []string
	byID     map[string]Material
	classes  map[surface.Class][]string
	defaults map[surface.Class]string
	fixed    map[surface.Class]string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID:     make(map[string]Material),
		classes:  make(map[surface.Class][]string),
		defaults: make(map[surface.Class]string),
		fixed:    make(map[surface.Class]string),
	}
}

// Add appends a material. Insertion order is the listing order.
func (c *Catalog) Add(m Material) error {
	if m.ID == "" {
		return fmt.Errorf("add material: empty id")
	}
	if _, ok := c.byID[m.ID]; ok {
		return fmt.Errorf("add material %q: %w", m.ID, ErrDuplicateMaterial)
	}
	c.order = append(c.order, m.ID)
	c.byID[m.ID] = m
	return nil
}

// SetClass makes class editable with the given curated ids. def must be one
// of ids; an empty def selects the first entry.
func (c *Catalog) SetClass(class surface.Class, ids []string, def string) error {
	if len(ids) == 0 {
		return fmt.Errorf("set %s materials: empty list", class)
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			return fmt.Errorf("set %s materials: %q: %w", class, id, ErrUnknownMaterial)
		}
		if seen[id] {
			return fmt.Errorf("set %s materials: %q: %w", class, id, ErrDuplicateMaterial)
		}
		seen[id] = true
	}
	if def == "" {
		def = ids[0]
	}
	if !seen[def] {
		return fmt.Errorf("set %s default %q: %w", class, def, ErrUnknownMaterial)
	}
	c.classes[class] = append([]string(nil), ids...)
	c.defaults[class] = def
	delete(c.fixed, class)
	return nil
}

// SetFixed gives a non-editable class a constant material.
func (c *Catalog) SetFixed(class surface.Class, id string) error {
	if _, ok := c.byID[id]; !ok {
		return fmt.Errorf("set fixed %s material %q: %w", class, id, ErrUnknownMaterial)
	}
	delete(c.classes, class)
	delete(c.defaults, class)
	c.fixed[class] = id
	return nil
}

// List returns every material in insertion order.
func (c *Catalog) List() []Material {
	out := make([]Material, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get looks up a material by id.
func (c *Catalog) Get(id string) (Material, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// Editable reports whether class has a curated subset.
func (c *Catalog) Editable(class surface.Class) bool {
	return len(c.classes[class]) > 0
}

// ForClass returns the curated subset for class in its configured order, or
// nil when the class is not editable.
func (c *Catalog) ForClass(class surface.Class) []Material {
	ids := c.classes[class]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Material, len(ids))
	for i, id := range ids {
		out[i] = c.byID[id]
	}
	return out
}

// Offers reports whether id is in the curated subset for class.
func (c *Catalog) Offers(class surface.Class, id string) bool {
	for _, v := range c.classes[class] {
		if v == id {
			return true
		}
	}
	return false
}

// Default returns the initial material id for an editable class.
func (c *Catalog) Default(class surface.Class) (string, bool) {
	id, ok := c.defaults[class]
	return id, ok
}

// Fixed returns the constant material of a non-editable class.
func (c *Catalog) Fixed(class surface.Class) (Material, bool) {
	id, ok := c.fixed[class]
	if !ok {
		return Material{}, false
	}
	return c.byID[id], true
}

// EditableClasses lists the editable classes in surface.Classes order.
func (c *Catalog) EditableClasses() []surface.Class {
	var out []surface.Class
	for _, cl := range surface.Classes() {
		if c.Editable(cl) {
			out = append(out, cl)
		}
	}
	return out
}

// Validate checks that id may be assigned to class.
func (c *Catalog) Validate(class surface.Class, id string) error {
	if !c.Editable(class) {
		return fmt.Errorf("assign %s: %w", class, ErrNotEditable)
	}
	if !c.Offers(class, id) {
		return fmt.Errorf("assign %q to %s: %w", id, class, ErrUnknownMaterial)
	}
	return nil
}
