package interact

import (
	"slices"

	"github.com/taigrr/roomwalk/pkg/catalog"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// Picker is the material overlay's model: the class being edited, the
// curated entries for it and a highlighted row for keyboard use.
type Picker struct {
	class   surface.Class
	entries []catalog.Material
	cursor  int
}

func (p *Picker) open(class surface.Class, entries []catalog.Material, current string) {
	p.class = class
	p.entries = entries
	p.cursor = max(0, p.index(current))
}

func (p *Picker) close() {
	*p = Picker{}
}

func (p *Picker) index(id string) int {
	return slices.IndexFunc(p.entries, func(m catalog.Material) bool { return m.ID == id })
}

// Class returns the class being edited, surface.None when closed.
func (p *Picker) Class() surface.Class {
	return p.class
}

// Entries returns the selectable materials in display order.
func (p *Picker) Entries() []catalog.Material {
	return slices.Clone(p.entries)
}

// Cursor returns the highlighted row.
func (p *Picker) Cursor() int {
	return p.cursor
}

// Move shifts the highlight by delta, wrapping at both ends.
func (p *Picker) Move(delta int) {
	n := len(p.entries)
	if n == 0 {
		return
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
}

// Highlighted returns the material under the highlight.
func (p *Picker) Highlighted() (catalog.Material, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return catalog.Material{}, false
	}
	return p.entries[p.cursor], true
}
