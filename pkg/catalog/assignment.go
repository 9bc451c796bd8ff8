package catalog

import (
	"maps"

	"github.com/taigrr/roomwalk/pkg/surface"
)

// Assignment maps each editable class to its current material id.
type Assignment map[surface.Class]string

// DefaultAssignment returns the initial assignment for every editable class.
func (c *Catalog) DefaultAssignment() Assignment {
	a := make(Assignment)
	for _, cl := range c.EditableClasses() {
		a[cl], _ = c.Default(cl)
	}
	return a
}

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment {
	return maps.Clone(a)
}

// Reconcile returns a copy of a valid for c: ids that are no longer offered
// fall back to the class default, classes that stopped being editable are
// dropped and new editable classes get their default.
func (c *Catalog) Reconcile(a Assignment) Assignment {
	out := make(Assignment)
	for _, cl := range c.EditableClasses() {
		if id, ok := a[cl]; ok && c.Offers(cl, id) {
			out[cl] = id
			continue
		}
		out[cl], _ = c.Default(cl)
	}
	return out
}

// Resolve returns the material a surface of class is drawn with: the
// assigned one for editable classes, the fixed one otherwise.
func (c *Catalog) Resolve(a Assignment, class surface.Class) (Material, bool) {
	if c.Editable(class) {
		id, ok := a[class]
		if !ok || !c.Offers(class, id) {
			id, _ = c.Default(class)
		}
		return c.Get(id)
	}
	return c.Fixed(class)
}
