package catalog

import (
	"fmt"

	"github.com/taigrr/roomwalk/pkg/surface"
)

// Entry is a material as written in a config file.
type Entry struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Color     string  `yaml:"color"`
	Roughness float64 `yaml:"roughness"`
	Metalness float64 `yaml:"metalness"`
}

// ClassEntry binds a surface class to either a curated list or a fixed
// material.
type ClassEntry struct {
	Class     surface.Class `yaml:"class"`
	Materials []string      `yaml:"materials,omitempty"`
	Default   string        `yaml:"default,omitempty"`
	Fixed     string        `yaml:"fixed,omitempty"`
}

// Spec is the serialisable form of a catalog.
type Spec struct {
	Materials []Entry      `yaml:"materials"`
	Classes   []ClassEntry `yaml:"classes"`
}

var builtinMaterials = []Entry{
	// Curated floor finishes.
	{"hardwood", "Hardwood", "#8B4513", 0.8, 0},
	{"tile", "Tile", "#E0E0E0", 0.2, 0.1},
	{"carpet", "Carpet", "#556B2F", 0.9, 0},

	// Curated wall finishes.
	{"whitePaint", "White Paint", "#F5F5F5", 0.7, 0},
	{"bluePaint", "Blue Paint", "#4A90E2", 0.6, 0},
	{"brick", "Brick", "#8B4726", 0.9, 0},

	{"ceiling", "Ceiling", "#D3D3D3", 0.7, 0},

	// General library, usable from config-defined subsets.
	{"white", "White Paint", "#f5f5f5", 0.9, 0},
	{"lightGray", "Light Gray", "#d3d3d3", 0.8, 0},
	{"darkGray", "Dark Gray", "#808080", 0.7, 0},
	{"black", "Black Paint", "#2b2b2b", 0.9, 0},
	{"lightWood", "Light Wood", "#d4a574", 0.8, 0},
	{"mediumWood", "Medium Wood", "#8b6f47", 0.7, 0},
	{"darkWood", "Dark Wood", "#3e2723", 0.6, 0},
	{"navyBlue", "Navy Blue", "#1e3a5f", 0.8, 0},
	{"forestGreen", "Forest Green", "#2d5016", 0.8, 0},
	{"burgundy", "Burgundy", "#6d1a36", 0.7, 0},
	{"cream", "Cream", "#f5f5dc", 0.85, 0},
	{"skyBlue", "Sky Blue", "#87ceeb", 0.8, 0},
	{"concrete", "Concrete", "#9e9e9e", 0.95, 0},
	{"marble", "Marble", "#e8e8e8", 0.3, 0.1},
	{"copper", "Copper", "#b87333", 0.4, 0.9},
	{"steel", "Brushed Steel", "#b0b0b0", 0.5, 0.9},
	{"gold", "Gold", "#ffd700", 0.3, 1.0},
}

// DefaultSpec returns the built-in catalog description.
func DefaultSpec() Spec {
	return Spec{
		Materials: append([]Entry(nil), builtinMaterials...),
		Classes: []ClassEntry{
			{Class: surface.Floor, Materials: []string{"hardwood", "tile", "carpet"}, Default: "hardwood"},
			{Class: surface.Wall, Materials: []string{"whitePaint", "bluePaint", "brick"}, Default: "whitePaint"},
			{Class: surface.Ceiling, Fixed: "ceiling"},
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := FromSpec(DefaultSpec())
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// FromSpec builds a catalog from its serialisable form. An empty material
// list falls back to the built-in materials so a config can redefine only
// the class subsets.
func FromSpec(s Spec) (*Catalog, error) {
	entries := s.Materials
	if len(entries) == 0 {
		entries = builtinMaterials
	}

	c := New()
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = e.ID
		}
		m, err := NewMaterial(e.ID, name, e.Color, e.Roughness, e.Metalness)
		if err != nil {
			return nil, err
		}
		if err := c.Add(m); err != nil {
			return nil, err
		}
	}

	for _, ce := range s.Classes {
		if ce.Class == surface.None {
			return nil, fmt.Errorf("class entry without class")
		}
		switch {
		case ce.Fixed != "" && len(ce.Materials) > 0:
			return nil, fmt.Errorf("class %s: fixed and materials are exclusive", ce.Class)
		case ce.Fixed != "":
			if err := c.SetFixed(ce.Class, ce.Fixed); err != nil {
				return nil, err
			}
		default:
			if err := c.SetClass(ce.Class, ce.Materials, ce.Default); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
