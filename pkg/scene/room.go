package scene

import (
	"github.com/taigrr/roomwalk/pkg/math3d"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// Dims are the room measurements in metres. The room is centred on the
// origin in X and Z with the floor at Y=0. North is +Z, east is +X.
type Dims struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Depth         float64 `yaml:"depth"`
	WallThickness float64 `yaml:"wall_thickness"`

	DoorWidth  float64 `yaml:"door_width"`
	DoorHeight float64 `yaml:"door_height"`

	WindowWidth  float64 `yaml:"window_width"`
	WindowHeight float64 `yaml:"window_height"`
	WindowSill   float64 `yaml:"window_sill"`

	BaseboardHeight float64 `yaml:"baseboard_height"`
	BaseboardDepth  float64 `yaml:"baseboard_depth"`
	FrameThickness  float64 `yaml:"frame_thickness"`
}

// DefaultDims returns the 6 x 2.6 x 6 m reference room.
func DefaultDims() Dims {
	return Dims{
		Width:           6,
		Height:          2.6,
		Depth:           6,
		WallThickness:   0.12,
		DoorWidth:       0.9,
		DoorHeight:      2.0,
		WindowWidth:     1.2,
		WindowHeight:    1.2,
		WindowSill:      1.0,
		BaseboardHeight: 0.1,
		BaseboardDepth:  0.05,
		FrameThickness:  0.05,
	}
}

// slab is the thickness given to the floor and ceiling boxes.
const slab = 0.02

func box(minX, minY, minZ, maxX, maxY, maxZ float64) math3d.AABB {
	return math3d.NewAABB(math3d.V3(minX, minY, minZ), math3d.V3(maxX, maxY, maxZ))
}

func wall(name string, b math3d.AABB) Primitive {
	return Primitive{Name: name, Bounds: b, Class: surface.Wall, Interactable: true}
}

func trim(name string, b math3d.AABB) Primitive {
	return Primitive{Name: name, Bounds: b}
}

// NewRoom builds the room: floor, ceiling, four walls with a door in the
// north wall and a window in the east wall, plus untagged trim. Walls with
// openings are split into boxes around the hole.
func NewRoom(d Dims) *Scene {
	hw, hd := d.Width/2, d.Depth/2
	t := d.WallThickness
	s := New()

	s.Add(Primitive{
		Name:         "floor",
		Bounds:       box(-hw, -slab, -hd, hw, 0, hd),
		Class:        surface.Floor,
		Interactable: true,
		Clickable:    true,
	})
	s.Add(Primitive{
		Name:         "ceiling",
		Bounds:       box(-hw, d.Height, -hd, hw, d.Height+slab, hd),
		Class:        surface.Ceiling,
		Interactable: true,
	})

	// North wall with the door opening centred on X=0.
	dw := d.DoorWidth / 2
	s.Add(wall("wall-north-left", box(-hw, 0, hd, -dw, d.Height, hd+t)))
	s.Add(wall("wall-north-right", box(dw, 0, hd, hw, d.Height, hd+t)))
	s.Add(wall("wall-north-lintel", box(-dw, d.DoorHeight, hd, dw, d.Height, hd+t)))

	s.Add(wall("wall-south", box(-hw, 0, -hd-t, hw, d.Height, -hd)))

	// East wall with the window opening centred on Z=0.
	ww := d.WindowWidth / 2
	top := d.WindowSill + d.WindowHeight
	s.Add(wall("wall-east-south", box(hw, 0, -hd, hw+t, d.Height, -ww)))
	s.Add(wall("wall-east-north", box(hw, 0, ww, hw+t, d.Height, hd)))
	s.Add(wall("wall-east-below", box(hw, 0, -ww, hw+t, d.WindowSill, ww)))
	s.Add(wall("wall-east-above", box(hw, top, -ww, hw+t, d.Height, ww)))

	s.Add(wall("wall-west", box(-hw-t, 0, -hd, -hw, d.Height, hd)))

	bh, bd := d.BaseboardHeight, d.BaseboardDepth
	s.Add(trim("baseboard-north-left", box(-hw, 0, hd-bd, -dw, bh, hd)))
	s.Add(trim("baseboard-north-right", box(dw, 0, hd-bd, hw, bh, hd)))
	s.Add(trim("baseboard-south", box(-hw, 0, -hd, hw, bh, -hd+bd)))
	s.Add(trim("baseboard-east", box(hw-bd, 0, -hd, hw, bh, hd)))
	s.Add(trim("baseboard-west", box(-hw, 0, -hd, -hw+bd, bh, hd)))

	f := d.FrameThickness
	s.Add(trim("door-frame-left", box(-dw-f, 0, hd, -dw, d.DoorHeight+f, hd+t)))
	s.Add(trim("door-frame-right", box(dw, 0, hd, dw+f, d.DoorHeight+f, hd+t)))
	s.Add(trim("door-frame-top", box(-dw-f, d.DoorHeight, hd, dw+f, d.DoorHeight+f, hd+t)))

	s.Add(trim("window-sill", box(hw-0.075, d.WindowSill-f/2, -ww-f, hw+t, d.WindowSill+f/2, ww+f)))
	s.Add(trim("window-frame-south", box(hw, d.WindowSill, -ww-f, hw+t, top+f, -ww)))
	s.Add(trim("window-frame-north", box(hw, d.WindowSill, ww, hw+t, top+f, ww+f)))
	s.Add(trim("window-frame-top", box(hw, top, -ww-f, hw+t, top+f, ww+f)))

	return s
}
