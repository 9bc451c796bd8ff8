// Package render draws the room into a pixel framebuffer and shows it in the
// terminal with half-block cells.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer holds one frame of the room. In the terminal each cell shows
// two vertically stacked pixels, so Height is twice the row count.
//
// Framebuffer implements image.Image so a frame can be encoded directly.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA // row-major
}

var _ image.Image = (*Framebuffer)(nil)

// NewFramebuffer allocates a width x height frame of transparent black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

func (fb *Framebuffer) inside(x, y int) bool {
	return uint(x) < uint(fb.Width) && uint(y) < uint(fb.Height)
}

// Clear paints every pixel with c, typically the room background.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pixels) == 0 {
		return
	}
	// Doubling copy fills the slice in log(n) copies.
	fb.Pixels[0] = c
	for n := 1; n < len(fb.Pixels); n *= 2 {
		copy(fb.Pixels[n:], fb.Pixels[:n])
	}
}

// SetPixel writes c at (x, y). Writes outside the frame are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if fb.inside(x, y) {
		fb.Pixels[y*fb.Width+x] = c
	}
}

// GetPixel returns the pixel at (x, y), or the zero colour outside the frame.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if !fb.inside(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine plots a one-pixel line between two screen points. The outline
// and crosshair are drawn with it, on top of the shaded room.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y0-y1, 1
	if dy > 0 {
		dy, sy = -dy, -1
	}

	acc := dx + dy
	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		step := 2 * acc
		if step >= dy {
			acc += dy
			x0 += sx
		}
		if step <= dx {
			acc += dx
			y0 += sy
		}
	}
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.GetPixel(x, y) }

// SavePNG writes the frame to path as a PNG.
func (fb *Framebuffer) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, fb); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
