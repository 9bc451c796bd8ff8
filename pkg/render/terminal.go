package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to half-block cells on scr. Each terminal
// row shows two framebuffer rows: ▀ with fg=top and bg=bottom.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(fb.GetPixel(x, topY)),
					Bg: rgbaToColor(fb.GetPixel(x, botY)),
				},
			})
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// DrawText writes s starting at (x, y) and returns the column after the
// last cell written. Text past the screen edge is dropped.
func DrawText(scr uv.Screen, x, y int, s string, style uv.Style) int {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return x
	}
	wm := scr.WidthMethod()
	for _, r := range s {
		g := string(r)
		w := wm.StringWidth(g)
		if w == 0 {
			continue
		}
		if x+w > bounds.Max.X {
			break
		}
		if x >= bounds.Min.X {
			scr.SetCell(x, y, &uv.Cell{Content: g, Width: w, Style: style})
		}
		x += w
	}
	return x
}

// FillRect paints a solid background over area.
func FillRect(scr uv.Screen, area uv.Rectangle, bg Color) {
	area = area.Intersect(scr.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			scr.SetCell(x, y, &uv.Cell{Content: " ", Width: 1, Style: uv.Style{Bg: bg}})
		}
	}
}

// Display is a screen that can push its contents to the terminal, such as
// *uv.Terminal.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalRenderer owns the mapping between a terminal of width x height
// cells and a framebuffer of width x 2*height pixels.
type TerminalRenderer struct {
	scr           Display
	width, height int
}

// NewTerminalRenderer creates a renderer for a terminal of the given size.
func NewTerminalRenderer(scr Display, width, height int) *TerminalRenderer {
	return &TerminalRenderer{scr: scr, width: width, height: height}
}

// FramebufferSize returns the pixel size matching the terminal.
func (t *TerminalRenderer) FramebufferSize() (int, int) {
	return t.width, t.height * 2
}

// Size returns the terminal size in cells.
func (t *TerminalRenderer) Size() (int, int) {
	return t.width, t.height
}

// Screen returns the screen overlays are drawn on.
func (t *TerminalRenderer) Screen() uv.Screen {
	return t.scr
}

// Render copies fb to the screen.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.scr, uv.Rect(0, 0, t.width, t.height))
}

// Flush displays the screen.
func (t *TerminalRenderer) Flush() error {
	return t.scr.Display()
}

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorWhite  = color.RGBA{255, 255, 255, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
	ColorCyan   = color.RGBA{0, 255, 255, 255}
	ColorGray   = color.RGBA{128, 128, 128, 255}
	ColorSky    = color.RGBA{135, 206, 235, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}
