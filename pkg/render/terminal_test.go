package render

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/roomwalk/pkg/math3d"
)

// fakeDisplay counts Display calls.
type fakeDisplay struct {
	uv.ScreenBuffer
	displayed int
}

func (f *fakeDisplay) Display() error {
	f.displayed++
	return nil
}

func TestFramebufferDrawHalfBlocks(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	top := RGB(255, 0, 0)
	bottom := RGB(0, 0, 255)
	fb.SetPixel(1, 0, top)
	fb.SetPixel(1, 1, bottom)

	scr := uv.NewScreenBuffer(4, 2)
	fb.Draw(scr, uv.Rect(0, 0, 4, 2))

	cell := scr.CellAt(1, 0)
	if cell == nil || cell.Content != "▀" {
		t.Fatalf("cell = %+v, want half block", cell)
	}
	if cell.Style.Fg != top {
		t.Errorf("fg = %v, want %v", cell.Style.Fg, top)
	}
	if cell.Style.Bg != bottom {
		t.Errorf("bg = %v, want %v", cell.Style.Bg, bottom)
	}

	// Transparent pixels leave the colour unset.
	if c := scr.CellAt(0, 1); c.Style.Fg != nil || c.Style.Bg != nil {
		t.Errorf("empty pixels should have no colour, got %+v", c.Style)
	}
}

func TestDrawText(t *testing.T) {
	scr := uv.NewScreenBuffer(10, 2)
	style := uv.Style{Fg: ColorYellow}

	end := DrawText(scr, 2, 1, "hello", style)
	if end != 7 {
		t.Errorf("end = %d, want 7", end)
	}
	if c := scr.CellAt(2, 1); c.Content != "h" || c.Style.Fg != ColorYellow {
		t.Errorf("first cell = %+v", c)
	}
	if c := scr.CellAt(6, 1); c.Content != "o" {
		t.Errorf("last cell = %q, want o", c.Content)
	}

	// Clipped at the right edge.
	end = DrawText(scr, 7, 0, "overflow", style)
	if end != 10 {
		t.Errorf("clipped end = %d, want 10", end)
	}

	// Off-screen rows are ignored.
	if end := DrawText(scr, 0, 5, "x", style); end != 0 {
		t.Errorf("off-screen end = %d, want 0", end)
	}
}

func TestFillRect(t *testing.T) {
	scr := uv.NewScreenBuffer(5, 5)
	FillRect(scr, uv.Rect(3, 3, 10, 10), ColorGray)

	if c := scr.CellAt(4, 4); c.Style.Bg != ColorGray {
		t.Errorf("inside bg = %v, want gray", c.Style.Bg)
	}
	if c := scr.CellAt(2, 2); c.Style.Bg != nil {
		t.Errorf("outside bg = %v, want unset", c.Style.Bg)
	}
}

func TestTerminalRenderer(t *testing.T) {
	disp := &fakeDisplay{ScreenBuffer: uv.NewScreenBuffer(8, 3)}
	tr := NewTerminalRenderer(disp, 8, 3)

	w, h := tr.FramebufferSize()
	if w != 8 || h != 6 {
		t.Fatalf("FramebufferSize = %dx%d, want 8x6", w, h)
	}

	fb := NewFramebuffer(w, h)
	fb.Clear(ColorSky)
	tr.Render(fb)
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	if disp.displayed != 1 {
		t.Errorf("Display called %d times, want 1", disp.displayed)
	}
	if c := tr.Screen().CellAt(7, 2); c.Style.Fg != ColorSky || c.Style.Bg != ColorSky {
		t.Errorf("bottom-right cell = %+v, want sky", c.Style)
	}
}

func TestWireframeDrawBox(t *testing.T) {
	fb := NewFramebuffer(80, 60)
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 0, 5))
	cam.SetAspectRatio(80.0 / 60.0)
	wf := NewWireframe(cam, fb)

	wf.DrawBox(math3d.BoxAt(math3d.Vec3{}, math3d.V3(1, 1, 1)), ColorYellow)
	if countPixels(fb, ColorYellow) == 0 {
		t.Error("box in view should draw edges")
	}
	// The box centre is hollow.
	if fb.GetPixel(40, 30) == ColorYellow {
		t.Error("centre pixel should not be on an edge")
	}
}

func TestWireframeLineBehindCamera(t *testing.T) {
	fb := NewFramebuffer(40, 30)
	cam := NewCamera()
	cam.SetPosition(math3d.Vec3{})
	wf := NewWireframe(cam, fb)

	wf.DrawLine3D(math3d.V3(-1, 0, 2), math3d.V3(1, 0, 2), ColorWhite)
	if n := countPixels(fb, ColorWhite); n != 0 {
		t.Errorf("line behind camera drew %d pixels", n)
	}

	// A line crossing the eye plane is clipped, not dropped.
	wf.DrawLine3D(math3d.V3(0, -0.5, 2), math3d.V3(0, -0.5, -4), ColorWhite)
	if countPixels(fb, ColorWhite) == 0 {
		t.Error("partially visible line should draw")
	}
}

func TestWireframeCrosshair(t *testing.T) {
	fb := NewFramebuffer(41, 31)
	wf := NewWireframe(NewCamera(), fb)
	wf.DrawCrosshair(4, ColorWhite)

	if fb.GetPixel(20, 15) != ColorWhite {
		t.Error("crosshair should cover the centre")
	}
	if fb.GetPixel(16, 15) != ColorWhite || fb.GetPixel(24, 15) != ColorWhite {
		t.Error("crosshair arms should reach size pixels")
	}
}
