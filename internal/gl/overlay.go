package gl

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/taigrr/roomwalk/internal/roomview"
	"github.com/taigrr/roomwalk/pkg/interact"
)

const (
	fontSize   = 20
	barHeight  = 32
	rowHeight  = 34
	panelWidth = 380
)

var (
	barColor       = rl.NewColor(20, 20, 28, 220)
	panelColor     = rl.NewColor(40, 40, 52, 240)
	highlightColor = rl.NewColor(70, 70, 96, 255)
	tooltipColor   = rl.NewColor(255, 220, 0, 255)
)

type pickerLayout struct {
	panel rl.Rectangle
	rows  []rl.Rectangle
	done  rl.Rectangle
}

// layoutPicker centres a panel for n entries in a w x h window.
func layoutPicker(n, w, h int) pickerLayout {
	ph := float32(n*rowHeight + 130)
	x0 := (float32(w) - panelWidth) / 2
	y0 := (float32(h) - ph) / 2

	l := pickerLayout{panel: rl.NewRectangle(x0, y0, panelWidth, ph)}
	for i := range n {
		l.rows = append(l.rows, rl.NewRectangle(x0+12, y0+60+float32(i*rowHeight), panelWidth-24, rowHeight-4))
	}
	l.done = rl.NewRectangle(x0+panelWidth/2-60, y0+ph-54, 120, 38)
	return l
}

// hit maps a window point to an entry index, or reports the Done button.
func (l pickerLayout) hit(p rl.Vector2) (index int, done bool) {
	for i, r := range l.rows {
		if rl.CheckCollisionPointRec(p, r) {
			return i, false
		}
	}
	return -1, rl.CheckCollisionPointRec(p, l.done)
}

func drawCentered(text string, y int32, size int32, col color.RGBA) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(rl.GetScreenWidth())/2-w/2, y, size, col)
}

func drawHUD(ctx interact.Context, fps float64) {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, w, barHeight, barColor)
	drawCentered(ctx.Instructions, (barHeight-fontSize)/2, fontSize, rl.White)

	if ctx.ShowTooltip {
		tw := rl.MeasureText(interact.TooltipText, fontSize)
		x, y := w/2-tw/2, h/2+40
		rl.DrawRectangle(x-10, y-6, tw+20, fontSize+12, tooltipColor)
		rl.DrawText(interact.TooltipText, x, y, fontSize, rl.Black)
	}

	rl.DrawRectangle(0, h-barHeight, w, barHeight, barColor)
	rl.DrawText(roomview.Status(ctx, fps), 10, h-barHeight+(barHeight-16)/2, 16, rl.LightGray)
}

func drawCrosshair() {
	cx, cy := int32(rl.GetScreenWidth())/2, int32(rl.GetScreenHeight())/2
	const arm = 10
	rl.DrawLine(cx-arm, cy, cx+arm, cy, rl.White)
	rl.DrawLine(cx, cy-arm, cx, cy+arm, rl.White)
}

// drawPicker draws the overlay for ctx, which must have the picker open.
func drawPicker(ctx interact.Context) pickerLayout {
	l := layoutPicker(len(ctx.PickerEntries), rl.GetScreenWidth(), rl.GetScreenHeight())

	rl.DrawRectangleRec(l.panel, panelColor)
	rl.DrawRectangleLinesEx(l.panel, 2, rl.Gray)
	title := fmt.Sprintf("%s material", ctx.SelectedClass.Title())
	tw := rl.MeasureText(title, 24)
	rl.DrawText(title, int32(l.panel.X+l.panel.Width/2)-tw/2, int32(l.panel.Y)+18, 24, rl.SkyBlue)

	current := ctx.Current()
	for i, m := range ctx.PickerEntries {
		r := l.rows[i]
		if i == ctx.PickerCursor {
			rl.DrawRectangleRec(r, highlightColor)
		}
		x, y := int32(r.X)+8, int32(r.Y)+int32(r.Height-fontSize)/2

		rl.DrawRectangle(x, int32(r.Y)+4, 24, int32(r.Height)-8, m.RGBA())
		rl.DrawRectangleLines(x, int32(r.Y)+4, 24, int32(r.Height)-8, rl.Black)

		label := m.Name
		if i < 9 {
			label = fmt.Sprintf("%d  %s", i+1, m.Name)
		}
		col := rl.White
		if i == ctx.PickerCursor {
			col = rl.Yellow
		}
		rl.DrawText(label, x+36, y, fontSize, col)
		if m.ID == current {
			rl.DrawText("current", int32(r.X+r.Width)-90, y+2, 16, rl.LightGray)
		}
	}

	hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), l.done)
	bg := rl.White
	if hovered {
		bg = rl.LightGray
	}
	rl.DrawRectangleRec(l.done, bg)
	dw := rl.MeasureText("Done", fontSize)
	rl.DrawText("Done", int32(l.done.X+l.done.Width/2)-dw/2, int32(l.done.Y+l.done.Height/2)-fontSize/2, fontSize, rl.Black)
	return l
}
