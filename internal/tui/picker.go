package tui

import (
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/render"
)

const (
	pickerWidth = 36
	doneLabel   = "[ Done ]"
)

var (
	panelBg        = render.RGB(40, 40, 52)
	panelStyle     = uv.Style{Fg: render.ColorWhite, Bg: panelBg}
	panelTitle     = uv.Style{Fg: render.ColorCyan, Bg: panelBg, Attrs: uv.AttrBold}
	highlightBg    = render.RGB(70, 70, 96)
	highlightStyle = uv.Style{Fg: render.ColorYellow, Bg: highlightBg, Attrs: uv.AttrBold}
	doneStyle      = uv.Style{Fg: render.ColorBlack, Bg: render.ColorWhite, Attrs: uv.AttrBold}
)

// pickerLayout places the material overlay. It is shared by drawing and
// mouse hit testing.
type pickerLayout struct {
	panel uv.Rectangle
	rows  []uv.Rectangle
	done  uv.Rectangle
}

// layoutPicker centres a panel for n entries on a width x height screen:
// title, gap, one row per entry, gap, Done button, with a blank border.
func layoutPicker(n, width, height int) pickerLayout {
	w := min(pickerWidth, width)
	h := n + 6
	x0 := max(0, (width-w)/2)
	y0 := max(0, (height-h)/2)

	l := pickerLayout{panel: uv.Rect(x0, y0, w, h)}
	for i := range n {
		l.rows = append(l.rows, uv.Rect(x0+1, y0+3+i, w-2, 1))
	}
	l.done = uv.Rect(x0+(w-len(doneLabel))/2, y0+h-2, len(doneLabel), 1)
	return l
}

// hit maps a cell to an entry index, or reports the Done button. index is
// -1 when no entry was hit.
func (l pickerLayout) hit(x, y int) (index int, done bool) {
	p := uv.Pos(x, y)
	for i, r := range l.rows {
		if p.In(r) {
			return i, false
		}
	}
	return -1, p.In(l.done)
}

// drawPicker draws the overlay for ctx, which must have the picker open.
func drawPicker(scr uv.Screen, ctx interact.Context) pickerLayout {
	b := scr.Bounds()
	l := layoutPicker(len(ctx.PickerEntries), b.Dx(), b.Dy())

	render.FillRect(scr, l.panel, panelBg)
	title := fmt.Sprintf("%s material", ctx.SelectedClass.Title())
	render.DrawText(scr, l.panel.Min.X+(l.panel.Dx()-len(title))/2, l.panel.Min.Y+1, title, panelTitle)

	current := ctx.Current()
	for i, m := range ctx.PickerEntries {
		r := l.rows[i]
		style := panelStyle
		if i == ctx.PickerCursor {
			style = highlightStyle
			render.FillRect(scr, r, highlightBg)
		}

		x := r.Min.X
		marker := "  "
		if i == ctx.PickerCursor {
			marker = "> "
		}
		x = render.DrawText(scr, x, r.Min.Y, marker, style)
		if i < 9 {
			x = render.DrawText(scr, x, r.Min.Y, fmt.Sprintf("%d ", i+1), style)
		}
		x = render.DrawText(scr, x, r.Min.Y, "  ", uv.Style{Bg: m.RGBA()})
		x = render.DrawText(scr, x, r.Min.Y, " "+m.Name, style)
		if m.ID == current {
			render.DrawText(scr, x, r.Min.Y, " ✓", style)
		}
	}

	render.DrawText(scr, l.done.Min.X, l.done.Min.Y, doneLabel, doneStyle)
	return l
}
