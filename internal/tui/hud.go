package tui

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/roomwalk/internal/roomview"
	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/render"
)

var (
	barBg        = render.RGB(20, 20, 28)
	barStyle     = uv.Style{Fg: render.ColorWhite, Bg: barBg, Attrs: uv.AttrBold}
	statusStyle  = uv.Style{Fg: render.ColorGray, Bg: barBg}
	tooltipStyle = uv.Style{Fg: render.ColorBlack, Bg: render.ColorYellow, Attrs: uv.AttrBold}
)

// drawHUD writes the instruction bar, the tooltip and the status line over
// the rendered frame.
func drawHUD(scr uv.Screen, ctx interact.Context, fps float64) {
	b := scr.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	render.FillRect(scr, uv.Rect(0, 0, w, 1), barBg)
	render.DrawText(scr, centered(scr, ctx.Instructions), 0, ctx.Instructions, barStyle)

	if ctx.ShowTooltip && h > 4 {
		tip := " " + interact.TooltipText + " "
		render.DrawText(scr, centered(scr, tip), h/2+2, tip, tooltipStyle)
	}

	if h > 1 {
		render.FillRect(scr, uv.Rect(0, h-1, w, 1), barBg)
		render.DrawText(scr, 1, h-1, roomview.Status(ctx, fps), statusStyle)
	}
}

func centered(scr uv.Screen, s string) int {
	b := scr.Bounds()
	return b.Min.X + max(0, (b.Dx()-scr.WidthMethod().StringWidth(s))/2)
}
