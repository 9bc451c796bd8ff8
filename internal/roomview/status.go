package roomview

import (
	"fmt"
	"strings"

	"github.com/taigrr/roomwalk/pkg/interact"
	"github.com/taigrr/roomwalk/pkg/surface"
)

// Status summarises the machine for a frontend's status bar. fps is left
// out while zero.
func Status(ctx interact.Context, fps float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "State: %s", ctx.Mode)

	if ctx.HasTarget {
		fmt.Fprintf(&sb, "  Target: %s (%s, %.1fm)", ctx.Target.Class, ctx.Target.Primitive, ctx.Target.Distance)
	} else {
		sb.WriteString("  Target: -")
	}

	for _, c := range surface.Classes() {
		if id, ok := ctx.Assignment[c]; ok {
			fmt.Fprintf(&sb, "  %s=%s", c, id)
		}
	}

	if fps > 0 {
		fmt.Fprintf(&sb, "  %.0f FPS", fps)
	}
	return sb.String()
}
