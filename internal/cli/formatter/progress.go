package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a completion bar like [████░░░░]  45%.
// pct is a whole percentage; the bar is green from 67%, yellow from 34%,
// red below that.
func RenderProgress(pct int, width int) string {
	pct = clampPct(pct)
	bar := progressBlocks(pct, width)

	style := StyleGreen
	if pct < 34 {
		style = StyleRed
	} else if pct < 67 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderCompactBar renders the bare blocks of a bar in one color, with no
// brackets or label. Used for per-category rows.
func RenderCompactBar(pct int, width int) string {
	return StyleBlue.Render(progressBlocks(clampPct(pct), width))
}

func progressBlocks(pct, width int) string {
	if width < 2 {
		width = 2
	}
	filled := pct * width / 100
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
