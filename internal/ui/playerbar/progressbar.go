package playerbar

import (
	"strings"

	"github.com/llehouerou/wavelet/internal/ui/styles"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderSeekBar renders a width-cell bar filled to progress (0-100).
func RenderSeekBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := FilledCells(progress, width)
	return styles.ApplyGradient(strings.Repeat(filledBlock, filled), styles.T().Primary, styles.T().Secondary) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, width-filled))
}

// FilledCells returns how many of width cells a progress percentage covers.
func FilledCells(progress float64, width int) int {
	if width <= 0 || progress <= 0 || progress != progress {
		return 0
	}
	return min(int(float64(width)*progress/100), width)
}
