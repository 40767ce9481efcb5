package playerbar

import (
	"fmt"
	"math"

	"github.com/llehouerou/wavelet/internal/icons"
)

// RenderVolume renders the volume indicator: "🔊 100%", or the mute icon
// when muted. The level is kept while muted.
func RenderVolume(volume float64, muted bool) string {
	pct := int(math.Round(volume * 100))
	icon := icons.Volume()
	if muted {
		icon = icons.Mute()
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", icon, pct))
}
