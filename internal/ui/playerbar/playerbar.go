// Package playerbar renders the one-line player widget.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelet/internal/icons"
	"github.com/llehouerou/wavelet/internal/transport"
	"github.com/llehouerou/wavelet/internal/ui/render"
)

// Height is the rendered height: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Phase    transport.Phase
	Loading  string // spinner frame while a load is in flight
	Err      string // last load failure, shown while no asset is loaded
	Title    string
	Artist   string
	Format   string
	Elapsed  time.Duration
	Duration time.Duration
	Progress float64
	Volume   float64
	Muted    bool
	NoAudio  bool // no output device; controls are inert
}

// NewState captures the controller's current state.
func NewState(c *transport.Controller) State {
	s := State{
		Phase:    c.Phase(),
		Elapsed:  c.Elapsed(),
		Duration: c.Duration(),
		Progress: c.Progress(),
		Volume:   c.Volume(),
		Muted:    c.Muted(),
		NoAudio:  !c.Available(),
	}
	if a := c.Asset(); a != nil {
		info := a.Info()
		s.Title = info.Title
		s.Artist = info.Artist
		s.Format = info.Kind.String()
	}
	return s
}

// Button returns the icon of the play/pause control for a phase.
func Button(p transport.Phase) string {
	switch p {
	case transport.PhasePlaying:
		return icons.Pause()
	case transport.PhaseEnded:
		return icons.Replay()
	default:
		return icons.Play()
	}
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0) // border + padding

	var content string
	switch {
	case s.Loading != "" && !s.Phase.HasAsset():
		content = timeStyle().Render(s.Loading + " Loading…")
	case !s.Phase.HasAsset() && s.Err != "":
		content = errorStyle().Render(render.Truncate(icons.Error()+" "+s.Err, innerWidth))
	case !s.Phase.HasAsset():
		content = timeStyle().Render("No audio loaded")
	default:
		content = renderLine(s, innerWidth)
	}

	return barStyle.Padding(0, 2).Width(max(width-2, 0)).Render(content)
}

// Layout: ▶  Title · Artist   ━━━━───────   1:23 / 3:58   🔊 80%
//
// The volume and then the label are dropped when width is too small.
func renderLine(s State, width int) string {
	const (
		separator   = "   "
		minBarWidth = 10
		minLabel    = 4
	)

	button := Button(s.Phase)
	if s.NoAudio {
		button = icons.Error()
	}
	button = buttonStyle().Render(button)

	timeStr := timeStyle().Render(render.TimePair(s.Elapsed, s.Duration))
	vol := RenderVolume(s.Volume, s.Muted)

	fixed := lipgloss.Width(button) + 2 + len(separator) + lipgloss.Width(timeStr)
	showVol := width-fixed >= minBarWidth+len(separator)*2+lipgloss.Width(vol)
	if showVol {
		fixed += len(separator) + lipgloss.Width(vol)
	}

	label := ""
	if avail := width - fixed - minBarWidth - len(separator); avail >= minLabel {
		title := icons.FormatAudio(render.Sanitize(s.Title))
		label = fitLabel(title, render.Sanitize(s.Artist), avail)
		fixed += lipgloss.Width(label) + len(separator)
	}

	var b strings.Builder
	b.WriteString(button)
	b.WriteString("  ")
	if label != "" {
		b.WriteString(label)
		b.WriteString(separator)
	}
	b.WriteString(RenderSeekBar(s.Progress, width-fixed))
	b.WriteString(separator)
	b.WriteString(timeStr)
	if showVol {
		b.WriteString(separator)
		b.WriteString(vol)
	}
	return render.Clip(b.String(), width)
}

// fitLabel renders "Title · Artist" within width, dropping the artist
// before truncating the title.
func fitLabel(title, artist string, width int) string {
	if title == "" {
		title = "Unknown"
	}
	const dot = " · "
	tw := lipgloss.Width(title)
	if artist != "" && tw+lipgloss.Width(dot)+lipgloss.Width(artist) <= width {
		return titleStyle().Render(title) + artistStyle().Render(dot+artist)
	}
	if tw <= width {
		return titleStyle().Render(title)
	}
	return titleStyle().Render(render.Truncate(title, max(width, 1)))
}
