package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global" or "playback"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},
	{ActionReload, []string{"r"}, "Reload source", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
	{ActionMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek forward", "playback"},
	{ActionSeekStart, []string{"home"}, "Seek to start", "playback"},
	{ActionSeekEnd, []string{"end"}, "Seek to end", "playback"},
	{ActionSeekPercent, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to 0-90%", "playback"},
	{ActionVolumeUp, []string{"+", "=", "up"}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-", "down"}, "Volume down", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// HelpKeys converts bindings to bubbles key bindings for the help view.
// Multi-key bindings show their first key only; the digit row shows "0-9".
func HelpKeys(bindings []Binding) []key.Binding {
	result := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		label := displayKey(b.Keys[0])
		if b.Action == ActionSeekPercent {
			label = "0-9"
		}
		result = append(result, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(label, b.Description),
		))
	}
	return result
}

func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "left":
		return "←"
	case "right":
		return "→"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}

// DigitPercent returns the seek percentage for a digit key ("3" -> 30).
func DigitPercent(k string) (float64, bool) {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0, false
	}
	return float64(k[0]-'0') * 10, true
}
