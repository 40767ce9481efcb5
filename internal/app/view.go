package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavelet/internal/keymap"
	"github.com/llehouerou/wavelet/internal/ui/playerbar"
)

// View renders the player bar and the help line.
func (m Model) View() string {
	s := playerbar.NewState(m.Transport)
	if m.loading {
		s.Loading = m.Spinner.View()
	}
	s.Err = m.loadErr

	bar := playerbar.Render(s, m.Width)
	return lipgloss.JoinVertical(lipgloss.Left, bar, " "+m.Help.View(helpKeys{}))
}

// helpKeys adapts the keymap to bubbles/help.
type helpKeys struct{}

func (helpKeys) ShortHelp() []key.Binding {
	var short []keymap.Binding
	for _, b := range keymap.All {
		switch b.Action { //nolint:exhaustive // short help lists the essentials
		case keymap.ActionPlayPause, keymap.ActionMute, keymap.ActionSeekBack,
			keymap.ActionSeekForward, keymap.ActionHelp, keymap.ActionQuit:
			short = append(short, b)
		}
	}
	return keymap.HelpKeys(short)
}

func (helpKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		keymap.HelpKeys(keymap.ByContext("playback")),
		keymap.HelpKeys(keymap.ByContext("global")),
	}
}
