package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/keymap"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.Keys.Resolve(key) {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit

	case keymap.ActionHelp:
		m.ShowHelp = !m.ShowHelp
		m.Help.ShowAll = m.ShowHelp
		return m, nil

	case keymap.ActionReload:
		if m.Source == "" {
			return m, nil
		}
		m.beginLoad()
		m.reloading = true
		return m, tea.Batch(m.fetchPending(), m.Spinner.Tick)

	case keymap.ActionPlayPause:
		m.Transport.Toggle()

	case keymap.ActionMute:
		m.Transport.ToggleMute()
		m.saveVolume()

	case keymap.ActionSeekBack:
		m.Transport.SeekBy(-m.Config.SeekStep)
	case keymap.ActionSeekForward:
		m.Transport.SeekBy(m.Config.SeekStep)
	case keymap.ActionSeekStart:
		m.Transport.Seek(0)
	case keymap.ActionSeekEnd:
		m.Transport.Seek(100)
	case keymap.ActionSeekPercent:
		if p, ok := keymap.DigitPercent(key); ok {
			m.Transport.Seek(p)
		}

	case keymap.ActionVolumeUp:
		m.Transport.SetVolume(m.Transport.Volume() + m.Config.VolumeStep)
		m.saveVolume()
	case keymap.ActionVolumeDown:
		m.Transport.SetVolume(m.Transport.Volume() - m.Config.VolumeStep)
		m.saveVolume()

	default:
		return m, nil
	}

	// Play/seek may have started the refresh loop.
	return m, m.Loop.Pending()
}
