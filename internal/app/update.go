package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/wavelet/internal/audio"
	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/progress"
	"github.com/llehouerou/wavelet/internal/state"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Help.Width = msg.Width
		return m, nil

	case LoadedMsg:
		return m.handleLoaded(msg)

	case progress.FrameMsg:
		return m.handleFrame(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleLoaded(msg LoadedMsg) (tea.Model, tea.Cmd) {
	if !m.Loader.Accept(msg.Result) {
		return m, nil
	}
	m.loading = false

	if msg.Err != nil {
		op := errmsg.OpSourceLoad
		if m.reloading {
			op = errmsg.OpSourceReload
		}
		m.loadErr = errmsg.FormatWith(op, audio.BaseName(msg.Ref), msg.Err)
		m.Transport.Unload()
		return m, nil
	}

	m.Transport.Load(msg.Asset)
	m.recordLoad(msg.Ref)

	if m.Config.Autoplay {
		m.Transport.Play()
	}
	return m, m.Loop.Pending()
}

func (m *Model) recordLoad(ref string) {
	if m.Store == nil {
		return
	}
	a := m.Transport.Asset()
	info := a.Info()
	err := m.Store.RecordLoad(state.LoadEntry{
		Ref:      ref,
		Title:    info.Title,
		Artist:   info.Artist,
		Format:   info.Kind.String(),
		Duration: a.Duration(),
		Size:     int64(a.Size()),
	})
	if err != nil {
		m.logger.Warn(errmsg.Format(errmsg.OpHistorySave, err))
	}
}

// handleFrame recomputes the position on each accepted frame and re-arms
// the loop. Frames from a cancelled run are ignored.
func (m Model) handleFrame(msg progress.FrameMsg) (tea.Model, tea.Cmd) {
	if !m.Loop.Accept(msg) {
		return m, nil
	}
	if m.Transport.Tick() {
		m.logger.Info("playback ended", "title", m.Transport.Asset().Info().Title)
	}
	return m, m.Loop.Next()
}
