package app

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wavelet/internal/audio"
	"github.com/llehouerou/wavelet/internal/audio/audiotest"
	"github.com/llehouerou/wavelet/internal/config"
	"github.com/llehouerou/wavelet/internal/engine"
	"github.com/llehouerou/wavelet/internal/icons"
	"github.com/llehouerou/wavelet/internal/loader"
	"github.com/llehouerou/wavelet/internal/progress"
	"github.com/llehouerou/wavelet/internal/state"
	"github.com/llehouerou/wavelet/internal/transport"
)

type testEnv struct {
	model Model
	eng   *engine.Mock
	store *state.Mock
}

func newTestModel(t *testing.T, cfg *config.Config) testEnv {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	cfg.FrameInterval = 16 * time.Millisecond
	icons.Init("none")

	logger := log.New(io.Discard)
	eng := engine.NewMock()
	store := state.NewMock()
	m := New(cfg, "https://example.com/tone.wav", Deps{
		Engine: eng,
		Store:  store,
		Loader: loader.New(time.Second, logger),
		Logger: logger,
	})
	return testEnv{model: m, eng: eng, store: store}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	require.True(t, ok, "Update should return Model")
	return result, cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(m Model, d time.Duration) LoadedMsg {
	asset := audiotest.AssetWithInfo(d, audio.Info{Title: "Tone", Kind: audio.KindWAV})
	return LoadedMsg{Result: loader.Result{Request: m.pending, Asset: asset}}
}

// loadedModel returns a model with a 10s asset loaded.
func loadedModel(t *testing.T, cfg *config.Config) testEnv {
	t.Helper()
	env := newTestModel(t, cfg)
	env.model, _ = update(t, env.model, loaded(env.model, 10*time.Second))
	require.Equal(t, transport.PhaseLoaded, env.model.Transport.Phase())
	return env
}

func TestNew_IssuesInitialLoad(t *testing.T) {
	env := newTestModel(t, nil)

	assert.True(t, env.model.loading)
	assert.Equal(t, uint64(1), env.model.pending.Token)
	assert.NotNil(t, env.model.Init())
	assert.Equal(t, transport.PhaseEmpty, env.model.Transport.Phase())
	assert.Contains(t, env.model.View(), "Loading")
}

func TestNew_NoSourceIsIdle(t *testing.T) {
	m := New(config.Default(), "", Deps{Engine: engine.NewMock(), Logger: log.New(io.Discard)})

	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "No audio loaded")
}

func TestNew_RestoresVolume(t *testing.T) {
	store := state.NewMock()
	store.SetVolume(state.VolumeState{Volume: 0.4, Muted: true})
	eng := engine.NewMock()

	m := New(config.Default(), "", Deps{Engine: eng, Store: store, Logger: log.New(io.Discard)})

	assert.InDelta(t, 0.4, m.Transport.Volume(), 1e-9)
	assert.True(t, m.Transport.Muted())
	assert.Zero(t, eng.Gain())
}

func TestNew_RememberVolumeDisabled(t *testing.T) {
	store := state.NewMock()
	store.SetVolume(state.VolumeState{Volume: 0.4, Muted: true})
	cfg := config.Default()
	cfg.RememberVolume = false

	m := New(cfg, "", Deps{Engine: engine.NewMock(), Store: store, Logger: log.New(io.Discard)})

	assert.InDelta(t, 1.0, m.Transport.Volume(), 1e-9)
	assert.False(t, m.Transport.Muted())
}

func TestUpdate_LoadedArmsTransport(t *testing.T) {
	env := loadedModel(t, nil)

	assert.False(t, env.model.loading)
	assert.Empty(t, env.eng.Starts(), "no autoplay by default")

	history, _ := env.store.History(0)
	require.Len(t, history, 1)
	assert.Equal(t, "Tone", history[0].Title)
	assert.Equal(t, "WAV", history[0].Format)
	assert.Equal(t, 10*time.Second, history[0].Duration)

	assert.Contains(t, env.model.View(), "0:00 / 0:10")
}

func TestUpdate_StaleLoadIgnored(t *testing.T) {
	env := newTestModel(t, nil)
	stale := loaded(env.model, 10*time.Second)

	env.model, _ = update(t, env.model, keyPress("r"))
	require.Equal(t, uint64(2), env.model.pending.Token)

	env.model, _ = update(t, env.model, stale)
	assert.Equal(t, transport.PhaseEmpty, env.model.Transport.Phase())
	assert.True(t, env.model.loading)

	env.model, _ = update(t, env.model, loaded(env.model, 3*time.Second))
	assert.Equal(t, 3*time.Second, env.model.Transport.Duration())
}

func TestUpdate_LoadFailure(t *testing.T) {
	env := newTestModel(t, nil)
	msg := LoadedMsg{Result: loader.Result{Request: env.model.pending, Err: loader.ErrStatus}}

	env.model, _ = update(t, env.model, msg)

	assert.False(t, env.model.loading)
	assert.Equal(t, transport.PhaseEmpty, env.model.Transport.Phase())
	assert.Contains(t, env.model.View(), "Failed to load audio 'tone.wav'")

	env.model, _ = update(t, env.model, keyPress(" "))
	assert.Empty(t, env.eng.Starts(), "controls are inert without an asset")
}

func TestUpdate_Autoplay(t *testing.T) {
	cfg := config.Default()
	cfg.Autoplay = true
	env := newTestModel(t, cfg)

	var cmd tea.Cmd
	env.model, cmd = update(t, env.model, loaded(env.model, 10*time.Second))

	assert.Equal(t, transport.PhasePlaying, env.model.Transport.Phase())
	assert.NotNil(t, cmd, "refresh loop scheduled")
}

func TestUpdate_PlayStartsFrameLoop(t *testing.T) {
	env := loadedModel(t, nil)

	m, cmd := update(t, env.model, keyPress(" "))
	require.NotNil(t, cmd)
	assert.Equal(t, transport.PhasePlaying, m.Transport.Phase())
	assert.True(t, m.Loop.Running())

	frame, ok := cmd().(progress.FrameMsg)
	require.True(t, ok)

	env.eng.Advance(2 * time.Second)
	m, cmd = update(t, m, frame)
	assert.NotNil(t, cmd, "loop re-arms while playing")
	assert.Contains(t, m.View(), "0:02 / 0:10")
}

func TestUpdate_StaleFrameIgnoredAfterPause(t *testing.T) {
	env := loadedModel(t, nil)

	m, cmd := update(t, env.model, keyPress(" "))
	frame := cmd().(progress.FrameMsg)

	m, _ = update(t, m, keyPress(" "))
	assert.Equal(t, transport.PhasePaused, m.Transport.Phase())

	m, cmd = update(t, m, frame)
	assert.Nil(t, cmd, "frame of a cancelled loop must not re-arm")
}

func TestUpdate_PlayTwiceKeepsSingleLoop(t *testing.T) {
	env := loadedModel(t, nil)

	m, first := update(t, env.model, keyPress(" "))
	require.NotNil(t, first)
	m, _ = update(t, m, keyPress(" ")) // pause
	m, second := update(t, m, keyPress(" "))
	require.NotNil(t, second)

	oldFrame := first().(progress.FrameMsg)
	_, cmd := update(t, m, oldFrame)
	assert.Nil(t, cmd)
	assert.Equal(t, 1, env.eng.Active())
}

func TestUpdate_FrameDetectsEnd(t *testing.T) {
	env := loadedModel(t, nil)

	m, cmd := update(t, env.model, keyPress(" "))
	frame := cmd().(progress.FrameMsg)

	env.eng.Advance(10 * time.Second)
	m, cmd = update(t, m, frame)

	assert.Nil(t, cmd)
	assert.Equal(t, transport.PhaseEnded, m.Transport.Phase())
	assert.False(t, m.Loop.Running())
	assert.Contains(t, m.View(), "0:10 / 0:10")
}

func TestUpdate_SeekKeys(t *testing.T) {
	env := loadedModel(t, nil)
	m := env.model

	m, _ = update(t, m, keyPress("5"))
	assert.Equal(t, 5*time.Second, m.Transport.Elapsed())
	assert.Equal(t, transport.PhasePaused, m.Transport.Phase())

	m, _ = update(t, m, keyPress("right"))
	assert.Equal(t, 5500*time.Millisecond, m.Transport.Elapsed())

	m, _ = update(t, m, keyPress("left"))
	m, _ = update(t, m, keyPress("left"))
	assert.Equal(t, 4500*time.Millisecond, m.Transport.Elapsed())

	m, _ = update(t, m, keyPress("end"))
	assert.Equal(t, 10*time.Second, m.Transport.Elapsed())

	m, _ = update(t, m, keyPress("home"))
	assert.Zero(t, m.Transport.Elapsed())
}

func TestUpdate_MuteAndVolumePersist(t *testing.T) {
	env := loadedModel(t, nil)
	m := env.model

	m, _ = update(t, m, keyPress("m"))
	assert.True(t, m.Transport.Muted())
	assert.Zero(t, env.eng.Gain())

	v, _ := env.store.GetVolume()
	assert.True(t, v.Muted)

	m, _ = update(t, m, keyPress("-"))
	assert.InDelta(t, 0.95, m.Transport.Volume(), 1e-9)
	assert.Zero(t, env.eng.Gain(), "still muted")

	m, _ = update(t, m, keyPress("m"))
	assert.InDelta(t, 0.95, env.eng.Gain(), 1e-9)
	assert.Equal(t, 3, env.store.VolumeSaves())

	m, _ = update(t, m, keyPress("+"))
	m, _ = update(t, m, keyPress("+"))
	assert.InDelta(t, 1.0, m.Transport.Volume(), 1e-9)
}

func TestUpdate_MuteKeepsPosition(t *testing.T) {
	env := loadedModel(t, nil)

	m, _ := update(t, env.model, keyPress(" "))
	env.eng.Advance(3 * time.Second)
	m, _ = update(t, m, keyPress("m"))

	assert.Equal(t, transport.PhasePlaying, m.Transport.Phase())
	assert.Equal(t, 3*time.Second, m.Transport.Elapsed())
	assert.Len(t, env.eng.Starts(), 1)
}

func TestUpdate_ReloadTearsDown(t *testing.T) {
	env := loadedModel(t, nil)

	m, _ := update(t, env.model, keyPress(" "))
	m, cmd := update(t, m, keyPress("r"))

	assert.NotNil(t, cmd)
	assert.Equal(t, transport.PhaseEmpty, m.Transport.Phase())
	assert.Zero(t, env.eng.Active())
	assert.False(t, m.Loop.Running())
	assert.True(t, m.loading)
}

func TestUpdate_HelpToggle(t *testing.T) {
	env := loadedModel(t, nil)

	m, _ := update(t, env.model, keyPress("?"))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Volume up")

	m, _ = update(t, m, keyPress("?"))
	assert.False(t, m.ShowHelp)
}

func TestUpdate_WindowSize(t *testing.T) {
	env := newTestModel(t, nil)

	m, _ := update(t, env.model, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.Width)
}

func TestUpdate_QuitReleasesResources(t *testing.T) {
	env := loadedModel(t, nil)

	m, _ := update(t, env.model, keyPress(" "))
	m, cmd := update(t, m, keyPress("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, env.eng.Closed())
	assert.True(t, env.store.IsClosed())
	assert.False(t, m.Transport.Available())
}

func TestClose_FlushesVolumeOnce(t *testing.T) {
	env := loadedModel(t, nil)
	env.store.SetFlushError(errors.New("disk full"))

	m, _ := update(t, env.model, keyPress(" "))
	m.Close()
	m.Close()

	assert.Equal(t, 1, env.store.Flushes())
	assert.True(t, env.store.IsClosed())
	assert.True(t, env.eng.Closed())
	assert.Zero(t, env.eng.Active())
	assert.Equal(t, transport.PhaseEmpty, m.Transport.Phase())
	assert.Nil(t, m.Store)
}

func TestUpdate_ReloadFailureNamesReload(t *testing.T) {
	env := loadedModel(t, nil)

	m, _ := update(t, env.model, keyPress("r"))
	msg := LoadedMsg{Result: loader.Result{Request: m.pending, Err: loader.ErrStatus}}
	m, _ = update(t, m, msg)

	assert.Contains(t, m.View(), "Failed to reload audio 'tone.wav'")
}

func TestUpdate_NoEngine(t *testing.T) {
	m := New(config.Default(), "x.wav", Deps{Logger: log.New(io.Discard)})
	m, _ = update(t, m, loaded(m, 5*time.Second))

	m, cmd := update(t, m, keyPress(" "))
	assert.Nil(t, cmd)
	assert.Equal(t, transport.PhaseLoaded, m.Transport.Phase())

	_, cmd = update(t, m, keyPress("q"))
	require.NotNil(t, cmd)
}

func TestUpdate_RecordLoadFailureIsNotFatal(t *testing.T) {
	env := newTestModel(t, nil)
	env.model.Store = failingStore{Mock: state.NewMock()}

	m, _ := update(t, env.model, loaded(env.model, time.Second))
	assert.Equal(t, transport.PhaseLoaded, m.Transport.Phase())
}

type failingStore struct{ *state.Mock }

func (failingStore) RecordLoad(state.LoadEntry) error { return errors.New("disk full") }
