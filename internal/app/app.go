// Package app binds the loader, transport and player bar into a bubbletea
// program.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelet/internal/config"
	"github.com/llehouerou/wavelet/internal/errmsg"
	"github.com/llehouerou/wavelet/internal/keymap"
	"github.com/llehouerou/wavelet/internal/loader"
	"github.com/llehouerou/wavelet/internal/progress"
	"github.com/llehouerou/wavelet/internal/state"
	"github.com/llehouerou/wavelet/internal/transport"
)

const defaultWidth = 80

// Deps are the collaborators the model drives. Engine and Store may be nil
// when no audio device or state database is available.
type Deps struct {
	Engine transport.Engine
	Store  state.Interface
	Loader *loader.Loader
	Logger *log.Logger
}

// Model is the bubbletea model for the player widget.
type Model struct {
	Config    *config.Config
	Transport *transport.Controller
	Loop      *progress.Loop
	Loader    *loader.Loader
	Store     state.Interface
	Keys      *keymap.Resolver
	Source    string

	Help     help.Model
	ShowHelp bool
	Spinner  spinner.Model
	Width    int

	loading   bool
	reloading bool
	loadErr   string
	pending   loader.Request
	fetchCtx  context.Context //nolint:containedctx // scoped to one fetch, cancelled by reload/quit
	cancel    context.CancelFunc
	logger    *log.Logger
}

// New creates the model. When source is non-empty a load request is issued;
// Init starts fetching it.
func New(cfg *config.Config, source string, deps Deps) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	ld := deps.Loader
	if ld == nil {
		ld = loader.New(cfg.FetchTimeout, logger)
	}

	loop := progress.NewLoop(cfg.FrameInterval)
	m := Model{
		Config:    cfg,
		Transport: transport.New(deps.Engine, loop, logger),
		Loop:      loop,
		Loader:    ld,
		Store:     deps.Store,
		Keys:      keymap.NewResolver(keymap.All),
		Source:    source,
		Help:      help.New(),
		Spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		Width:     defaultWidth,
		logger:    logger.WithPrefix("app"),
	}

	m.restoreVolume()

	if source != "" {
		m.beginLoad()
	}
	return m
}

// Init starts the initial fetch.
func (m Model) Init() tea.Cmd {
	if !m.loading {
		return nil
	}
	return tea.Batch(m.fetchPending(), m.Spinner.Tick)
}

func (m *Model) restoreVolume() {
	if m.Store == nil || !m.Config.RememberVolume {
		return
	}
	v, err := m.Store.GetVolume()
	if err != nil {
		m.logger.Warn("restore volume", "err", err)
		return
	}
	m.Transport.SetVolume(v.Volume)
	m.Transport.SetMuted(v.Muted)
}

func (m *Model) saveVolume() {
	if m.Store == nil || !m.Config.RememberVolume {
		return
	}
	m.Store.SaveVolume(m.Transport.Volume(), m.Transport.Muted())
}

// beginLoad tears down the current asset and issues a new request for
// Source. Any in-flight fetch is cancelled and its result will be stale.
func (m *Model) beginLoad() {
	if m.cancel != nil {
		m.cancel()
	}
	m.Transport.Unload()
	m.fetchCtx, m.cancel = context.WithCancel(context.Background())
	m.pending = m.Loader.Begin(m.Source)
	m.loading = true
	m.reloading = false
	m.loadErr = ""
}

func (m Model) fetchPending() tea.Cmd {
	return FetchCmd(m.fetchCtx, m.Loader, m.pending)
}

// Close stops playback and releases the engine and store. It is safe to
// call more than once.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if err := m.Transport.Close(); err != nil {
		m.logger.Error("close engine", "err", err)
	}
	if m.Store == nil {
		return
	}
	if err := m.Store.Flush(); err != nil {
		m.logger.Error(errmsg.Format(errmsg.OpVolumeSave, err))
	}
	if err := m.Store.Close(); err != nil {
		m.logger.Error("close state", "err", err)
	}
	m.Store = nil
}
