// Package transport implements play/pause/seek/mute control over one-shot
// engine playback instances.
//
// The engine can only render an asset from a fixed offset, so the
// controller keeps its own playback clock: an epoch on the engine clock plus
// an accumulated pause offset. Every resume or seek while playing stops the
// current instance and starts a new one at the tracked position.
//
// The controller is not safe for concurrent use. It is driven from a single
// event loop together with the display refresh loop it starts and stops.
package transport

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/wavelet/internal/audio"
	"github.com/llehouerou/wavelet/internal/engine"
	"github.com/llehouerou/wavelet/internal/errmsg"
)

// Engine is the audio capability the controller drives.
type Engine interface {
	Now() time.Duration
	Start(asset *audio.Asset, offset time.Duration) (engine.Instance, error)
	SetGain(gain float64)
	Close() error
}

// Ticker is the display refresh loop. The controller starts it when playback
// starts and stops it on every path that ends playback.
type Ticker interface {
	Start()
	Stop()
}

// Controller owns the transport state for one asset.
type Controller struct {
	engine   Engine
	ticker   Ticker
	logger   *log.Logger
	asset    *audio.Asset
	instance engine.Instance
	state    State
	started  bool
	volume   float64
}

// New creates a controller. eng may be nil when no audio device is
// available; every operation is then a no-op.
func New(eng Engine, ticker Ticker, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	if ticker == nil {
		ticker = nopTicker{}
	}
	c := &Controller{
		engine: eng,
		ticker: ticker,
		logger: logger.WithPrefix("transport"),
		volume: 1,
	}
	if eng != nil {
		eng.SetGain(c.gain())
	}
	return c
}

// Load replaces the current asset. Any playback is stopped and the position
// is reset; mute and volume are kept.
func (c *Controller) Load(asset *audio.Asset) {
	c.reset()
	c.asset = asset
	if asset != nil {
		c.logger.Debug("asset loaded", "title", asset.Info().Title, "duration", asset.Duration())
	}
}

// Unload drops the current asset and returns to Empty.
func (c *Controller) Unload() {
	c.reset()
	c.asset = nil
}

func (c *Controller) reset() {
	c.stopInstance()
	c.ticker.Stop()
	c.state = State{Muted: c.state.Muted}
	c.started = false
}

// Play starts or resumes playback. It is a no-op when already playing, when
// no asset is loaded, or when the engine is unavailable. From Ended it
// restarts at the beginning.
func (c *Controller) Play() {
	if !c.armed() || c.state.Playing {
		return
	}
	if c.state.ReachedEnd {
		c.state.PauseOffset = 0
		c.state.ReachedEnd = false
	}

	offset := c.state.PauseOffset
	if !c.startInstance(errmsg.OpPlaybackStart, offset) {
		return
	}

	c.state.Epoch = c.engine.Now() - offset
	c.state.Playing = true
	c.state.PauseOffset = 0 // folded into the epoch
	c.started = true
	c.ticker.Start()
	c.logger.Debug("play", "offset", offset)
}

// Pause stops the current instance and freezes the position.
func (c *Controller) Pause() {
	if !c.armed() || !c.state.Playing {
		return
	}
	c.stopInstance()
	c.state.PauseOffset = min(c.state.PauseOffset+c.engine.Now()-c.state.Epoch, c.asset.Duration())
	c.state.Playing = false
	c.ticker.Stop()
	c.logger.Debug("pause", "offset", c.state.PauseOffset)
}

// Toggle pauses when playing and plays otherwise.
func (c *Controller) Toggle() {
	if c.state.Playing {
		c.Pause()
		return
	}
	c.Play()
}

// Seek moves to percent (0-100) of the asset. While playing, the current
// instance is replaced by one starting at the target; otherwise only the
// position changes. Seeking from Ended leaves Ended and lands in Paused.
func (c *Controller) Seek(percent float64) {
	if !c.armed() || math.IsNaN(percent) {
		return
	}
	percent = clamp(percent, 0, 100)
	target := time.Duration(math.Round(percent / 100 * float64(c.asset.Duration())))

	c.state.ReachedEnd = false
	c.started = true

	if c.state.Playing {
		c.stopInstance()
		if !c.startInstance(errmsg.OpPlaybackSeek, target) {
			c.state.Playing = false
			c.ticker.Stop()
		} else {
			c.state.Epoch = c.engine.Now()
		}
	}
	c.state.PauseOffset = target
	c.logger.Debug("seek", "percent", percent, "target", target, "playing", c.state.Playing)
}

// SeekBy moves the position by delta percent points.
func (c *Controller) SeekBy(delta float64) {
	if !c.armed() {
		return
	}
	c.Seek(c.Progress() + delta)
}

// ToggleMute flips the mute state and applies the matching gain. Playback
// position and play state are untouched.
func (c *Controller) ToggleMute() {
	c.SetMuted(!c.state.Muted)
}

// SetMuted sets the mute state.
func (c *Controller) SetMuted(muted bool) {
	if c.engine == nil {
		return
	}
	c.state.Muted = muted
	c.engine.SetGain(c.gain())
}

// SetVolume sets the unmuted gain level, clamped to [0, 1].
func (c *Controller) SetVolume(level float64) {
	if math.IsNaN(level) {
		return
	}
	c.volume = clamp(level, 0, 1)
	if c.engine != nil {
		c.engine.SetGain(c.gain())
	}
}

// Volume returns the unmuted gain level.
func (c *Controller) Volume() float64 { return c.volume }

// Muted returns true if output is muted.
func (c *Controller) Muted() bool { return c.state.Muted }

func (c *Controller) gain() float64 {
	if c.state.Muted {
		return 0
	}
	return c.volume
}

// Tick recomputes the position and detects the natural end of the asset.
// It returns true exactly once per playthrough, on the tick that ends it.
//
// The end is reached when the elapsed whole seconds equal the asset's whole
// seconds (or, for sub-second assets, when elapsed covers the duration).
func (c *Controller) Tick() bool {
	if !c.armed() || !c.state.Playing {
		return false
	}
	if !reachedEnd(c.rawElapsed(), c.asset.Duration()) {
		return false
	}

	c.stopInstance()
	c.state.Playing = false
	c.state.ReachedEnd = true
	c.state.PauseOffset = 0
	c.ticker.Stop()
	c.logger.Debug("ended", "duration", c.asset.Duration())
	return true
}

func reachedEnd(elapsed, duration time.Duration) bool {
	if elapsed >= duration {
		return true
	}
	if duration < time.Second {
		return false
	}
	return elapsed/time.Second == duration/time.Second
}

// Elapsed returns the current position, clamped to the asset duration. After
// the natural end it reports the full duration.
func (c *Controller) Elapsed() time.Duration {
	if c.asset == nil {
		return 0
	}
	if c.state.ReachedEnd {
		return c.asset.Duration()
	}
	return clampDuration(c.rawElapsed(), 0, c.asset.Duration())
}

func (c *Controller) rawElapsed() time.Duration {
	if c.state.Playing && c.engine != nil {
		return c.engine.Now() - c.state.Epoch + c.state.PauseOffset
	}
	return c.state.PauseOffset
}

// Progress returns the position as a percentage of the duration in [0, 100].
func (c *Controller) Progress() float64 {
	d := c.Duration()
	if d <= 0 {
		if c.state.ReachedEnd {
			return 100
		}
		return 0
	}
	return clamp(float64(c.Elapsed())/float64(d)*100, 0, 100)
}

// Duration returns the loaded asset's duration, or 0.
func (c *Controller) Duration() time.Duration {
	return c.asset.Duration()
}

// Asset returns the loaded asset, or nil.
func (c *Controller) Asset() *audio.Asset { return c.asset }

// Phase returns the current state machine phase.
func (c *Controller) Phase() Phase {
	switch {
	case c.asset == nil:
		return PhaseEmpty
	case c.state.Playing:
		return PhasePlaying
	case c.state.ReachedEnd:
		return PhaseEnded
	case c.started:
		return PhasePaused
	default:
		return PhaseLoaded
	}
}

// IsPlaying returns true while an instance is rendering.
func (c *Controller) IsPlaying() bool { return c.state.Playing }

// Snapshot returns a copy of the transport bookkeeping.
func (c *Controller) Snapshot() State { return c.state }

// Available returns false when there is no engine to drive.
func (c *Controller) Available() bool { return c.engine != nil }

// Close stops playback, drops the asset and releases the engine. The phase
// returns to Empty and all later operations are no-ops.
func (c *Controller) Close() error {
	c.Unload()
	if c.engine == nil {
		return nil
	}
	err := c.engine.Close()
	c.engine = nil
	return err
}

// armed reports whether transport operations can act.
func (c *Controller) armed() bool {
	return c.asset != nil && c.engine != nil
}

// startInstance stops any current instance, then starts a new one at offset.
func (c *Controller) startInstance(op errmsg.Op, offset time.Duration) bool {
	c.stopInstance()
	inst, err := c.engine.Start(c.asset, offset)
	if err != nil {
		c.logger.Error(errmsg.Format(op, err), "offset", offset)
		c.state.PauseOffset = offset
		return false
	}
	c.instance = inst
	return true
}

func (c *Controller) stopInstance() {
	if c.instance == nil {
		return
	}
	c.instance.Stop()
	c.instance = nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	return min(max(d, lo), hi)
}

type nopTicker struct{}

func (nopTicker) Start() {}
func (nopTicker) Stop()  {}
