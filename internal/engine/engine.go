// Package engine renders decoded assets to the audio device.
//
// A Context is the scoped audio resource: it owns the speaker, a mixer that
// playback instances are attached to, and the output gain stage. Instances
// are one-shot: they play from a fixed offset until stopped or drained and
// cannot be paused or repositioned.
package engine

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/wavelet/internal/audio"
)

// ErrClosed is returned when starting playback on a released context.
var ErrClosed = errors.New("audio engine closed")

const (
	DefaultSampleRate = beep.SampleRate(44100)
	DefaultBuffer     = 100 * time.Millisecond
	resampleQuality   = 4
)

// Instance is a handle to a single render of an asset.
type Instance interface {
	// Stop silences the instance. Stopping twice is a no-op.
	Stop()
}

// Context owns the audio device for the lifetime of the player.
type Context struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	mixer      *beep.Mixer
	volume     *effects.Volume
	opened     time.Time
	closedAt   time.Duration
	closed     bool
}

// Open initializes the speaker at sampleRate and starts the output chain.
// Only one Context may be open at a time.
func Open(sampleRate beep.SampleRate, buffer time.Duration) (*Context, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(buffer)); err != nil {
		return nil, err
	}

	mixer := &beep.Mixer{}
	volume := &effects.Volume{Streamer: mixer, Base: 2}
	speaker.Play(volume)

	return &Context{
		sampleRate: sampleRate,
		mixer:      mixer,
		volume:     volume,
		opened:     time.Now(),
	}, nil
}

// Now returns the engine clock: time elapsed since the context was opened.
// It stops advancing once the context is closed.
func (c *Context) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.closedAt
	}
	return time.Since(c.opened)
}

// Start renders asset from offset and returns its instance.
func (c *Context) Start(asset *audio.Asset, offset time.Duration) (Instance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	var src beep.Streamer = asset.Streamer(offset)
	if rate := asset.Format().SampleRate; rate != c.sampleRate {
		src = beep.Resample(resampleQuality, rate, c.sampleRate, src)
	}

	inst := &instance{ctrl: &beep.Ctrl{Streamer: src}}
	speaker.Lock()
	c.mixer.Add(inst.ctrl)
	speaker.Unlock()
	return inst, nil
}

// SetGain sets the output gain. 0 silences output, 1 is unity.
func (c *Context) SetGain(gain float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	speaker.Lock()
	c.volume.Silent = gain <= 0
	c.volume.Volume = gainToVolume(gain)
	speaker.Unlock()
}

// Close stops all instances and releases the audio device.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closedAt = time.Since(c.opened)
	c.closed = true
	speaker.Clear()
	speaker.Close()
	return nil
}

// gainToVolume maps a linear gain to beep's base-2 volume exponent.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2; zero gain is handled by Silent.
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return -10
	}
	if gain >= 1 {
		return 0
	}
	return math.Log2(gain)
}

type instance struct {
	ctrl    *beep.Ctrl
	stopped bool
}

// Stop detaches the streamer; the mixer drops the drained ctrl on its next
// pass.
func (i *instance) Stop() {
	if i.stopped {
		return
	}
	speaker.Lock()
	i.ctrl.Streamer = nil
	speaker.Unlock()
	i.stopped = true
}
