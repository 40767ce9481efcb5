// Package progress drives the display refresh loop while audio is playing.
package progress

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultInterval is the frame period when none is configured.
	DefaultInterval = 50 * time.Millisecond

	minInterval = 16 * time.Millisecond
	maxInterval = time.Second
)

// FrameMsg is delivered once per frame. Gen identifies the loop run that
// scheduled it; frames from a stopped run are ignored.
type FrameMsg struct {
	Gen uint64
	At  time.Time
}

// Loop is a cancellable frame scheduler. Start and Stop are called by the
// transport; the bubbletea model collects the pending command after each
// action and re-arms the loop from every accepted frame.
//
// At most one frame is in flight per run, so repeated Start calls never
// produce overlapping loops.
type Loop struct {
	interval time.Duration
	gen      uint64
	running  bool
	pending  bool
}

// NewLoop creates a stopped loop. The interval is clamped to [16ms, 1s];
// zero selects DefaultInterval.
func NewLoop(interval time.Duration) *Loop {
	if interval == 0 {
		interval = DefaultInterval
	}
	return &Loop{interval: min(max(interval, minInterval), maxInterval)}
}

// Start begins a new run. It is a no-op while running.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.gen++
	l.running = true
	l.pending = true
}

// Stop cancels the current run. Frames already scheduled are discarded by
// Accept.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.gen++
	l.running = false
	l.pending = false
}

// Running reports whether a run is active.
func (l *Loop) Running() bool { return l.running }

// Interval returns the frame period.
func (l *Loop) Interval() time.Duration { return l.interval }

// Accept reports whether msg belongs to the current run.
func (l *Loop) Accept(msg FrameMsg) bool {
	return l.running && msg.Gen == l.gen
}

// Pending returns the first frame command of a run started since the last
// call, or nil.
func (l *Loop) Pending() tea.Cmd {
	if !l.pending {
		return nil
	}
	l.pending = false
	return l.frame()
}

// Next schedules the following frame of the current run, or returns nil when
// stopped.
func (l *Loop) Next() tea.Cmd {
	if !l.running {
		return nil
	}
	return l.frame()
}

func (l *Loop) frame() tea.Cmd {
	gen := l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, At: t}
	})
}
