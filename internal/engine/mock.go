package engine

import (
	"errors"
	"time"

	"github.com/llehouerou/wavelet/internal/audio"
)

// Mock is a test double for Context with a manually advanced clock.
type Mock struct {
	now       time.Duration
	gain      float64
	startErr  error
	starts    []time.Duration
	instances []*MockInstance
	closed    bool
}

// NewMock creates a mock engine at time zero with unity gain.
func NewMock() *Mock {
	return &Mock{gain: 1}
}

// MockInstance records whether it was stopped and how often.
type MockInstance struct {
	Offset    time.Duration
	StopCalls int
}

// Stop marks the instance stopped.
func (i *MockInstance) Stop() { i.StopCalls++ }

// Stopped reports whether Stop was called at least once.
func (i *MockInstance) Stopped() bool { return i.StopCalls > 0 }

func (m *Mock) Now() time.Duration { return m.now }

func (m *Mock) Start(_ *audio.Asset, offset time.Duration) (Instance, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if m.startErr != nil {
		return nil, m.startErr
	}
	inst := &MockInstance{Offset: offset}
	m.starts = append(m.starts, offset)
	m.instances = append(m.instances, inst)
	return inst, nil
}

func (m *Mock) SetGain(gain float64) {
	if m.closed {
		return
	}
	m.gain = gain
}

func (m *Mock) Close() error {
	if m.closed {
		return errors.New("mock engine closed twice")
	}
	m.closed = true
	return nil
}

// Test helpers

// Advance moves the engine clock forward.
func (m *Mock) Advance(d time.Duration) { m.now += d }

// SetStartError makes subsequent Start calls fail with err.
func (m *Mock) SetStartError(err error) { m.startErr = err }

// Gain returns the last gain applied.
func (m *Mock) Gain() float64 { return m.gain }

// Starts returns the offsets of every Start call, in order.
func (m *Mock) Starts() []time.Duration { return m.starts }

// Instances returns every instance created, in order.
func (m *Mock) Instances() []*MockInstance { return m.instances }

// Active returns the number of instances that have not been stopped.
func (m *Mock) Active() int {
	n := 0
	for _, inst := range m.instances {
		if !inst.Stopped() {
			n++
		}
	}
	return n
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool { return m.closed }
