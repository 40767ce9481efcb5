package state

// Mock is a test double for Manager.
type Mock struct {
	volume   VolumeState
	saves    int
	history  []LoadEntry
	flushes  int
	flushErr error
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{volume: VolumeState{Volume: 1.0}}
}

func (m *Mock) GetVolume() (*VolumeState, error) {
	v := m.volume
	return &v, nil
}

func (m *Mock) SaveVolume(volume float64, muted bool) {
	m.volume = VolumeState{Volume: volume, Muted: muted}
	m.saves++
}

func (m *Mock) Flush() error {
	m.flushes++
	return m.flushErr
}

func (m *Mock) RecordLoad(e LoadEntry) error {
	m.history = append([]LoadEntry{e}, m.history...)
	return nil
}

func (m *Mock) History(limit int) ([]LoadEntry, error) {
	if limit > 0 && limit < len(m.history) {
		return m.history[:limit], nil
	}
	return m.history, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetVolume(v VolumeState) { m.volume = v }

func (m *Mock) VolumeSaves() int { return m.saves }

func (m *Mock) SetFlushError(err error) { m.flushErr = err }

func (m *Mock) Flushes() int { return m.flushes }

func (m *Mock) IsClosed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
