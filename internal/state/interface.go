package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetVolume() (*VolumeState, error)
	SaveVolume(volume float64, muted bool)
	Flush() error
	RecordLoad(e LoadEntry) error
	History(limit int) ([]LoadEntry, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
