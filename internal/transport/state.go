package transport

import "time"

// Phase is the externally visible state of the transport.
//
//	┌───────┐  load   ┌────────┐  play   ┌─────────┐  end   ┌───────┐
//	│ Empty │ ──────▶ │ Loaded │ ──────▶ │ Playing │ ─────▶ │ Ended │
//	└───────┘         └────────┘         └─────────┘        └───────┘
//	                      │          pause │     ▲ play        │  │
//	                      │ seek           ▼     │             │  │
//	                      │             ┌────────┐     seek    │  │
//	                      └───────────▶ │ Paused │ ◀───────────┘  │
//	                                    └────────┘                │
//	                    play from 0 ◀─────────────────────────────┘
//
// Seeking never changes Playing/Paused membership. Seeking from Loaded or
// Ended lands in Paused at the target offset. Unload returns to Empty from
// any phase.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseLoaded
	PhasePlaying
	PhasePaused
	PhaseEnded
)

// String returns the phase name for debugging.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "Empty"
	case PhaseLoaded:
		return "Loaded"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// HasAsset returns true if an asset is loaded in this phase.
func (p Phase) HasAsset() bool {
	return p != PhaseEmpty
}

// State is the transport's bookkeeping.
//
// While Playing, elapsed time is Now - Epoch + PauseOffset. Otherwise
// PauseOffset alone is authoritative.
type State struct {
	Playing     bool
	Muted       bool
	ReachedEnd  bool
	PauseOffset time.Duration
	Epoch       time.Duration
}
