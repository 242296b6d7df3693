// internal/player/state.go
package player

// State represents the transport state machine.
//
//	┌──────────┐      load       ┌──────────┐
//	│ Unloaded │ ───────────────▶│  Playing │
//	└──────────┘                 └──────────┘
//	     ▲                         │ ▲     │
//	     │ unload            pause │ │play │ end of stream
//	     │                         ▼ │     ▼
//	     │                       ┌──────────┐
//	     └───────────────────────│  Paused  │
//	                             └──────────┘
//
// A load without autoplay enters Paused. The end of a playthrough also
// leaves the stream loaded and Paused, so Seek + Play replays it.
type State int

const (
	Unloaded State = iota
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is loaded.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}
