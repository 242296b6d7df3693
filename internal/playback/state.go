// internal/playback/state.go
package playback

import (
	"fmt"
	"strings"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// RepeatMode defines what happens when a verse finishes.
type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatSingle
	RepeatRange
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatNone:
		return "None"
	case RepeatSingle:
		return "Single"
	case RepeatRange:
		return "Range"
	default:
		return "Unknown"
	}
}

// Next returns the mode that follows m in the UI cycle.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatSingle
	case RepeatSingle:
		return RepeatRange
	default:
		return RepeatNone
	}
}

// ParseRepeatMode parses a mode name, case-insensitively.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return RepeatNone, nil
	case "single", "one":
		return RepeatSingle, nil
	case "range":
		return RepeatRange, nil
	default:
		return RepeatNone, fmt.Errorf("unknown repeat mode %q", s)
	}
}

// Range is an inclusive verse range within the current chapter.
type Range struct {
	Start int
	End   int
}

// Valid reports whether 1 <= Start <= End.
func (r Range) Valid() bool {
	return r.Start >= 1 && r.Start <= r.End
}

// Contains reports whether ayah lies within the range.
func (r Range) Contains(ayah int) bool {
	return ayah >= r.Start && ayah <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
