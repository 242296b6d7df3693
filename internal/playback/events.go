package playback

import (
	"time"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// VerseChange is emitted by a Session when a different verse is loaded.
// Replaying the same verse does not emit it.
type VerseChange struct {
	Previous *quran.Position
	Current  *quran.Position
}

// ChapterChange is emitted by a ChapterPlayer when a different chapter
// is loaded.
type ChapterChange struct {
	Previous int
	Current  int
}

// ModeChange is emitted when the repeat mode, the range or memorization
// mode changes.
type ModeChange struct {
	RepeatMode   RepeatMode
	Range        Range
	Memorization bool
}

// ReciterChange is emitted when the selected reciter changes.
type ReciterChange struct {
	Reciter reciter.Reciter
}

// PositionChange is emitted as playback progresses or after a seek.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play verse", "seek"
	URL       string // stream URL if applicable
	Err       error
}
