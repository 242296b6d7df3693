// internal/playback/service.go
package playback

import (
	"context"
	"errors"
	"time"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

var (
	// ErrInvalidPosition is returned for verse or chapter addresses that do
	// not exist in the loaded index.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrInvalidRange is returned by SetRepeatRange for unusable bounds.
	ErrInvalidRange = errors.New("invalid repeat range")
	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("playback closed")
)

// DefaultMemorizationPause is used when no pause source is configured.
const DefaultMemorizationPause = 4 * time.Second

// ReciterStore persists the selected reciter id.
type ReciterStore interface {
	LoadReciter(ctx context.Context) (string, error)
	SaveReciter(ctx context.Context, id string) error
}

// Alerter shows a message to the user. Dismiss clears a failure alert
// once a stream loads again.
type Alerter interface {
	Alert(title, body string)
	Dismiss()
}

// Snapshot is a consistent copy of a player's observable state.
type Snapshot struct {
	State         State
	Verse         *quran.Position // Session only
	Chapter       int             // surah being played, 0 when none
	Reciter       reciter.Reciter
	RepeatMode    RepeatMode
	Range         Range
	Memorization  bool
	ReplayPending bool
	Loading       bool // a stream is being fetched
	Position      time.Duration
	Duration      time.Duration
}

// HasVerse reports whether a verse has been selected.
func (s Snapshot) HasVerse() bool {
	return s.Verse != nil
}
