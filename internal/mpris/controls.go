package mpris

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/playback"
	"github.com/quranpulse/quranpulse/internal/quran"
)

// Controls is what media keys drive. Next and Previous move by verse for
// a session and by chapter for a chapter player.
type Controls interface {
	Snapshot() playback.Snapshot
	TogglePlayPause(ctx context.Context) error
	SeekTo(ctx context.Context, position time.Duration) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
}

// Options configures an Adapter. Logger is optional.
type Options struct {
	Controls Controls
	Index    *quran.Index
	Logger   *log.Logger
}

// SessionControls adapts a verse session to Controls.
type SessionControls struct {
	*playback.Session
}

func (s SessionControls) Next(ctx context.Context) error {
	return s.NextAyah(ctx)
}

func (s SessionControls) Previous(ctx context.Context) error {
	return s.PreviousAyah(ctx)
}

var (
	_ Controls = SessionControls{}
	_ Controls = (*playback.ChapterPlayer)(nil)
)
