// internal/player/interface.go
package player

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HandleID identifies one loaded stream. IDs are never reused by a
// transport, so a status event can always be matched to the load that
// produced it.
type HandleID uint64

// Status is a snapshot emitted by a transport while a stream is loaded.
type Status struct {
	Handle       HandleID
	Position     time.Duration
	Duration     time.Duration
	Playing      bool
	JustFinished bool // set on exactly one event per playthrough
}

// Transport owns at most one remote audio stream at a time.
type Transport interface {
	// Load fetches and decodes url. The previous stream must be unloaded
	// first. Failures are returned as *LoadError.
	Load(ctx context.Context, url string, autoplay bool) (HandleID, error)
	// Play resumes the loaded stream. After the end of a playthrough it
	// starts a new playthrough from the current position.
	Play() error
	Pause() error
	// Seek moves to position, clamped to [0, duration].
	Seek(position time.Duration) error
	// Unload releases the stream. Calling it with nothing loaded is a no-op.
	Unload() error
	// Status delivers events for the loaded stream.
	Status() <-chan Status
}

// ErrNotLoaded is returned by controls when no stream is loaded.
var ErrNotLoaded = errors.New("no stream loaded")

// LoadError reports a stream that could not be fetched or decoded.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Verify implementations at compile time.
var (
	_ Transport = (*Player)(nil)
	_ Transport = (*Mock)(nil)
)
