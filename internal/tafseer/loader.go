// Package tafseer loads verse commentary. Only the most recent request is
// live: starting a load cancels the one before it.
package tafseer

import (
	"context"
	"errors"
	"sync"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/qurancom"
)

// Placeholder is shown when no commentary is available for a verse.
const Placeholder = "Tafseer (detailed explanation) coming soon..."

// ErrSuperseded is returned by a load that a newer load replaced.
var ErrSuperseded = errors.New("tafseer load superseded")

// Fetcher retrieves commentary. *qurancom.Client implements it.
type Fetcher interface {
	Tafsir(ctx context.Context, tafsirID int, pos quran.Position) (*qurancom.Tafsir, error)
}

var _ Fetcher = (*qurancom.Client)(nil)

// Result is the outcome of a load.
type Result struct {
	Position quran.Position
	Resource string // commentary name, empty for the placeholder
	Text     string
	Source   string // "api", "placeholder"
	Err      error
}

// Loader fetches commentary for one verse at a time.
type Loader struct {
	fetcher  Fetcher
	tafsirID int

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLoader creates a Loader for commentary tafsirID.
func NewLoader(fetcher Fetcher, tafsirID int) *Loader {
	return &Loader{fetcher: fetcher, tafsirID: tafsirID}
}

// Load fetches commentary for pos, cancelling any load still in flight.
// A missing commentary yields the placeholder text, not an error.
func (l *Loader) Load(ctx context.Context, pos quran.Position) Result {
	ctx, gen := l.begin(ctx)

	t, err := l.fetcher.Tafsir(ctx, l.tafsirID, pos)

	if !l.finish(gen) {
		return Result{Position: pos, Err: ErrSuperseded}
	}
	switch {
	case errors.Is(err, qurancom.ErrNotFound):
		return Result{Position: pos, Text: Placeholder, Source: "placeholder"}
	case err != nil:
		return Result{Position: pos, Text: Placeholder, Source: "placeholder", Err: err}
	}
	return Result{
		Position: pos,
		Resource: t.ResourceName,
		Text:     qurancom.PlainText(t.Text),
		Source:   "api",
	}
}

// Cancel aborts the load in flight, if any.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loader) begin(parent context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

// finish releases the context of load gen and reports whether it is still
// the current load.
func (l *Loader) finish(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.cancel()
	l.cancel = nil
	return true
}
