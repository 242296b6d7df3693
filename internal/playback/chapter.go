// internal/playback/chapter.go
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/errmsg"
	"github.com/quranpulse/quranpulse/internal/player"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

// ChapterOptions wires a ChapterPlayer. Store, Alerter and Logger are
// optional.
type ChapterOptions struct {
	Transport player.Transport
	Index     *quran.Index
	Reciters  *reciter.Registry
	Resolver  reciter.ChapterResolver
	Store     ReciterStore
	Alerter   Alerter
	Logger    *log.Logger
}

// ChapterPlayer plays whole chapters and continues with the next chapter
// when one finishes, stopping after the last.
type ChapterPlayer struct {
	deck

	index    *quran.Index
	reciters *reciter.Registry
	resolver reciter.ChapterResolver
	store    ReciterStore

	reciter reciter.Reciter
	chapter int

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewChapterPlayer creates a chapter player using the registry's default
// reciter.
func NewChapterPlayer(opts ChapterOptions) *ChapterPlayer {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &ChapterPlayer{
		deck: deck{
			transport: opts.Transport,
			logger:    opts.Logger,
			alerter:   opts.Alerter,
		},
		index:    opts.Index,
		reciters: opts.Reciters,
		resolver: opts.Resolver,
		store:    opts.Store,
		reciter:  opts.Reciters.Default(),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	c.view = c.snapshotLocked
	c.snap = c.snapshotLocked()
	return c
}

func (c *ChapterPlayer) snapshotLocked() Snapshot {
	return Snapshot{
		State:    c.state(),
		Chapter:  c.chapter,
		Reciter:  c.reciter,
		Loading:  c.loading,
		Position: c.position,
		Duration: c.duration,
	}
}

// Snapshot returns the current state.
func (c *ChapterPlayer) Snapshot() Snapshot {
	return c.snapshot()
}

// Subscribe creates a new event subscription.
func (c *ChapterPlayer) Subscribe() *Subscription {
	return c.subscribe()
}

// PlayChapter loads and plays chapter id.
func (c *ChapterPlayer) PlayChapter(ctx context.Context, id int) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	return c.play(ctx, id, nil)
}

// play loads chapter id. The caller holds loadMu but not mu. With a ticket
// the load is skipped when another load started after the ticket was taken.
func (c *ChapterPlayer) play(ctx context.Context, id int, ticket *uint64) error {
	c.mu.Lock()
	defer c.commit()
	if c.closed {
		return ErrClosed
	}
	if ticket != nil && *ticket != c.seq {
		c.logger.Debug("advance superseded", "chapter", id)
		return nil
	}
	if _, err := c.index.Chapter(id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	url := c.resolver.URL(c.reciter.ID, id)
	if err := c.load(ctx, errmsg.OpPlayChapter, url); err != nil {
		if errors.Is(err, ErrClosed) {
			return err
		}
		return fmt.Errorf("play chapter %d: %w", id, err)
	}
	c.chapter = id
	c.logger.Info("playing chapter", "chapter", id, "reciter", c.reciter.ID, "url", url)
	return nil
}

// selected returns the current chapter. Only loads replace it, so it stays
// valid while the caller holds loadMu.
func (c *ChapterPlayer) selected() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	return c.chapter, nil
}

// HasNext reports whether a chapter follows the current one.
func (c *ChapterPlayer) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chapter > 0 && c.chapter < c.index.Len()
}

// HasPrevious reports whether a chapter precedes the current one.
func (c *ChapterPlayer) HasPrevious() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chapter > 1
}

// Next plays the following chapter. It does nothing after the last.
func (c *ChapterPlayer) Next(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	id, err := c.selected()
	if err != nil || id == 0 || id >= c.index.Len() {
		return err
	}
	return c.play(ctx, id+1, nil)
}

// Previous plays the preceding chapter. It does nothing at the first.
func (c *ChapterPlayer) Previous(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	id, err := c.selected()
	if err != nil || id <= 1 {
		return err
	}
	return c.play(ctx, id-1, nil)
}

// TogglePlayPause pauses or resumes the loaded chapter.
func (c *ChapterPlayer) TogglePlayPause(_ context.Context) error {
	c.mu.Lock()
	defer c.commit()
	if c.closed {
		return ErrClosed
	}
	c.toggle(errmsg.OpToggle)
	return nil
}

// SeekTo moves within the loaded chapter.
func (c *ChapterPlayer) SeekTo(_ context.Context, position time.Duration) error {
	c.mu.Lock()
	defer c.commit()
	if c.closed {
		return ErrClosed
	}
	c.seek(position)
	return nil
}

// SetReciter selects and persists a chapter reciter. The selected chapter
// restarts from the beginning in the new voice, which also retries a
// chapter whose load failed.
func (c *ChapterPlayer) SetReciter(ctx context.Context, id string) error {
	r, ok := c.reciters.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", reciter.ErrUnknown, id)
	}

	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.reciter = r
	chapter := c.chapter
	c.commit()

	if c.store != nil {
		if err := c.store.SaveReciter(ctx, r.ID); err != nil {
			c.logger.Warn(errmsg.Format(errmsg.OpReciterSave, err), "reciter", r.ID)
		}
	}
	if chapter == 0 {
		return nil
	}
	return c.play(ctx, chapter, nil)
}

// RestoreReciter selects the persisted chapter reciter, falling back to the
// registry default.
func (c *ChapterPlayer) RestoreReciter(ctx context.Context) reciter.Reciter {
	id := ""
	if c.store != nil {
		var err error
		if id, err = c.store.LoadReciter(ctx); err != nil {
			c.logger.Debug(errmsg.Format(errmsg.OpReciterRestore, err))
		}
	}

	c.mu.Lock()
	defer c.commit()
	c.reciter = c.reciters.Resolve(id)
	return c.reciter
}

// HandleStatus applies a transport status event and advances to the next
// chapter when the current one finishes. The advance loads after mu is
// released and is skipped if a newer load got there first.
func (c *ChapterPlayer) HandleStatus(st player.Status) {
	c.mu.Lock()
	if c.closed || !c.accept(st) || !st.JustFinished {
		c.commit()
		return
	}
	if c.chapter >= c.index.Len() {
		c.logger.Info("reached the last chapter")
		c.commit()
		return
	}
	next, ticket := c.chapter+1, c.seq
	c.commit()

	c.loadMu.Lock()
	defer c.loadMu.Unlock()
	_ = c.play(c.ctx, next, &ticket)
}

// Run pumps transport status into HandleStatus until ctx is cancelled or
// the player is closed.
func (c *ChapterPlayer) Run(ctx context.Context) error {
	return c.pump(ctx, c.done, c.HandleStatus)
}

// Close unloads the stream and ends subscriptions.
func (c *ChapterPlayer) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.cancel()
	c.unload()
	close(c.done)
	c.commit()

	c.closeSubs()
	return nil
}
