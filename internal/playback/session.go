// internal/playback/session.go
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

// Options wires a Session to its collaborators. Store, Alerter,
// MemorizationPause and Logger are optional.
type Options struct {
	Transport player.Transport
	Index     *quran.Index
	Reciters  *reciter.Registry
	Resolver  reciter.AyahResolver
	Store     ReciterStore
	Alerter   Alerter
	// MemorizationPause is read each time a verse finishes in
	// memorization mode.
	MemorizationPause func() time.Duration
	Logger            *log.Logger
}

// Session plays single verses and decides what follows each one.
// Commands that load take loadMu, so at most one load is in flight and
// unload always precedes the next load. Everything else, status events and
// timer callbacks included, only takes mu and never waits on the network.
type Session struct {
	deck

	index    *quran.Index
	reciters *reciter.Registry
	resolver reciter.AyahResolver
	store    ReciterStore
	pause    func() time.Duration

	reciter      reciter.Reciter
	current      *quran.Position
	mode         RepeatMode
	rng          Range
	memorization bool
	replay       replayTimer

	// ctx bounds loads started by the session itself (advance, wrap).
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session using the registry's default reciter.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.MemorizationPause == nil {
		opts.MemorizationPause = func() time.Duration { return DefaultMemorizationPause }
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		deck: deck{
			transport: opts.Transport,
			logger:    opts.Logger,
			alerter:   opts.Alerter,
		},
		index:    opts.Index,
		reciters: opts.Reciters,
		resolver: opts.Resolver,
		store:    opts.Store,
		pause:    opts.MemorizationPause,
		reciter:  opts.Reciters.Default(),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	s.view = s.snapshotLocked
	s.snap = s.snapshotLocked()
	return s
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         s.state(),
		Reciter:       s.reciter,
		RepeatMode:    s.mode,
		Range:         s.rng,
		Memorization:  s.memorization,
		ReplayPending: s.replay.pending(),
		Loading:       s.loading,
		Position:      s.position,
		Duration:      s.duration,
	}
	if s.current != nil {
		v := *s.current
		snap.Verse = &v
		snap.Chapter = v.Surah
	}
	return snap
}

// Snapshot returns the current state without waiting on in-flight loads.
func (s *Session) Snapshot() Snapshot {
	return s.snapshot()
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	return s.subscribe()
}

// PlayAyah loads and plays pos with the selected reciter. A zero Global is
// filled in from the index; any other mismatch is rejected before the
// transport is touched. On load failure the current verse is unchanged.
func (s *Session) PlayAyah(ctx context.Context, pos quran.Position) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.play(ctx, pos, nil)
}

// PlayVerse plays surah:ayah.
func (s *Session) PlayVerse(ctx context.Context, surah, ayah int) error {
	return s.PlayAyah(ctx, quran.Position{Surah: surah, Ayah: ayah})
}

// NextAyah plays the following verse of the current chapter. It does
// nothing at the last verse or when no verse is selected.
func (s *Session) NextAyah(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	cur, err := s.selected()
	if err != nil || cur == nil || s.index.IsLastAyah(*cur) {
		return err
	}
	return s.play(ctx, quran.Position{Surah: cur.Surah, Ayah: cur.Ayah + 1, Global: cur.Global + 1}, nil)
}

// PreviousAyah plays the preceding verse of the current chapter. It does
// nothing at the first verse or when no verse is selected.
func (s *Session) PreviousAyah(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	cur, err := s.selected()
	if err != nil || cur == nil || cur.Ayah <= 1 {
		return err
	}
	return s.play(ctx, quran.Position{Surah: cur.Surah, Ayah: cur.Ayah - 1, Global: cur.Global - 1}, nil)
}

// selected returns the current verse. Only loads replace it, so it stays
// valid while the caller holds loadMu.
func (s *Session) selected() (*quran.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.current, nil
}

// play loads pos. The caller holds loadMu but not mu. With a ticket the
// load is skipped when another load started after the ticket was taken.
func (s *Session) play(ctx context.Context, pos quran.Position, ticket *uint64) error {
	s.mu.Lock()
	defer s.commit()
	if s.closed {
		return ErrClosed
	}
	if ticket != nil && *ticket != s.seq {
		s.logger.Debug("advance superseded", "verse", pos.Key())
		return nil
	}
	target, err := s.validate(pos)
	if err != nil {
		return err
	}
	s.replay.cancel()

	url := s.resolver.URL(s.reciter.ID, target.Global)
	if err := s.load(ctx, errmsg.OpPlayVerse, url); err != nil {
		if errors.Is(err, ErrClosed) {
			return err
		}
		return fmt.Errorf("play %s: %w", target.Key(), err)
	}
	s.current = &target
	s.logger.Info("playing verse", "verse", target.Key(), "global", target.Global, "reciter", s.reciter.ID)
	return nil
}

func (s *Session) validate(pos quran.Position) (quran.Position, error) {
	want, err := s.index.Position(pos.Surah, pos.Ayah)
	if err != nil {
		return quran.Position{}, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	if pos.Global != 0 && pos.Global != want.Global {
		return quran.Position{}, fmt.Errorf("%w: %s has global index %d, not %d",
			ErrInvalidPosition, want.Key(), want.Global, pos.Global)
	}
	return want, nil
}

// TogglePlayPause pauses or resumes the loaded verse and cancels a pending
// memorization replay. It does nothing when no verse is loaded.
func (s *Session) TogglePlayPause(_ context.Context) error {
	s.mu.Lock()
	defer s.commit()
	if s.closed {
		return ErrClosed
	}
	s.replay.cancel()
	s.toggle(errmsg.OpToggle)
	return nil
}

// SeekTo moves within the loaded verse.
func (s *Session) SeekTo(_ context.Context, position time.Duration) error {
	s.mu.Lock()
	defer s.commit()
	if s.closed {
		return ErrClosed
	}
	s.replay.cancel()
	s.seek(position)
	return nil
}

// SetReciter selects and persists a reciter. The selected verse restarts
// from the beginning in the new voice, which also retries a verse whose
// load failed.
func (s *Session) SetReciter(ctx context.Context, id string) error {
	r, ok := s.reciters.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", reciter.ErrUnknown, id)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.reciter = r
	s.replay.cancel()
	cur := s.current
	s.commit()

	if s.store != nil {
		if err := s.store.SaveReciter(ctx, r.ID); err != nil {
			s.logger.Warn(errmsg.Format(errmsg.OpReciterSave, err), "reciter", r.ID)
		}
	}
	if cur == nil {
		return nil
	}
	return s.play(ctx, *cur, nil)
}

// RestoreReciter selects the persisted reciter, falling back to the
// registry default for missing or unknown ids.
func (s *Session) RestoreReciter(ctx context.Context) reciter.Reciter {
	id := ""
	if s.store != nil {
		var err error
		if id, err = s.store.LoadReciter(ctx); err != nil {
			s.logger.Debug(errmsg.Format(errmsg.OpReciterRestore, err))
		}
	}

	s.mu.Lock()
	defer s.commit()
	s.reciter = s.reciters.Resolve(id)
	return s.reciter
}

// Reciter returns the selected reciter.
func (s *Session) Reciter() reciter.Reciter {
	return s.Snapshot().Reciter
}

// SetRepeatMode sets the repeat mode. It takes effect when the current
// verse finishes.
func (s *Session) SetRepeatMode(m RepeatMode) {
	s.mu.Lock()
	defer s.commit()
	s.mode = m
}

// CycleRepeatMode advances to the next repeat mode and returns it.
func (s *Session) CycleRepeatMode() RepeatMode {
	s.mu.Lock()
	defer s.commit()
	s.mode = s.mode.Next()
	return s.mode
}

// SetRepeatRange sets the verses repeated in RepeatRange mode. With a verse
// selected, end must not exceed its chapter's verse count.
func (s *Session) SetRepeatRange(start, end int) error {
	s.mu.Lock()
	defer s.commit()
	r := Range{Start: start, End: end}
	if !r.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	if s.current != nil {
		n, err := s.index.VersesCount(s.current.Surah)
		if err != nil || end > n {
			return fmt.Errorf("%w: %s exceeds %d verses of chapter %d", ErrInvalidRange, r, n, s.current.Surah)
		}
	}
	s.rng = r
	return nil
}

// ToggleMemorizationMode flips memorization mode and returns the new value.
func (s *Session) ToggleMemorizationMode() bool {
	s.mu.Lock()
	defer s.commit()
	s.memorization = !s.memorization
	if !s.memorization {
		s.replay.cancel()
	}
	return s.memorization
}

// HandleStatus applies a transport status event. Events for any handle
// but the live one are dropped. An advance to another verse loads after mu
// is released and is skipped if a newer load got there first.
func (s *Session) HandleStatus(st player.Status) {
	s.mu.Lock()
	if s.closed || !s.accept(st) || !st.JustFinished {
		s.commit()
		return
	}
	next, ok := s.finishedLocked()
	ticket := s.seq
	s.commit()

	if ok {
		s.loadMu.Lock()
		defer s.loadMu.Unlock()
		// Errors are already logged, published and alerted.
		_ = s.play(s.ctx, next, &ticket)
	}
}

// finishedLocked applies the policy to the verse that just ended and
// returns the verse to load, if any.
func (s *Session) finishedLocked() (quran.Position, bool) {
	if s.current == nil {
		return quran.Position{}, false
	}
	cur := *s.current
	count, err := s.index.VersesCount(cur.Surah)
	if err != nil {
		s.logger.Error("finished verse outside index", "verse", cur.Key(), "err", err)
		return quran.Position{}, false
	}

	action := Decide(FinishedInput{
		Current:      cur,
		VersesCount:  count,
		Mode:         s.mode,
		Range:        s.rng,
		Memorization: s.memorization,
		Pause:        s.pause(),
	})
	s.logger.Debug("verse finished", "verse", cur.Key(), "action", action)

	switch action.Kind {
	case ActionReplay:
		s.restart(errmsg.OpReplay)
	case ActionReplayAfter:
		s.replay.schedule(action.Delay, s.replayFired)
	case ActionPlay:
		return action.Target, true
	case ActionStop:
		s.playing = false
	}
	return quran.Position{}, false
}

func (s *Session) replayFired(gen uint64) {
	s.mu.Lock()
	defer s.commit()
	if s.closed || !s.replay.claim(gen) {
		return
	}
	s.restart(errmsg.OpReplay)
}

// Run pumps transport status into HandleStatus until ctx is cancelled or
// the session is closed.
func (s *Session) Run(ctx context.Context) error {
	return s.pump(ctx, s.done, s.HandleStatus)
}

// Close cancels pending work, unloads the stream and ends subscriptions.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.replay.cancel()
	s.cancel()
	s.unload()
	close(s.done)
	s.commit()

	s.closeSubs()
	return nil
}
