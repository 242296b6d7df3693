// internal/playback/deck.go
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/errmsg"
	"github.com/quranpulse/quranpulse/internal/player"
	"github.com/quranpulse/quranpulse/internal/quran"
)

// deck is the transport bookkeeping shared by Session and ChapterPlayer.
//
// mu guards the fields below it and is never held across a network fetch.
// loadMu serializes commands that load a stream; it is taken before mu.
type deck struct {
	loadMu sync.Mutex
	mu     sync.Mutex

	transport player.Transport
	logger    *log.Logger
	alerter   Alerter
	view      func() Snapshot // owner's snapshot, called with mu held

	handle   player.HandleID
	playing  bool
	ended    bool
	loading  bool
	position time.Duration
	duration time.Duration
	seq      uint64 // bumped by every load
	closed   bool

	subs   []*Subscription
	subsMu sync.RWMutex

	snap   Snapshot
	snapMu sync.RWMutex
}

// commit publishes the new state and releases mu. Publishing under mu keeps
// snapshots in command order.
func (d *deck) commit() {
	d.publish(d.view())
	d.mu.Unlock()
}

// load replaces the live stream with url. It is called with loadMu and mu
// held; mu is released for the fetch and held again on return. On failure
// the transport is left unloaded and the user is alerted.
func (d *deck) load(ctx context.Context, op errmsg.Op, url string) error {
	d.unload()
	d.seq++
	d.loading = true
	d.commit()

	h, err := d.transport.Load(ctx, url, true)

	d.mu.Lock()
	d.loading = false
	if d.closed {
		if err == nil {
			_ = d.transport.Unload()
		}
		return ErrClosed
	}
	if err != nil {
		d.fail(op, url, err)
		return err
	}
	if d.alerter != nil {
		d.alerter.Dismiss()
	}
	d.handle = h
	d.playing = true
	d.ended = false
	d.position = 0
	d.duration = 0
	return nil
}

func (d *deck) unload() {
	if d.handle == 0 {
		return
	}
	if err := d.transport.Unload(); err != nil {
		d.logger.Warn("unload failed", "handle", d.handle, "err", err)
	}
	d.handle = 0
	d.playing = false
	d.ended = false
	d.position = 0
	d.duration = 0
}

// toggle pauses or resumes the live stream. A finished stream restarts
// from the beginning.
func (d *deck) toggle(op errmsg.Op) {
	if d.handle == 0 {
		return
	}
	if d.playing {
		if err := d.transport.Pause(); err != nil {
			d.fail(op, "", err)
			return
		}
		d.playing = false
		return
	}
	if d.ended {
		d.restart(op)
		return
	}
	if err := d.transport.Play(); err != nil {
		d.fail(op, "", err)
		return
	}
	d.playing = true
}

// restart plays the live stream again from the beginning.
func (d *deck) restart(op errmsg.Op) {
	if d.handle == 0 {
		return
	}
	if err := d.transport.Seek(0); err != nil {
		d.fail(op, "", err)
		return
	}
	if err := d.transport.Play(); err != nil {
		d.fail(op, "", err)
		return
	}
	d.position = 0
	d.ended = false
	d.playing = true
}

func (d *deck) seek(pos time.Duration) {
	if d.handle == 0 {
		return
	}
	if err := d.transport.Seek(pos); err != nil {
		d.fail(errmsg.OpSeek, "", err)
		return
	}
	pos = max(pos, 0)
	if d.duration > 0 {
		pos = min(pos, d.duration)
	}
	d.position = pos
	if d.duration == 0 || pos < d.duration {
		d.ended = false
	}
}

// accept applies st if it belongs to the live handle.
func (d *deck) accept(st player.Status) bool {
	if d.handle == 0 || st.Handle != d.handle {
		d.logger.Debug("dropping stale status", "handle", st.Handle, "live", d.handle)
		return false
	}
	d.playing = st.Playing
	d.position = st.Position
	d.duration = st.Duration
	if st.JustFinished {
		d.playing = false
		d.ended = true
	}
	return true
}

func (d *deck) state() State {
	switch {
	case d.handle == 0:
		return StateStopped
	case d.playing:
		return StatePlaying
	default:
		return StatePaused
	}
}

// fail logs err, publishes it, and alerts the user for stream failures.
func (d *deck) fail(op errmsg.Op, url string, err error) {
	d.logger.Error(errmsg.Format(op, err), "url", url)
	d.broadcastError(ErrorEvent{Operation: string(op), URL: url, Err: err})

	var le *player.LoadError
	if d.alerter != nil && errors.As(err, &le) && !errors.Is(err, context.Canceled) {
		d.alerter.Alert("Error", errmsg.PlaybackUnavailable)
	}
}

// pump feeds transport status into handle until ctx or done ends.
func (d *deck) pump(ctx context.Context, done <-chan struct{}, handle func(player.Status)) error {
	ch := d.transport.Status()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			return nil
		case st := <-ch:
			handle(st)
		}
	}
}

func (d *deck) subscribe() *Subscription {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	sub := newSubscription()
	d.subs = append(d.subs, sub)
	return sub
}

func (d *deck) closeSubs() {
	d.subsMu.Lock()
	for _, sub := range d.subs {
		sub.close()
	}
	d.subs = nil
	d.subsMu.Unlock()
}

func (d *deck) snapshot() Snapshot {
	d.snapMu.RLock()
	defer d.snapMu.RUnlock()
	return d.snap
}

// publish stores next and sends an event for every field that changed.
func (d *deck) publish(next Snapshot) {
	d.snapMu.Lock()
	prev := d.snap
	d.snap = next
	d.snapMu.Unlock()

	d.subsMu.RLock()
	defer d.subsMu.RUnlock()
	for _, sub := range d.subs {
		if prev.State != next.State {
			sub.sendState(StateChange{Previous: prev.State, Current: next.State})
		}
		if !samePosition(prev.Verse, next.Verse) {
			sub.sendVerse(VerseChange{Previous: prev.Verse, Current: next.Verse})
		}
		if next.Verse == nil && prev.Chapter != next.Chapter {
			sub.sendChapter(ChapterChange{Previous: prev.Chapter, Current: next.Chapter})
		}
		if prev.RepeatMode != next.RepeatMode || prev.Range != next.Range ||
			prev.Memorization != next.Memorization {
			sub.sendMode(ModeChange{
				RepeatMode:   next.RepeatMode,
				Range:        next.Range,
				Memorization: next.Memorization,
			})
		}
		if prev.Reciter != next.Reciter {
			sub.sendReciter(ReciterChange{Reciter: next.Reciter})
		}
		if prev.Position != next.Position || prev.Duration != next.Duration {
			sub.sendPosition(next.Position, next.Duration)
		}
	}
}

func (d *deck) broadcastError(e ErrorEvent) {
	d.subsMu.RLock()
	defer d.subsMu.RUnlock()
	for _, sub := range d.subs {
		sub.sendError(e)
	}
}

func samePosition(a, b *quran.Position) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
