// internal/playback/timer.go
package playback

import "time"

// replayTimer is the pending memorization replay. Each schedule or cancel
// bumps the generation, so a callback that lost the race with Stop sees a
// stale token and does nothing. Guarded by the owner's mutex.
type replayTimer struct {
	timer *time.Timer
	gen   uint64
}

// schedule cancels any pending replay and arms a new one.
func (r *replayTimer) schedule(d time.Duration, fire func(gen uint64)) {
	r.cancel()
	gen := r.gen
	r.timer = time.AfterFunc(d, func() { fire(gen) })
}

// cancel drops the pending replay, if any.
func (r *replayTimer) cancel() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
}

// claim reports whether gen is the live schedule and clears it.
func (r *replayTimer) claim(gen uint64) bool {
	if r.timer == nil || gen != r.gen {
		return false
	}
	r.timer = nil
	return true
}

func (r *replayTimer) pending() bool {
	return r.timer != nil
}
