// internal/player/controls.go
package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Play implements Transport.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.cur
	if s == nil {
		return ErrNotLoaded
	}

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()

	// The speaker dropped the sequence at the end of the last playthrough.
	if s.finished.Load() {
		s.start()
	}
	return nil
}

// Pause implements Transport.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.cur
	if s == nil {
		return ErrNotLoaded
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// Seek implements Transport.
func (p *Player) Seek(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.cur
	if s == nil {
		return ErrNotLoaded
	}

	n := s.format.SampleRate.N(position)
	n = max(n, 0)
	n = min(n, s.decoder.Len())

	speaker.Lock()
	err := s.decoder.Seek(n)
	speaker.Unlock()
	return err
}

// Position returns the playback position of the loaded stream.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0
	}
	return p.cur.position()
}

// Duration returns the length of the loaded stream.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0
	}
	return p.cur.duration()
}
