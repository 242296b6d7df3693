// internal/player/mock.go
package player

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Mock is a test double for Transport. It records calls and tracks how
// many streams are loaded at once.
type Mock struct {
	mu       sync.Mutex
	status   chan Status
	next     HandleID
	current  HandleID
	live     int
	maxLive  int
	playing  bool
	position time.Duration
	duration time.Duration
	loadErr  error
	calls    []string
	urls     []string
}

// NewMock creates a mock transport with a buffered status channel.
func NewMock() *Mock {
	return &Mock{
		status:   make(chan Status, 64),
		duration: 10 * time.Second,
	}
}

func (m *Mock) Load(_ context.Context, url string, autoplay bool) (HandleID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "load "+url)
	if m.loadErr != nil {
		return 0, &LoadError{URL: url, Err: m.loadErr}
	}
	m.urls = append(m.urls, url)
	m.next++
	m.current = m.next
	m.live++
	m.maxLive = max(m.maxLive, m.live)
	m.playing = autoplay
	m.position = 0
	return m.current, nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "play")
	if m.live == 0 {
		return ErrNotLoaded
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "pause")
	if m.live == 0 {
		return ErrNotLoaded
	}
	m.playing = false
	return nil
}

func (m *Mock) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("seek %s", position))
	if m.live == 0 {
		return ErrNotLoaded
	}
	m.position = min(max(position, 0), m.duration)
	return nil
}

func (m *Mock) Unload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "unload")
	if m.live > 0 {
		m.live--
	}
	m.current = 0
	m.playing = false
	return nil
}

func (m *Mock) Status() <-chan Status { return m.status }

// SetLoadError makes subsequent loads fail with err. Pass nil to clear.
func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	m.loadErr = err
	m.mu.Unlock()
}

// SetDuration sets the duration reported for loaded streams.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	m.duration = d
	m.mu.Unlock()
}

// Emit queues a raw status event.
func (m *Mock) Emit(st Status) {
	m.status <- st
}

// Finish emits the end-of-playthrough event for the current stream and
// returns its handle.
func (m *Mock) Finish() HandleID {
	m.mu.Lock()
	st := Status{
		Handle:       m.current,
		Position:     m.duration,
		Duration:     m.duration,
		JustFinished: true,
	}
	m.playing = false
	m.mu.Unlock()
	m.status <- st
	return st.Handle
}

// Progress emits a position update for the current stream.
func (m *Mock) Progress(position time.Duration) {
	m.mu.Lock()
	m.position = position
	st := Status{
		Handle:   m.current,
		Position: position,
		Duration: m.duration,
		Playing:  m.playing,
	}
	m.mu.Unlock()
	m.status <- st
}

// Current returns the loaded handle, or zero.
func (m *Mock) Current() HandleID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Playing reports whether the mock is playing.
func (m *Mock) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Position returns the last seeked or emitted position.
func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Live returns the number of loaded streams.
func (m *Mock) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// MaxLive returns the highest number of simultaneously loaded streams.
func (m *Mock) MaxLive() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxLive
}

// URLs returns the URLs successfully loaded, in order.
func (m *Mock) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.urls))
	copy(out, m.urls)
	return out
}

// LastURL returns the most recently loaded URL.
func (m *Mock) LastURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.urls) == 0 {
		return ""
	}
	return m.urls[len(m.urls)-1]
}

// Calls returns the recorded call log.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls clears the call log.
func (m *Mock) ResetCalls() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
