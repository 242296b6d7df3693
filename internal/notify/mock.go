package notify

import "sync"

// Mock records alerts instead of showing them.
type Mock struct {
	mu        sync.Mutex
	shown     []Alert
	dismissed int
	err       error
}

var _ Notifier = (*Mock)(nil)

func (m *Mock) Show(a Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.shown = append(m.shown, a)
	return nil
}

func (m *Mock) Dismiss() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed++
	return m.err
}

// SetError makes subsequent calls fail.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Shown returns the alerts shown so far.
func (m *Mock) Shown() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Alert(nil), m.shown...)
}

// Dismissed returns how many times Dismiss was called.
func (m *Mock) Dismissed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dismissed
}
