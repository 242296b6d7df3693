// internal/state/mock.go
package state

import (
	"context"
	"sync"
)

// Mock is an in-memory Store for tests.
type Mock struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
	closed bool
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{data: make(map[string]string)}
}

func (m *Mock) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Mock) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *Mock) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Test helpers

func (m *Mock) SetError(err error) {
	m.mu.Lock()
	m.setErr = err
	m.mu.Unlock()
}

func (m *Mock) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
