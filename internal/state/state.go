package state

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const saveDebounce = 500 * time.Millisecond

// Backends accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures the storage backend.
type Options struct {
	Backend  string // sqlite (default) or redis
	Path     string // sqlite file, defaults to DefaultDBPath
	RedisURI string
	Logger   *log.Logger
}

// Manager provides typed access to persisted preferences.
type Manager struct {
	store  Store
	logger *log.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Settings

	// serializes read-modify-write of list values
	listMu sync.Mutex
}

// New wraps an open store.
func New(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{store: store, logger: logger}
}

// Open opens the configured backend.
func Open(ctx context.Context, opts Options) (*Manager, error) {
	var (
		store Store
		err   error
	)
	switch opts.Backend {
	case "", BackendSQLite:
		path := opts.Path
		if path == "" {
			if path, err = DefaultDBPath(); err != nil {
				return nil, err
			}
		}
		store, err = OpenSQLite(path)
	case BackendRedis:
		store, err = OpenRedis(ctx, opts.RedisURI)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}
	return New(store, opts.Logger), nil
}

// Store returns the underlying key-value store.
func (m *Manager) Store() Store {
	return m.store
}

// Close flushes a pending settings save and closes the store.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		if err := m.SaveSettings(context.Background(), *pending); err != nil {
			m.logger.Warn("flush settings", "err", err)
		}
	}

	return m.store.Close()
}

// SaveSettingsDebounced coalesces rapid settings changes into one write.
func (m *Manager) SaveSettingsDebounced(s Settings) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := m.SaveSettings(context.Background(), *pending); err != nil {
				m.logger.Warn("save settings", "err", err)
			}
		}
	})
}
