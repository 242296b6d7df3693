// internal/state/store.go
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Verify implementations at compile time.
var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = (*Mock)(nil)
)

// Storage keys. They match the keys used by the mobile app so exported
// data stays interchangeable.
const (
	KeySettings       = "@quran_pulse_settings"
	KeyAyahReciter    = "@selected_reciter"
	KeyChapterReciter = "quran_pulse_selected_reciter"
	KeyBookmarks      = "quran_pulse_bookmarks"
	KeyCity           = "prayer_city"
)
