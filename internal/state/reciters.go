package state

import (
	"context"
	"errors"
)

// ReciterPref persists one reciter selection under a fixed key.
type ReciterPref struct {
	store Store
	key   string
}

// AyahReciter returns the verse-level reciter preference.
func (m *Manager) AyahReciter() *ReciterPref {
	return &ReciterPref{store: m.store, key: KeyAyahReciter}
}

// ChapterReciter returns the chapter-level reciter preference.
func (m *Manager) ChapterReciter() *ReciterPref {
	return &ReciterPref{store: m.store, key: KeyChapterReciter}
}

// LoadReciter returns the saved id, or "" when none is saved.
func (p *ReciterPref) LoadReciter(ctx context.Context) (string, error) {
	id, err := p.store.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return id, err
}

// SaveReciter stores id.
func (p *ReciterPref) SaveReciter(ctx context.Context, id string) error {
	return p.store.Set(ctx, p.key, id)
}
