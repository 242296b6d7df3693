package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Bookmark is a saved verse. Timestamp is in Unix milliseconds.
type Bookmark struct {
	SurahID     int    `json:"surahId"`
	SurahName   string `json:"surahName"`
	AyahNum     int    `json:"ayahNum"`
	AyahText    string `json:"ayahText"`
	Translation string `json:"translation"`
	Timestamp   int64  `json:"timestamp"`
}

// Key returns "surah:ayah".
func (b Bookmark) Key() string {
	return fmt.Sprintf("%d:%d", b.SurahID, b.AyahNum)
}

// Time returns the creation time.
func (b Bookmark) Time() time.Time {
	return time.UnixMilli(b.Timestamp)
}

func (b Bookmark) same(surah, ayah int) bool {
	return b.SurahID == surah && b.AyahNum == ayah
}

// Bookmarks returns saved bookmarks, most recent first.
func (m *Manager) Bookmarks(ctx context.Context) ([]Bookmark, error) {
	raw, err := m.store.Get(ctx, KeyBookmarks)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []Bookmark
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		m.logger.Warn("ignoring corrupt bookmarks", "err", err)
		return nil, nil
	}
	slices.SortStableFunc(list, func(a, b Bookmark) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		default:
			return 0
		}
	})
	return list, nil
}

// AddBookmark stores b at the front, replacing any bookmark for the same
// verse. A zero Timestamp is set to now.
func (m *Manager) AddBookmark(ctx context.Context, b Bookmark) error {
	m.listMu.Lock()
	defer m.listMu.Unlock()

	if b.Timestamp == 0 {
		b.Timestamp = time.Now().UnixMilli()
	}
	list, err := m.Bookmarks(ctx)
	if err != nil {
		return err
	}
	list = slices.DeleteFunc(list, func(x Bookmark) bool { return x.same(b.SurahID, b.AyahNum) })
	return m.saveBookmarks(ctx, append([]Bookmark{b}, list...))
}

// RemoveBookmark deletes the bookmark for surah:ayah, if any.
func (m *Manager) RemoveBookmark(ctx context.Context, surah, ayah int) error {
	m.listMu.Lock()
	defer m.listMu.Unlock()

	list, err := m.Bookmarks(ctx)
	if err != nil {
		return err
	}
	return m.saveBookmarks(ctx, slices.DeleteFunc(list, func(x Bookmark) bool { return x.same(surah, ayah) }))
}

// IsBookmarked reports whether surah:ayah is bookmarked.
func (m *Manager) IsBookmarked(ctx context.Context, surah, ayah int) (bool, error) {
	list, err := m.Bookmarks(ctx)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(list, func(x Bookmark) bool { return x.same(surah, ayah) }), nil
}

func (m *Manager) saveBookmarks(ctx context.Context, list []Bookmark) error {
	if list == nil {
		list = []Bookmark{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeyBookmarks, string(data))
}
