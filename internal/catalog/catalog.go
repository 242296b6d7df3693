// Package catalog provides chapter metadata and verse text, cached in the
// key-value store and falling back to the built-in chapter table offline.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/qurancom"
	"github.com/quranpulse/quranpulse/internal/state"
)

// DefaultTTL is how long cached API responses stay fresh.
const DefaultTTL = 7 * 24 * time.Hour

const (
	keyChapters = "quranpulse_cache_chapters"
	keyVerses   = "quranpulse_cache_verses_%d_%d" // chapter, translation
)

// Source fetches remote metadata. *qurancom.Client implements it.
type Source interface {
	Chapters(ctx context.Context) ([]quran.Chapter, error)
	Verses(ctx context.Context, chapter int) ([]qurancom.Verse, error)
	Translations(ctx context.Context, translationID, chapter int) ([]qurancom.Translation, error)
}

var _ Source = (*qurancom.Client)(nil)

// Options configures a Catalog.
type Options struct {
	Source        Source
	Store         state.Store // optional; nil disables caching
	TTL           time.Duration
	TranslationID int
	Logger        *log.Logger
}

// Catalog serves chapters and verses from cache or the remote source.
type Catalog struct {
	source        Source
	store         state.Store
	ttl           time.Duration
	translationID int
	logger        *log.Logger
	now           func() time.Time
}

// New creates a Catalog.
func New(opts Options) *Catalog {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.TranslationID <= 0 {
		opts.TranslationID = 85
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Catalog{
		source:        opts.Source,
		store:         opts.Store,
		ttl:           opts.TTL,
		translationID: opts.TranslationID,
		logger:        opts.Logger,
		now:           time.Now,
	}
}

type cacheEntry[T any] struct {
	FetchedAt int64 `json:"fetchedAt"`
	Items     []T   `json:"items"`
}

// Chapters returns all chapters. A fresh cache wins; otherwise the source is
// queried. When the source fails, a stale cache or the built-in table (verse
// counts only) is returned together with a nil error.
func (c *Catalog) Chapters(ctx context.Context) ([]quran.Chapter, error) {
	cached, fresh := loadCache[quran.Chapter](ctx, c, keyChapters)
	if fresh {
		return cached, nil
	}

	chapters, err := c.fetchChapters(ctx)
	if err == nil {
		saveCache(ctx, c, keyChapters, chapters)
		return chapters, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.logger.Warn("chapter fetch failed, using fallback", "err", err, "stale", len(cached) > 0)
	if len(cached) > 0 {
		return cached, nil
	}
	return quran.DefaultChapters(), nil
}

func (c *Catalog) fetchChapters(ctx context.Context) ([]quran.Chapter, error) {
	if c.source == nil {
		return nil, errors.New("no source")
	}
	chapters, err := c.source.Chapters(ctx)
	if err != nil {
		return nil, err
	}
	if len(chapters) != quran.ChapterCount {
		return nil, fmt.Errorf("got %d chapters, want %d", len(chapters), quran.ChapterCount)
	}
	if _, err := quran.NewIndex(chapters); err != nil {
		return nil, fmt.Errorf("invalid chapter list: %w", err)
	}
	return chapters, nil
}

// Verses returns the verses of chapter with translations merged in. When the
// translation request fails, verses are returned with Arabic text only.
func (c *Catalog) Verses(ctx context.Context, chapter int) ([]qurancom.Verse, error) {
	key := fmt.Sprintf(keyVerses, chapter, c.translationID)
	cached, fresh := loadCache[qurancom.Verse](ctx, c, key)
	if fresh {
		return cached, nil
	}
	if c.source == nil {
		if len(cached) > 0 {
			return cached, nil
		}
		return nil, errors.New("no source")
	}

	verses, err := c.source.Verses(ctx, chapter)
	if err != nil {
		if len(cached) > 0 && ctx.Err() == nil {
			c.logger.Warn("verse fetch failed, using stale cache", "chapter", chapter, "err", err)
			return cached, nil
		}
		return nil, fmt.Errorf("fetch verses: %w", err)
	}

	translations, err := c.source.Translations(ctx, c.translationID, chapter)
	if err != nil {
		// Arabic-only verses are not cached so translations are retried.
		c.logger.Warn("translation fetch failed", "chapter", chapter, "err", err)
		return verses, nil
	}

	merged := qurancom.MergeTranslations(verses, translations)
	saveCache(ctx, c, key, merged)
	return merged, nil
}

// Invalidate drops cached chapter metadata.
func (c *Catalog) Invalidate(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	return c.store.Delete(ctx, keyChapters)
}

func (c *Catalog) isExpired(fetchedAt int64) bool {
	return c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl
}

// loadCache returns the cached items for key and whether they are fresh.
func loadCache[T any](ctx context.Context, c *Catalog, key string) ([]T, bool) {
	if c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			c.logger.Warn("cache read failed", "key", key, "err", err)
		}
		return nil, false
	}
	var entry cacheEntry[T]
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.Warn("ignoring corrupt cache entry", "key", key, "err", err)
		return nil, false
	}
	return entry.Items, len(entry.Items) > 0 && !c.isExpired(entry.FetchedAt)
}

func saveCache[T any](ctx context.Context, c *Catalog, key string, items []T) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(cacheEntry[T]{FetchedAt: c.now().Unix(), Items: items})
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, string(data)); err != nil {
		c.logger.Warn("cache write failed", "key", key, "err", err)
	}
}

// Filter returns chapters whose transliterated or translated name contains
// query (case-insensitive), whose Arabic name contains it, or whose number
// equals it. An empty query returns all chapters.
func Filter(chapters []quran.Chapter, query string) []quran.Chapter {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return chapters
	}
	loose := normalize(q)

	var out []quran.Chapter
	for _, ch := range chapters {
		if matches(ch, q, loose) {
			out = append(out, ch)
		}
	}
	return out
}

func matches(ch quran.Chapter, q, loose string) bool {
	if fmt.Sprint(ch.ID) == q {
		return true
	}
	if strings.Contains(strings.ToLower(ch.Name), q) ||
		strings.Contains(strings.ToLower(ch.TranslatedName), q) ||
		(ch.NameArabic != "" && strings.Contains(ch.NameArabic, q)) {
		return true
	}
	return loose != "" && strings.Contains(normalize(strings.ToLower(ch.Name)), loose)
}

// normalize drops the separators used in transliterations so "al fatiha"
// matches "Al-Fatihah".
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '\'', '’', '`', ' ':
			return -1
		}
		return r
	}, s)
}
