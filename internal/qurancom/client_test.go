package qurancom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quranpulse/quranpulse/internal/quran"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client(), RequestsPerMinute: 6000})
}

func TestChapters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chapters", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"chapters":[
			{"id":1,"name_simple":"Al-Fatihah","name_arabic":"الفاتحة","verses_count":7,
			 "translated_name":{"language_name":"english","name":"The Opener"}},
			{"id":2,"name_simple":"Al-Baqarah","name_arabic":"البقرة","verses_count":286,
			 "translated_name":{"language_name":"english","name":"The Cow"}}]}`))
	})

	got, err := c.Chapters(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []quran.Chapter{
		{ID: 1, Name: "Al-Fatihah", NameArabic: "الفاتحة", TranslatedName: "The Opener", VersesCount: 7},
		{ID: 2, Name: "Al-Baqarah", NameArabic: "البقرة", TranslatedName: "The Cow", VersesCount: 286},
	}, got)
}

func TestVerses(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verses/by_chapter/112", r.URL.Path)
		assert.Equal(t, "text_uthmani", r.URL.Query().Get("fields"))
		assert.Equal(t, "1000", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"verses":[{"id":6222,"verse_number":1,"verse_key":"112:1","text_uthmani":"قُلْ هُوَ ٱللَّهُ أَحَدٌ"}]}`))
	})

	got, err := c.Verses(context.Background(), 112)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "112:1", got[0].Key)
	assert.Equal(t, 1, got[0].Number)
}

func TestTranslations(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quran/translations/85", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("chapter_number"))
		_, _ = w.Write([]byte(`{"translations":[{"resource_id":85,"text":"In the Name of Allah<sup foot_note=1>1</sup>"}]}`))
	})

	got, err := c.Translations(context.Background(), 85, 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 85, got[0].ResourceID)
}

func TestTafsir(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tafsirs/169/by_ayah/2:255", r.URL.Path)
		_, _ = w.Write([]byte(`{"tafsir":{"resource_id":169,"resource_name":"Ibn Kathir","text":"<h2>Ayat Al-Kursi</h2><p>Its virtue</p>"}}`))
	})

	got, err := c.Tafsir(context.Background(), 169, quran.Position{Surah: 2, Ayah: 255})

	require.NoError(t, err)
	assert.Equal(t, "Ibn Kathir", got.ResourceName)
	assert.Equal(t, "Ayat Al-Kursi\n\nIts virtue", PlainText(got.Text))
}

func TestTafsir_EmptyIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tafsir":{"resource_id":169,"text":""}}`))
	})

	_, err := c.Tafsir(context.Background(), 169, quran.Position{Surah: 1, Ayah: 1})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr func(error) bool
	}{
		{"not found", http.StatusNotFound, "", func(err error) bool { return errors.Is(err, ErrNotFound) }},
		{"server error", http.StatusBadGateway, "", func(err error) bool {
			return strings.Contains(err.Error(), "502")
		}},
		{"bad json", http.StatusOK, "{", func(err error) bool {
			return strings.Contains(err.Error(), "decode response")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Chapters(context.Background())

			require.Error(t, err)
			assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
		})
	}
}

func TestGet_CanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chapters":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Chapters(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestMergeTranslations(t *testing.T) {
	verses := []Verse{{Number: 1}, {Number: 2}, {Number: 3}}
	translations := []Translation{{Text: "one<sup foot_note=9>1</sup>"}, {Text: "two &amp; more"}}

	got := MergeTranslations(verses, translations)

	assert.Equal(t, "one", got[0].Translation)
	assert.Equal(t, "two & more", got[1].Translation)
	assert.Empty(t, got[2].Translation)
	assert.Empty(t, verses[0].Translation, "input is not modified")
}
