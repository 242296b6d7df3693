package qurancom

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/quranpulse/quranpulse/internal/quran"
)

type chapterResponse struct {
	ID             int    `json:"id"`
	NameSimple     string `json:"name_simple"`
	NameArabic     string `json:"name_arabic"`
	VersesCount    int    `json:"verses_count"`
	TranslatedName struct {
		Name string `json:"name"`
	} `json:"translated_name"`
}

// Chapters returns metadata for all chapters, in order.
func (c *Client) Chapters(ctx context.Context) ([]quran.Chapter, error) {
	var result struct {
		Chapters []chapterResponse `json:"chapters"`
	}
	if err := c.get(ctx, "/chapters", nil, &result); err != nil {
		return nil, err
	}

	chapters := make([]quran.Chapter, len(result.Chapters))
	for i, ch := range result.Chapters {
		chapters[i] = quran.Chapter{
			ID:             ch.ID,
			Name:           ch.NameSimple,
			NameArabic:     ch.NameArabic,
			TranslatedName: ch.TranslatedName.Name,
			VersesCount:    ch.VersesCount,
		}
	}
	return chapters, nil
}

// Verse is one verse of a chapter with optional translation.
type Verse struct {
	ID          int    `json:"id"`
	Number      int    `json:"verse_number"`
	Key         string `json:"verse_key"`
	TextUthmani string `json:"text_uthmani"`
	Translation string `json:"translation,omitempty"`
}

// Verses returns the Uthmani text of every verse in chapter.
func (c *Client) Verses(ctx context.Context, chapter int) ([]Verse, error) {
	params := url.Values{}
	params.Set("fields", "text_uthmani")
	params.Set("per_page", "1000")

	var result struct {
		Verses []Verse `json:"verses"`
	}
	if err := c.get(ctx, fmt.Sprintf("/verses/by_chapter/%d", chapter), params, &result); err != nil {
		return nil, err
	}
	return result.Verses, nil
}

// Translation is one translated verse, in chapter order.
type Translation struct {
	ResourceID int    `json:"resource_id"`
	Text       string `json:"text"`
}

// Translations returns translation translationID for every verse in chapter.
func (c *Client) Translations(ctx context.Context, translationID, chapter int) ([]Translation, error) {
	params := url.Values{}
	params.Set("chapter_number", strconv.Itoa(chapter))

	var result struct {
		Translations []Translation `json:"translations"`
	}
	if err := c.get(ctx, fmt.Sprintf("/quran/translations/%d", translationID), params, &result); err != nil {
		return nil, err
	}
	return result.Translations, nil
}

// Tafsir is the commentary on one verse.
type Tafsir struct {
	ResourceID   int    `json:"resource_id"`
	ResourceName string `json:"resource_name"`
	Text         string `json:"text"`
}

// Tafsir returns commentary tafsirID for the verse at pos.
func (c *Client) Tafsir(ctx context.Context, tafsirID int, pos quran.Position) (*Tafsir, error) {
	var result struct {
		Tafsir Tafsir `json:"tafsir"`
	}
	path := fmt.Sprintf("/tafsirs/%d/by_ayah/%s", tafsirID, pos.Key())
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Tafsir.Text) == "" {
		return nil, ErrNotFound
	}
	return &result.Tafsir, nil
}

// MergeTranslations copies translated text onto verses by position. Both
// lists are in chapter order; extra entries on either side are ignored.
func MergeTranslations(verses []Verse, translations []Translation) []Verse {
	out := make([]Verse, len(verses))
	copy(out, verses)
	for i := range min(len(out), len(translations)) {
		out[i].Translation = PlainText(translations[i].Text)
	}
	return out
}

var (
	footnoteRe = regexp.MustCompile(`(?s)<sup[^>]*>.*?</sup>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	blankRe    = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips markup and footnote markers from API text.
func PlainText(s string) string {
	s = footnoteRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "</p>", "\n\n", "</h2>", "\n\n").Replace(s)
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
