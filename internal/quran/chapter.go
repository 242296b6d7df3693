// Package quran holds chapter metadata and verse addressing.
package quran

import "fmt"

// Chapter describes one surah.
type Chapter struct {
	ID             int
	Name           string // transliterated, e.g. "Al-Fatihah"
	NameArabic     string
	TranslatedName string
	VersesCount    int
}

// Position identifies exactly one verse.
type Position struct {
	Surah  int
	Ayah   int
	Global int // 1 at 1:1, 6236 at 114:6
}

// Key returns the "surah:ayah" verse key used by the quran.com API.
func (p Position) Key() string {
	return fmt.Sprintf("%d:%d", p.Surah, p.Ayah)
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d (#%d)", p.Surah, p.Ayah, p.Global)
}
