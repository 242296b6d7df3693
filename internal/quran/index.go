package quran

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOutOfRange is returned for a surah or ayah outside the Quran.
var ErrOutOfRange = errors.New("verse out of range")

// GlobalIndex returns the global verse number of surah:ayah.
// It sums the verse counts of every chapter whose ID is below surah and adds
// ayah. Arguments are not validated; use Index.Global for a checked lookup.
func GlobalIndex(surah, ayah int, chapters []Chapter) int {
	total := 0
	for _, c := range chapters {
		if c.ID >= surah {
			break
		}
		total += c.VersesCount
	}
	return total + ayah
}

// Index maps verse addresses to global indices and back.
// It is immutable once built and safe for concurrent use.
type Index struct {
	chapters []Chapter
	offsets  []int // offsets[i] = verses before chapters[i]
	total    int
}

// NewIndex builds an index from a complete chapter list ordered by ID.
func NewIndex(chapters []Chapter) (*Index, error) {
	if len(chapters) == 0 {
		return nil, errors.New("no chapters")
	}
	idx := &Index{
		chapters: make([]Chapter, len(chapters)),
		offsets:  make([]int, len(chapters)),
	}
	copy(idx.chapters, chapters)

	for i, c := range idx.chapters {
		if c.ID != i+1 {
			return nil, fmt.Errorf("chapter at position %d has id %d, want %d", i, c.ID, i+1)
		}
		if c.VersesCount <= 0 {
			return nil, fmt.Errorf("chapter %d has no verses", c.ID)
		}
		idx.offsets[i] = idx.total
		idx.total += c.VersesCount
	}
	return idx, nil
}

// MustDefaultIndex returns an index over DefaultChapters.
func MustDefaultIndex() *Index {
	idx, err := NewIndex(DefaultChapters())
	if err != nil {
		panic(err)
	}
	return idx
}

// Total returns the number of verses covered by the index.
func (x *Index) Total() int { return x.total }

// Len returns the number of chapters.
func (x *Index) Len() int { return len(x.chapters) }

// Chapters returns a copy of the chapter list.
func (x *Index) Chapters() []Chapter {
	out := make([]Chapter, len(x.chapters))
	copy(out, x.chapters)
	return out
}

// Chapter returns the chapter with the given ID.
func (x *Index) Chapter(surah int) (Chapter, error) {
	if surah < 1 || surah > len(x.chapters) {
		return Chapter{}, fmt.Errorf("surah %d: %w", surah, ErrOutOfRange)
	}
	return x.chapters[surah-1], nil
}

// VersesCount returns the number of verses in a chapter.
func (x *Index) VersesCount(surah int) (int, error) {
	c, err := x.Chapter(surah)
	if err != nil {
		return 0, err
	}
	return c.VersesCount, nil
}

// Global returns the global index of surah:ayah.
func (x *Index) Global(surah, ayah int) (int, error) {
	c, err := x.Chapter(surah)
	if err != nil {
		return 0, err
	}
	if ayah < 1 || ayah > c.VersesCount {
		return 0, fmt.Errorf("ayah %d:%d: %w", surah, ayah, ErrOutOfRange)
	}
	return x.offsets[surah-1] + ayah, nil
}

// Position returns the full address of surah:ayah.
func (x *Index) Position(surah, ayah int) (Position, error) {
	g, err := x.Global(surah, ayah)
	if err != nil {
		return Position{}, err
	}
	return Position{Surah: surah, Ayah: ayah, Global: g}, nil
}

// Locate maps a global index back to its verse address.
func (x *Index) Locate(global int) (Position, error) {
	if global < 1 || global > x.total {
		return Position{}, fmt.Errorf("global %d: %w", global, ErrOutOfRange)
	}
	// First chapter whose offset is >= global, then step back one.
	i := sort.SearchInts(x.offsets, global) - 1
	return Position{
		Surah:  x.chapters[i].ID,
		Ayah:   global - x.offsets[i],
		Global: global,
	}, nil
}

// IsLastAyah reports whether pos is the final verse of its chapter.
func (x *Index) IsLastAyah(pos Position) bool {
	n, err := x.VersesCount(pos.Surah)
	return err == nil && pos.Ayah >= n
}
