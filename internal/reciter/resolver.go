package reciter

import (
	"fmt"
	"strconv"
	"strings"
)

// AyahResolver builds per-verse audio URLs:
//
//	<base>/<reciterID>/<globalIndex>.mp3
type AyahResolver struct {
	BaseURL string
}

// URL returns the audio URL of one verse.
func (r AyahResolver) URL(reciterID string, global int) string {
	return fmt.Sprintf("%s/%s/%d.mp3", strings.TrimSuffix(r.BaseURL, "/"), reciterID, global)
}

// Strategy names a chapter file naming scheme.
type Strategy string

const (
	StrategyPlain           Strategy = "plain"
	StrategyZeroPadded      Strategy = "zero_padded"
	StrategyDoubleSeparator Strategy = "double_separator"
)

// Naming describes how one strategy lays out a chapter URL.
type Naming struct {
	Separator string // between reciter id and file name
	PadWidth  int    // zero-pad the surah number to this width; 0 disables
	AltBase   bool   // use ChapterResolver.AltBaseURL
}

// Namings is the strategy table. Adding a scheme means adding a row here;
// assigning a reciter to it is configuration.
var Namings = map[Strategy]Naming{
	StrategyPlain:           {Separator: "/"},
	StrategyZeroPadded:      {Separator: "/", PadWidth: 3},
	StrategyDoubleSeparator: {Separator: "//", PadWidth: 3, AltBase: true},
}

// ParseStrategy validates a strategy name. Empty means plain.
func ParseStrategy(s string) (Strategy, error) {
	if s == "" {
		return StrategyPlain, nil
	}
	st := Strategy(s)
	if _, ok := Namings[st]; !ok {
		return "", fmt.Errorf("unknown naming strategy %q", s)
	}
	return st, nil
}

// ChapterResolver builds per-chapter audio URLs:
//
//	<base>/<reciterID><separator><fileName>.mp3
//
// The separator, file name padding and base are chosen by the reciter's
// naming strategy; reciters without an entry use StrategyPlain.
type ChapterResolver struct {
	BaseURL    string
	AltBaseURL string
	Strategies map[string]Strategy // reciter id -> strategy
}

// Strategy returns the naming strategy for a reciter.
func (r ChapterResolver) Strategy(reciterID string) Strategy {
	if st, ok := r.Strategies[reciterID]; ok {
		return st
	}
	return StrategyPlain
}

// FileName returns the "<n>.mp3" file name for a chapter under a strategy.
func FileName(st Strategy, surah int) string {
	n := Namings[st]
	name := strconv.Itoa(surah)
	if n.PadWidth > 0 {
		name = fmt.Sprintf("%0*d", n.PadWidth, surah)
	}
	return name + ".mp3"
}

// URL returns the audio URL of one chapter.
func (r ChapterResolver) URL(reciterID string, surah int) string {
	st := r.Strategy(reciterID)
	n, ok := Namings[st]
	if !ok {
		st, n = StrategyPlain, Namings[StrategyPlain]
	}
	base := r.BaseURL
	if n.AltBase && r.AltBaseURL != "" {
		base = r.AltBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + reciterID + n.Separator + FileName(st, surah)
}
