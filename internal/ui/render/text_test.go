package render

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean text unchanged", "Al-Fatihah", "Al-Fatihah"},
		{"control chars dropped", "In the Name\x07 of Allah", "In the Name of Allah"},
		{"nbsp becomes space", "Ayat\u00a0Al-Kursi", "Ayat Al-Kursi"},
		{"arabic unchanged", "بِسْمِ ٱللَّهِ", "بِسْمِ ٱللَّهِ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "Yasin", 10, "Yasin"},
		{"exact fit", "Yasin", 5, "Yasin"},
		{"truncation with ellipsis", "Al-Baqarah", 8, "Al-Ba..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	if got := TruncateEllipsis("Mishary Rashid Alafasy", 8); got != "Mishary…" {
		t.Errorf("TruncateEllipsis = %q, want %q", got, "Mishary…")
	}
	if got := TruncateEllipsis("Husary", 8); got != "Husary" {
		t.Errorf("TruncateEllipsis = %q, want unchanged", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, width := range []int{4, 10, 30} {
		got := TruncateAndPad("Ash-Shatri", width)
		if w := runewidth.StringWidth(got); w != width {
			t.Errorf("TruncateAndPad width %d: got width %d (%q)", width, w, got)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name    string
		left    string
		right   string
		width   int
		wantLen int
	}{
		{"basic row", "2:255", "1:23", 20, 20},
		{"tight fit", "2:255", "1:23", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Row(tt.left, tt.right, tt.width)
			if len(got) != tt.wantLen {
				t.Errorf("Row(%q, %q, %d) length = %d, want %d", tt.left, tt.right, tt.width, len(got), tt.wantLen)
			}
			if !strings.HasPrefix(got, tt.left) || !strings.HasSuffix(got, tt.right) {
				t.Errorf("Row() = %q, want %q...%q", got, tt.left, tt.right)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"fits", "All praise is for Allah", 40, []string{"All praise is for Allah"}},
		{"breaks on spaces", "All praise is for Allah", 10, []string{"All praise", "is for", "Allah"}},
		{"keeps paragraphs", "one\n\ntwo", 10, []string{"one", "", "two"}},
		{"crlf paragraphs", "one\r\ntwo", 10, []string{"one", "two"}},
		{"control characters dropped per paragraph", "a\x07b\nc\x1bd", 10, []string{"ab", "cd"}},
		{"long word truncated", "Lord-of-all-worlds", 8, []string{"Lord-of…"}},
		{"zero width", "anything", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.input, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestAlignRight(t *testing.T) {
	got := AlignRight("قُلْ", 10)
	if w := runewidth.StringWidth(got); w != 10 {
		t.Errorf("width = %d, want 10", w)
	}
	if !strings.HasSuffix(got, "قُلْ") {
		t.Errorf("AlignRight = %q, text should end the line", got)
	}
}
