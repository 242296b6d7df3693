package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSetDark(t *testing.T) {
	t.Cleanup(func() { SetDark(true) })

	SetDark(false)
	if T() != &lightTheme {
		t.Error("SetDark(false) did not select the light theme")
	}
	SetDark(true)
	if T() != &darkTheme {
		t.Error("SetDark(true) did not select the dark theme")
	}
}

func TestBlendColors(t *testing.T) {
	colors := blendColors(5, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))
	if len(colors) != 5 {
		t.Fatalf("len = %d, want 5", len(colors))
	}
	first, last := colorToHex(colors[0]), colorToHex(colors[4])
	if first == last {
		t.Errorf("gradient endpoints are both %s", first)
	}
	if len(first) != 7 || first[0] != '#' {
		t.Errorf("colorToHex = %q, want #rrggbb", first)
	}
}

func TestBanner_KeepsText(t *testing.T) {
	out := Banner("QuranPulse")
	for _, r := range "QuranPulse" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("banner lost %q", r)
		}
	}
	if Banner("") != "" {
		t.Error("empty banner should render empty")
	}
}
