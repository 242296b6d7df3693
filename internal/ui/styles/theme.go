// Package styles holds the color themes and shared lipgloss styles.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and pre-built styles.
type Theme struct {
	Primary   lipgloss.Color // teal, active verse and focus
	Secondary lipgloss.Color // gold, accents and bookmarks

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base        lipgloss.Style
	Muted       lipgloss.Style
	Subtle      lipgloss.Style
	Title       lipgloss.Style
	Arabic      lipgloss.Style // verse text
	Translation lipgloss.Style
	Playing     lipgloss.Style // verse being recited
	Cursor      lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
}

var darkTheme = Theme{
	Primary:   lipgloss.Color("#2dd4bf"),
	Secondary: lipgloss.Color("#d4af37"),

	FgBase:   lipgloss.Color("#d0d0d0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#5a5a5a"),

	BgCursor: lipgloss.Color("#1f3a37"),

	Border:      lipgloss.Color("#4a4a4a"),
	BorderFocus: lipgloss.Color("#2dd4bf"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

var lightTheme = Theme{
	Primary:   lipgloss.Color("#0f766e"),
	Secondary: lipgloss.Color("#a16207"),

	FgBase:   lipgloss.Color("#1f2933"),
	FgMuted:  lipgloss.Color("#52606d"),
	FgSubtle: lipgloss.Color("#9aa5b1"),

	BgCursor: lipgloss.Color("#d5f5f0"),

	Border:      lipgloss.Color("#bcccdc"),
	BorderFocus: lipgloss.Color("#0f766e"),

	Success: lipgloss.Color("#1e8e3e"),
	Error:   lipgloss.Color("#c62828"),
	Warning: lipgloss.Color("#b45309"),
}

var (
	currentMu sync.RWMutex
	current   = &darkTheme
)

// T returns the active theme.
func T() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetDark selects the dark or light theme.
func SetDark(dark bool) {
	currentMu.Lock()
	defer currentMu.Unlock()
	if dark {
		current = &darkTheme
	} else {
		current = &lightTheme
	}
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	t.once.Do(func() { t.styles = t.buildStyles() })
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Arabic: base.Bold(true),
		Translation: lipgloss.NewStyle().
			Foreground(t.FgMuted).
			Italic(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
