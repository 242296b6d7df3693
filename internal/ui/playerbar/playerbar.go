package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quranpulse/quranpulse/internal/playback"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Title, reciter, badges and progress
)

// State holds everything needed to render the player bar.
type State struct {
	Playing     bool
	Paused      bool
	Title       string // "Al-Baqarah 2:255" or "Al-Baqarah"
	Reciter     string
	Badges      string
	Position    time.Duration
	Duration    time.Duration
	DisplayMode DisplayMode
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return 6 // 4 content rows + 2 border rows
	}
	return 3 // top border + content + bottom border
}

// NewState builds a State from a player snapshot. chapter is the metadata of
// snap.Chapter; a zero Chapter falls back to "Surah N".
func NewState(snap playback.Snapshot, chapter quran.Chapter, mode DisplayMode) State {
	if !snap.State.IsActive() {
		return State{}
	}

	return State{
		Playing:     snap.State == playback.StatePlaying,
		Paused:      snap.State == playback.StatePaused,
		Title:       title(snap, chapter),
		Reciter:     snap.Reciter.Name,
		Badges:      RenderBadges(snap),
		Position:    snap.Position,
		Duration:    snap.Duration,
		DisplayMode: mode,
	}
}

func title(snap playback.Snapshot, chapter quran.Chapter) string {
	name := chapter.Name
	if name == "" {
		name = fmt.Sprintf("Surah %d", snap.Chapter)
	}
	if snap.Verse != nil {
		return fmt.Sprintf("%s %s", name, snap.Verse.Key())
	}
	return name
}

// Render returns the player bar string for the given width.
// Returns empty string when nothing is loaded.
func Render(s State, width int) string {
	if !s.Playing && !s.Paused {
		return ""
	}

	if s.DisplayMode == ModeExpanded {
		return RenderExpanded(s, width)
	}

	return renderCompact(s, width)
}

func renderCompact(s State, width int) string {
	innerWidth := max(width-6, 0)

	status := playSymbol
	if s.Paused {
		status = pauseSymbol
	}

	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	timeWidth := lipgloss.Width(timeStr)
	statusWidth := lipgloss.Width(status + "  ")
	badgeWidth := lipgloss.Width(s.Badges)
	badgeSpace := 0
	if s.Badges != "" {
		badgeSpace = badgeWidth + sepWidth
	}

	minBarWidth := 10
	availableForContent := innerWidth - statusWidth - timeWidth - sepWidth*2 - minBarWidth - badgeSpace

	titleWidth := lipgloss.Width(s.Title)
	reciterWidth := lipgloss.Width(s.Reciter)

	var styledTitle, styledReciter string
	var usedContentWidth int

	switch {
	case titleWidth+sepWidth+reciterWidth <= availableForContent:
		styledTitle = titleStyle().Render(s.Title)
		styledReciter = reciterStyle().Render(s.Reciter)
		usedContentWidth = titleWidth + sepWidth + reciterWidth
	case titleWidth+sepWidth < availableForContent && s.Reciter != "":
		maxReciter := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle().Render(s.Title)
		styledReciter = reciterStyle().Render(render.TruncateEllipsis(s.Reciter, maxReciter))
		usedContentWidth = availableForContent
	default:
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle().Render(render.TruncateEllipsis(s.Title, maxTitle))
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-badgeSpace-statusWidth-timeWidth-sepWidth*2, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	filledBar := progressBarFilled().Render(strings.Repeat("━", filled))
	emptyBar := progressBarEmpty().Render(strings.Repeat("─", barWidth-filled))

	// Al-Baqarah 2:255   Alafasy   [range 250-257]   ▶ ━━━───   0:12 / 0:41
	var content strings.Builder
	content.WriteString(styledTitle)
	if styledReciter != "" {
		content.WriteString(separator)
		content.WriteString(styledReciter)
	}
	if s.Badges != "" {
		content.WriteString(separator)
		content.WriteString(s.Badges)
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(filledBar)
	content.WriteString(emptyBar)
	content.WriteString(separator)
	content.WriteString(progressTimeStyle().Render(timeStr))

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
