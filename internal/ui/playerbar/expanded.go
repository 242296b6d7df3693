package playerbar

import (
	"strings"

	"github.com/quranpulse/quranpulse/internal/ui/render"
)

const contentRows = 4 // Height(ModeExpanded) - 2 for borders

// RenderExpanded renders the multi-line player view.
func RenderExpanded(s State, width int) string {
	innerWidth := max(width-4, 0)
	if innerWidth < 30 {
		return renderCompact(s, width)
	}

	reciter := s.Reciter
	if reciter == "" {
		reciter = "Unknown reciter"
	}

	lines := []string{
		render.Row(titleStyle().Render(render.TruncateEllipsis(s.Title, innerWidth/2)), s.Badges, innerWidth),
		reciterStyle().Render(render.TruncateEllipsis(reciter, innerWidth)),
		"",
		RenderProgressBar(s.Position, s.Duration, innerWidth, s.Playing),
	}

	return expandedBarStyle().Padding(0, 1).Width(width - 2).Render(strings.Join(lines[:contentRows], "\n"))
}
