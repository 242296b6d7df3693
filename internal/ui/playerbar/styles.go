package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/quranpulse/quranpulse/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func expandedBarStyle() lipgloss.Style {
	return styles.PanelStyle(true)
}

func titleStyle() lipgloss.Style { return styles.T().S().Playing }

func reciterStyle() lipgloss.Style { return styles.T().S().Muted }

func badgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Secondary)
}

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func progressBarEmpty() lipgloss.Style { return styles.T().S().Subtle }

func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }
