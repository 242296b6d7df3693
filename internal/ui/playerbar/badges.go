package playerbar

import (
	"fmt"
	"strings"

	"github.com/quranpulse/quranpulse/internal/playback"
)

// RenderBadges summarizes the repeat and memorization modes, e.g.
// "[repeat 1] [memorize]". Empty when neither is active.
func RenderBadges(snap playback.Snapshot) string {
	var parts []string
	switch snap.RepeatMode {
	case playback.RepeatSingle:
		parts = append(parts, "[repeat 1]")
	case playback.RepeatRange:
		parts = append(parts, fmt.Sprintf("[range %s]", snap.Range))
	}
	if snap.Memorization {
		badge := "[memorize]"
		if snap.ReplayPending {
			badge = "[memorize: pause]"
		}
		parts = append(parts, badge)
	}
	if len(parts) == 0 {
		return ""
	}
	return badgeStyle().Render(strings.Join(parts, " "))
}
