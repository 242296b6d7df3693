// internal/playback/policy.go
package playback

import (
	"fmt"
	"time"

	"github.com/quranpulse/quranpulse/internal/quran"
)

// ActionKind is what the session does after a verse finishes.
type ActionKind int

const (
	ActionStop ActionKind = iota
	ActionReplay
	ActionReplayAfter
	ActionPlay
)

func (k ActionKind) String() string {
	switch k {
	case ActionStop:
		return "Stop"
	case ActionReplay:
		return "Replay"
	case ActionReplayAfter:
		return "ReplayAfter"
	case ActionPlay:
		return "Play"
	default:
		return "Unknown"
	}
}

// Action is the outcome of Decide. Delay is set for ActionReplayAfter and
// Target for ActionPlay.
type Action struct {
	Kind   ActionKind
	Delay  time.Duration
	Target quran.Position
}

func (a Action) String() string {
	switch a.Kind {
	case ActionReplayAfter:
		return fmt.Sprintf("ReplayAfter(%s)", a.Delay)
	case ActionPlay:
		return fmt.Sprintf("Play(%s)", a.Target)
	default:
		return a.Kind.String()
	}
}

// FinishedInput is the session state read when a verse finishes.
type FinishedInput struct {
	Current      quran.Position
	VersesCount  int // verses in Current.Surah
	Mode         RepeatMode
	Range        Range
	Memorization bool
	Pause        time.Duration
}

// Decide picks the follow-up action for a finished verse. The first rule
// that applies wins:
//
//  1. RepeatSingle replays the verse immediately.
//  2. Memorization mode replays it after Pause.
//  3. RepeatRange at the range end jumps back to the range start.
//  4. Any verse before the last of its chapter advances by one.
//  5. Otherwise playback stops.
func Decide(in FinishedInput) Action {
	cur := in.Current
	switch {
	case in.Mode == RepeatSingle:
		return Action{Kind: ActionReplay}
	case in.Memorization:
		return Action{Kind: ActionReplayAfter, Delay: in.Pause}
	case in.Mode == RepeatRange && cur.Ayah == in.Range.End:
		// Same chapter, so the global index shifts by the ayah distance.
		return Action{Kind: ActionPlay, Target: quran.Position{
			Surah:  cur.Surah,
			Ayah:   in.Range.Start,
			Global: cur.Global - cur.Ayah + in.Range.Start,
		}}
	case cur.Ayah < in.VersesCount:
		return Action{Kind: ActionPlay, Target: quran.Position{
			Surah:  cur.Surah,
			Ayah:   cur.Ayah + 1,
			Global: cur.Global + 1,
		}}
	default:
		return Action{Kind: ActionStop}
	}
}
