package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quranpulse/quranpulse/internal/playback"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

var baqarah = quran.Chapter{ID: 2, Name: "Al-Baqarah", VersesCount: 286}

func verseSnapshot(state playback.State) playback.Snapshot {
	return playback.Snapshot{
		State:    state,
		Verse:    &quran.Position{Surah: 2, Ayah: 255, Global: 262},
		Chapter:  2,
		Reciter:  reciter.Reciter{ID: "ar.alafasy", Name: "Mishary Rashid Alafasy"},
		Position: 12 * time.Second,
		Duration: 41 * time.Second,
	}
}

func TestNewState(t *testing.T) {
	tests := []struct {
		name        string
		snap        playback.Snapshot
		chapter     quran.Chapter
		wantTitle   string
		wantPlaying bool
		wantPaused  bool
	}{
		{"stopped is empty", playback.Snapshot{}, baqarah, "", false, false},
		{"verse playing", verseSnapshot(playback.StatePlaying), baqarah, "Al-Baqarah 2:255", true, false},
		{"verse paused", verseSnapshot(playback.StatePaused), baqarah, "Al-Baqarah 2:255", false, true},
		{"unknown chapter name", verseSnapshot(playback.StatePlaying), quran.Chapter{}, "Surah 2 2:255", true, false},
		{
			"chapter playback",
			playback.Snapshot{State: playback.StatePlaying, Chapter: 2},
			baqarah, "Al-Baqarah", true, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewState(tt.snap, tt.chapter, ModeCompact)
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Playing != tt.wantPlaying || got.Paused != tt.wantPaused {
				t.Errorf("Playing/Paused = %v/%v, want %v/%v", got.Playing, got.Paused, tt.wantPlaying, tt.wantPaused)
			}
		})
	}
}

func TestRenderBadges(t *testing.T) {
	tests := []struct {
		name string
		snap playback.Snapshot
		want string
	}{
		{"none", playback.Snapshot{}, ""},
		{"single", playback.Snapshot{RepeatMode: playback.RepeatSingle}, "[repeat 1]"},
		{
			"range and memorize",
			playback.Snapshot{RepeatMode: playback.RepeatRange, Range: playback.Range{Start: 1, End: 7}, Memorization: true},
			"[range 1-7] [memorize]",
		},
		{"pause pending", playback.Snapshot{Memorization: true, ReplayPending: true}, "[memorize: pause]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderBadges(tt.snap)
			if !strings.Contains(got, tt.want) || (tt.want == "" && got != "") {
				t.Errorf("RenderBadges() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_StoppedIsEmpty(t *testing.T) {
	if got := Render(State{}, 80); got != "" {
		t.Errorf("Render(stopped) = %q, want empty", got)
	}
}

func TestRender_Compact(t *testing.T) {
	s := NewState(verseSnapshot(playback.StatePlaying), baqarah, ModeCompact)

	out := Render(s, 100)

	if h := lipgloss.Height(out); h != Height(ModeCompact) {
		t.Errorf("height = %d, want %d", h, Height(ModeCompact))
	}
	for _, want := range []string{"Al-Baqarah 2:255", "0:12 / 0:41", playSymbol} {
		if !strings.Contains(out, want) {
			t.Errorf("compact bar missing %q:\n%s", want, out)
		}
	}
}

func TestRender_Expanded(t *testing.T) {
	s := NewState(verseSnapshot(playback.StatePaused), baqarah, ModeExpanded)

	out := Render(s, 80)

	if h := lipgloss.Height(out); h != Height(ModeExpanded) {
		t.Errorf("height = %d, want %d", h, Height(ModeExpanded))
	}
	for _, want := range []string{"Mishary Rashid Alafasy", pauseSymbol, "0:41"} {
		if !strings.Contains(out, want) {
			t.Errorf("expanded bar missing %q:\n%s", want, out)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		position time.Duration
		duration time.Duration
		width    int
		want     string
	}{
		{"narrow shows times only", 5 * time.Second, 10 * time.Second, 10, "▶  0:05 / 0:10"},
		{"half full", 5 * time.Second, 10 * time.Second, 25, "▓▓▓▓▓░░░░░"},
		{"zero duration", 0, 0, 25, "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgressBar(tt.position, tt.duration, tt.width, true)
			if !strings.Contains(stripANSI(got), tt.want) {
				t.Errorf("RenderProgressBar() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
