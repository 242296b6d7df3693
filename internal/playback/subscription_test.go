package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendState(StateChange{Previous: StateStopped, Current: StatePlaying})
		sub.sendVerse(VerseChange{Current: &quran.Position{Surah: 2, Ayah: 255, Global: 262}})
		sub.sendChapter(ChapterChange{Previous: 1, Current: 2})
		sub.sendPosition(30*time.Second, time.Minute)
		sub.sendMode(ModeChange{RepeatMode: RepeatRange, Range: Range{5, 8}})
		sub.sendReciter(ReciterChange{Reciter: reciter.Reciter{ID: "ar.husary"}})
		sub.sendError(ErrorEvent{Operation: "play verse", Err: errors.New("offline")})

		if e := <-sub.StateChanged; e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}
		if v := <-sub.VerseChanged; v.Current.Global != 262 {
			t.Errorf("VerseChanged.Current.Global = %d, want 262", v.Current.Global)
		}
		if c := <-sub.ChapterChanged; c.Current != 2 {
			t.Errorf("ChapterChanged.Current = %d, want 2", c.Current)
		}
		if pos := <-sub.PositionChanged; pos.Position != 30*time.Second || pos.Duration != time.Minute {
			t.Errorf("PositionChanged = %+v", pos)
		}
		if m := <-sub.ModeChanged; m.Range != (Range{5, 8}) {
			t.Errorf("ModeChanged.Range = %v, want 5-8", m.Range)
		}
		if r := <-sub.ReciterChanged; r.Reciter.ID != "ar.husary" {
			t.Errorf("ReciterChanged.Reciter.ID = %q", r.Reciter.ID)
		}
		if e := <-sub.Error; e.Operation != "play verse" {
			t.Errorf("Error.Operation = %q", e.Operation)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_NonBlocking_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendState(StateChange{})
	}

	count := 0
	for {
		select {
		case <-sub.StateChanged:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
