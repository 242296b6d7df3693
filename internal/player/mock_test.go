package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMock_TracksLiveStreams(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	h1, err := m.Load(ctx, "a", true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := m.Unload(); err != nil {
		t.Fatalf("Unload() error = %v", err)
	}
	h2, _ := m.Load(ctx, "b", false)

	if h1 == h2 {
		t.Errorf("handles reused: %d", h1)
	}
	if m.MaxLive() != 1 {
		t.Errorf("MaxLive() = %d, want 1", m.MaxLive())
	}
	if m.Playing() {
		t.Error("Playing() = true after load without autoplay")
	}

	_, _ = m.Load(ctx, "c", true)
	if m.MaxLive() != 2 {
		t.Errorf("MaxLive() = %d, want 2 after load without unload", m.MaxLive())
	}
}

func TestMock_LoadError(t *testing.T) {
	m := NewMock()
	m.SetLoadError(errors.New("offline"))

	_, err := m.Load(context.Background(), "a", true)

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if m.Live() != 0 {
		t.Errorf("Live() = %d, want 0", m.Live())
	}
}

func TestMock_SeekClamps(t *testing.T) {
	m := NewMock()
	m.SetDuration(5 * time.Second)
	_, _ = m.Load(context.Background(), "a", true)

	_ = m.Seek(time.Minute)
	if got := m.Position(); got != 5*time.Second {
		t.Errorf("Position() = %v, want 5s", got)
	}
	_ = m.Seek(-time.Second)
	if got := m.Position(); got != 0 {
		t.Errorf("Position() = %v, want 0", got)
	}
}

func TestMock_Finish(t *testing.T) {
	m := NewMock()
	h, _ := m.Load(context.Background(), "a", true)

	if got := m.Finish(); got != h {
		t.Errorf("Finish() = %d, want %d", got, h)
	}
	st := <-m.Status()
	if !st.JustFinished || st.Handle != h || st.Playing {
		t.Errorf("status = %+v", st)
	}
}
