package playback

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/quranpulse/quranpulse/internal/player"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

const testAyahBase = "https://cdn.test/audio"

type memStore struct {
	mu    sync.Mutex
	id    string
	saved []string
	err   error
}

func (m *memStore) LoadReciter(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.err
}

func (m *memStore) SaveReciter(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
	m.saved = append(m.saved, id)
	return nil
}

type alertRecorder struct {
	mu        sync.Mutex
	bodies    []string
	dismissed int
}

func (a *alertRecorder) Alert(_, body string) {
	a.mu.Lock()
	a.bodies = append(a.bodies, body)
	a.mu.Unlock()
}

func (a *alertRecorder) Dismiss() {
	a.mu.Lock()
	a.dismissed++
	a.mu.Unlock()
}

func (a *alertRecorder) dismissals() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dismissed
}

func (a *alertRecorder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.bodies)
}

type sessionFixture struct {
	session *Session
	mock    *player.Mock
	store   *memStore
	alerts  *alertRecorder
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	reg, err := reciter.NewRegistry(reciter.DefaultAyahReciterID, reciter.DefaultAyahReciters...)
	if err != nil {
		t.Fatal(err)
	}
	f := &sessionFixture{
		mock:   player.NewMock(),
		store:  &memStore{},
		alerts: &alertRecorder{},
	}
	f.session = NewSession(Options{
		Transport:         f.mock,
		Index:             quran.MustDefaultIndex(),
		Reciters:          reg,
		Resolver:          reciter.AyahResolver{BaseURL: testAyahBase},
		Store:             f.store,
		Alerter:           f.alerts,
		MemorizationPause: func() time.Duration { return 4 * time.Second },
	})
	return f
}

// finish delivers the end-of-playthrough event for the live stream.
func (f *sessionFixture) finish() {
	f.mock.Finish()
	f.session.HandleStatus(<-f.mock.Status())
}

func (f *sessionFixture) play(t *testing.T, surah, ayah int) {
	t.Helper()
	if err := f.session.PlayVerse(context.Background(), surah, ayah); err != nil {
		t.Fatalf("PlayVerse(%d, %d) error = %v", surah, ayah, err)
	}
}

func (f *sessionFixture) verse(t *testing.T) quran.Position {
	t.Helper()
	snap := f.session.Snapshot()
	if snap.Verse == nil {
		t.Fatal("no verse selected")
	}
	return *snap.Verse
}

func hasCall(calls []string, call string) bool {
	return slices.Contains(calls, call)
}

// gatedTransport holds every Load until release is closed.
type gatedTransport struct {
	*player.Mock
	started chan string
	release chan struct{}
}

func newGatedTransport() *gatedTransport {
	return &gatedTransport{
		Mock:    player.NewMock(),
		started: make(chan string, 4),
		release: make(chan struct{}),
	}
}

func (g *gatedTransport) Load(ctx context.Context, url string, autoplay bool) (player.HandleID, error) {
	g.started <- url
	select {
	case <-g.release:
	case <-ctx.Done():
		return 0, &player.LoadError{URL: url, Err: ctx.Err()}
	}
	return g.Mock.Load(ctx, url, autoplay)
}

func newGatedSession(t *testing.T) (*Session, *gatedTransport) {
	t.Helper()
	reg, err := reciter.NewRegistry(reciter.DefaultAyahReciterID, reciter.DefaultAyahReciters...)
	if err != nil {
		t.Fatal(err)
	}
	g := newGatedTransport()
	s := NewSession(Options{
		Transport: g,
		Index:     quran.MustDefaultIndex(),
		Reciters:  reg,
		Resolver:  reciter.AyahResolver{BaseURL: testAyahBase},
	})
	t.Cleanup(func() { s.Close() })
	return s, g
}

// within fails the test if fn does not return within a second.
func within(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("%s blocked behind an in-flight load", what)
	}
}
