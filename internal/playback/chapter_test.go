package playback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quranpulse/quranpulse/internal/player"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/reciter"
)

const (
	testChapterBase    = "https://chapters.test/quran"
	testChapterAltBase = "https://chapters.test/qdc"
)

func newChapterFixture(t *testing.T) (*ChapterPlayer, *player.Mock, *memStore) {
	t.Helper()
	recs, strategies := reciter.SplitChapterReciters(reciter.DefaultChapterReciters)
	reg, err := reciter.NewRegistry(reciter.DefaultChapterReciterID, recs...)
	require.NoError(t, err)

	m := player.NewMock()
	store := &memStore{}
	c := NewChapterPlayer(ChapterOptions{
		Transport: m,
		Index:     quran.MustDefaultIndex(),
		Reciters:  reg,
		Resolver: reciter.ChapterResolver{
			BaseURL:    testChapterBase,
			AltBaseURL: testChapterAltBase,
			Strategies: strategies,
		},
		Store: store,
	})
	return c, m, store
}

func finishChapter(c *ChapterPlayer, m *player.Mock) {
	m.Finish()
	c.HandleStatus(<-m.Status())
}

func TestChapterPlayer_PlayChapter(t *testing.T) {
	c, m, _ := newChapterFixture(t)

	require.NoError(t, c.PlayChapter(context.Background(), 1))

	assert.Equal(t, testChapterBase+"/abdul_baset/mujawwad/001.mp3", m.LastURL())
	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Chapter)
	assert.Nil(t, snap.Verse)
	assert.Equal(t, StatePlaying, snap.State)
}

func TestChapterPlayer_InvalidChapter(t *testing.T) {
	c, m, _ := newChapterFixture(t)

	for _, id := range []int{0, 115} {
		err := c.PlayChapter(context.Background(), id)
		require.ErrorIs(t, err, ErrInvalidPosition)
	}
	assert.Empty(t, m.Calls())
}

func TestChapterPlayer_FinishedAdvances(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	require.NoError(t, c.PlayChapter(context.Background(), 36))

	finishChapter(c, m)

	assert.Equal(t, 37, c.Snapshot().Chapter)
	assert.Equal(t, testChapterBase+"/abdul_baset/mujawwad/037.mp3", m.LastURL())
	assert.Equal(t, 1, m.MaxLive())
}

func TestChapterPlayer_StopsAfterLastChapter(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	require.NoError(t, c.PlayChapter(context.Background(), 114))
	loads := len(m.URLs())

	finishChapter(c, m)

	assert.Len(t, m.URLs(), loads)
	assert.Equal(t, 114, c.Snapshot().Chapter)
	assert.False(t, c.HasNext())
	assert.NotEqual(t, StatePlaying, c.Snapshot().State)

	require.NoError(t, c.Next(context.Background()))
	assert.Len(t, m.URLs(), loads)
}

func TestChapterPlayer_PreviousDisabledAtFirst(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	ctx := context.Background()

	assert.False(t, c.HasPrevious())
	assert.False(t, c.HasNext(), "nothing to advance from before the first play")

	require.NoError(t, c.PlayChapter(ctx, 1))
	assert.False(t, c.HasPrevious())
	assert.True(t, c.HasNext())

	require.NoError(t, c.Previous(ctx))
	assert.Equal(t, 1, c.Snapshot().Chapter)
	assert.Len(t, m.URLs(), 1)

	require.NoError(t, c.Next(ctx))
	assert.Equal(t, 2, c.Snapshot().Chapter)
	assert.True(t, c.HasPrevious())

	require.NoError(t, c.Previous(ctx))
	assert.Equal(t, 1, c.Snapshot().Chapter)
}

func TestChapterPlayer_SetReciterRestartsChapter(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"ahmed_ibn_3ali_al-3ajamy", testChapterAltBase + "/ahmed_ibn_3ali_al-3ajamy//001.mp3"},
		{"maher_almu3aiqly/year1422-1423", testChapterBase + "/maher_almu3aiqly/year1422-1423/1.mp3"},
		{"mishari_al_afasy/murattal", testChapterBase + "/mishari_al_afasy/murattal/001.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, m, store := newChapterFixture(t)
			ctx := context.Background()
			require.NoError(t, c.PlayChapter(ctx, 1))

			require.NoError(t, c.SetReciter(ctx, tt.id))

			assert.Equal(t, tt.want, m.LastURL())
			assert.Equal(t, []string{tt.id}, store.saved)
			assert.Equal(t, 1, m.MaxLive())
		})
	}
}

func TestChapterPlayer_ChapterChangeEvents(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	sub := c.Subscribe()

	require.NoError(t, c.PlayChapter(context.Background(), 113))
	finishChapter(c, m)

	assert.Equal(t, ChapterChange{Previous: 0, Current: 113}, <-sub.ChapterChanged)
	assert.Equal(t, ChapterChange{Previous: 113, Current: 114}, <-sub.ChapterChanged)
}

func TestChapterPlayer_RestoreReciter(t *testing.T) {
	c, _, store := newChapterFixture(t)
	store.id = "saud_ash-shuraym/murattal"

	assert.Equal(t, "saud_ash-shuraym/murattal", c.RestoreReciter(context.Background()).ID)
}

func TestChapterPlayer_Close(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	require.NoError(t, c.PlayChapter(context.Background(), 1))

	require.NoError(t, c.Close())

	assert.Equal(t, 0, m.Live())
	assert.ErrorIs(t, c.PlayChapter(context.Background(), 2), ErrClosed)
}

func TestChapterPlayer_SetReciterRetriesFailedChapter(t *testing.T) {
	c, m, _ := newChapterFixture(t)
	ctx := context.Background()
	require.NoError(t, c.PlayChapter(ctx, 1))
	m.SetLoadError(errors.New("timeout"))
	require.Error(t, c.Next(ctx))
	require.Equal(t, 0, m.Live())
	m.SetLoadError(nil)

	require.NoError(t, c.SetReciter(ctx, "mishari_al_afasy/murattal"))

	assert.Equal(t, testChapterBase+"/mishari_al_afasy/murattal/001.mp3", m.LastURL())
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, 1, c.Snapshot().Chapter)
	assert.Equal(t, StatePlaying, c.Snapshot().State)
}

func TestChapterPlayer_HasNextDuringLoad(t *testing.T) {
	recs, strategies := reciter.SplitChapterReciters(reciter.DefaultChapterReciters)
	reg, err := reciter.NewRegistry(reciter.DefaultChapterReciterID, recs...)
	require.NoError(t, err)
	g := newGatedTransport()
	c := NewChapterPlayer(ChapterOptions{
		Transport: g,
		Index:     quran.MustDefaultIndex(),
		Reciters:  reg,
		Resolver:  reciter.ChapterResolver{BaseURL: testChapterBase, Strategies: strategies},
	})
	defer c.Close()

	errc := make(chan error, 1)
	go func() { errc <- c.PlayChapter(context.Background(), 2) }()
	<-g.started

	within(t, "HasNext", func() {
		assert.False(t, c.HasNext())
		assert.False(t, c.HasPrevious())
	})
	assert.True(t, c.Snapshot().Loading)

	close(g.release)
	require.NoError(t, <-errc)
	assert.True(t, c.HasNext())
	assert.True(t, c.HasPrevious())
}
