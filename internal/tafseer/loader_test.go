package tafseer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/qurancom"
)

type fetchFunc func(ctx context.Context, tafsirID int, pos quran.Position) (*qurancom.Tafsir, error)

func (f fetchFunc) Tafsir(ctx context.Context, tafsirID int, pos quran.Position) (*qurancom.Tafsir, error) {
	return f(ctx, tafsirID, pos)
}

var ayatAlKursi = quran.Position{Surah: 2, Ayah: 255, Global: 262}

func TestLoad_Success(t *testing.T) {
	l := NewLoader(fetchFunc(func(_ context.Context, id int, pos quran.Position) (*qurancom.Tafsir, error) {
		assert.Equal(t, 169, id)
		assert.Equal(t, ayatAlKursi, pos)
		return &qurancom.Tafsir{ResourceName: "Ibn Kathir", Text: "<p>The greatest verse</p>"}, nil
	}), 169)

	got := l.Load(context.Background(), ayatAlKursi)

	require.NoError(t, got.Err)
	assert.Equal(t, "api", got.Source)
	assert.Equal(t, "Ibn Kathir", got.Resource)
	assert.Equal(t, "The greatest verse", got.Text)
}

func TestLoad_NotFoundIsPlaceholder(t *testing.T) {
	l := NewLoader(fetchFunc(func(context.Context, int, quran.Position) (*qurancom.Tafsir, error) {
		return nil, qurancom.ErrNotFound
	}), 169)

	got := l.Load(context.Background(), ayatAlKursi)

	require.NoError(t, got.Err)
	assert.Equal(t, "placeholder", got.Source)
	assert.Equal(t, Placeholder, got.Text)
}

func TestLoad_ErrorKeepsPlaceholder(t *testing.T) {
	boom := errors.New("boom")
	l := NewLoader(fetchFunc(func(context.Context, int, quran.Position) (*qurancom.Tafsir, error) {
		return nil, boom
	}), 169)

	got := l.Load(context.Background(), ayatAlKursi)

	require.ErrorIs(t, got.Err, boom)
	assert.Equal(t, Placeholder, got.Text)
}

func TestLoad_SupersedeCancelsPrior(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		started := make(chan struct{})
		var firstCtxErr error
		l := NewLoader(fetchFunc(func(ctx context.Context, _ int, pos quran.Position) (*qurancom.Tafsir, error) {
			if pos.Ayah == 1 {
				close(started)
				<-ctx.Done()
				firstCtxErr = ctx.Err()
				return nil, ctx.Err()
			}
			return &qurancom.Tafsir{Text: "second"}, nil
		}), 169)

		var wg sync.WaitGroup
		var first Result
		wg.Go(func() {
			first = l.Load(context.Background(), quran.Position{Surah: 1, Ayah: 1, Global: 1})
		})
		<-started

		second := l.Load(context.Background(), quran.Position{Surah: 1, Ayah: 2, Global: 2})
		wg.Wait()

		require.ErrorIs(t, firstCtxErr, context.Canceled)
		require.ErrorIs(t, first.Err, ErrSuperseded)
		require.NoError(t, second.Err)
		assert.Equal(t, "second", second.Text)
	})
}

func TestCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		started := make(chan struct{})
		l := NewLoader(fetchFunc(func(ctx context.Context, _ int, _ quran.Position) (*qurancom.Tafsir, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}), 169)

		done := make(chan Result, 1)
		go func() { done <- l.Load(context.Background(), ayatAlKursi) }()
		<-started
		l.Cancel()

		got := <-done
		require.ErrorIs(t, got.Err, ErrSuperseded)
		l.Cancel()
	})
}
