//go:build linux

package mpris

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/quranpulse/quranpulse/internal/playback"
	"github.com/quranpulse/quranpulse/internal/quran"
)

// Adapter exposes a verse session or chapter player over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter. Commands received over
// D-Bus run with ctx.
func New(ctx context.Context, opts Options) (*Adapter, error) {
	if opts.Controls == nil || opts.Index == nil {
		return nil, fmt.Errorf("mpris: controls and index are required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	a := &Adapter{
		server: server.NewServer("quranpulse", &rootAdapter{}, newPlayerAdapter(ctx, opts)),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			opts.Logger.Debug("mpris listen stopped", "err", err)
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // The TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "QuranPulse", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	ctx      context.Context
	controls Controls
	index    *quran.Index
}

func newPlayerAdapter(ctx context.Context, opts Options) *playerAdapter {
	return &playerAdapter{ctx: ctx, controls: opts.Controls, index: opts.Index}
}

func (p *playerAdapter) Next() error {
	return p.controls.Next(p.ctx)
}

func (p *playerAdapter) Previous() error {
	return p.controls.Previous(p.ctx)
}

func (p *playerAdapter) Pause() error {
	if p.controls.Snapshot().State != playback.StatePlaying {
		return nil
	}
	return p.controls.TogglePlayPause(p.ctx)
}

func (p *playerAdapter) PlayPause() error {
	return p.controls.TogglePlayPause(p.ctx)
}

// Stop pauses; streams stay loaded so the verse can resume.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if p.controls.Snapshot().State == playback.StatePlaying {
		return nil
	}
	return p.controls.TogglePlayPause(p.ctx)
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	snap := p.controls.Snapshot()
	if !snap.State.IsActive() {
		return nil
	}
	target := max(snap.Position+time.Duration(offset)*time.Microsecond, 0)
	return p.controls.SeekTo(p.ctx, target)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.controls.Snapshot()
	if !snap.State.IsActive() || trackID != trackPath(snap) {
		return nil
	}
	return p.controls.SeekTo(p.ctx, time.Duration(position)*time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.controls.Snapshot().State {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.controls.Snapshot()
	if snap.Chapter == 0 {
		return types.Metadata{}, nil
	}
	ch, err := p.index.Chapter(snap.Chapter)
	if err != nil {
		return types.Metadata{}, err
	}

	name := ch.Name
	if name == "" {
		name = fmt.Sprintf("Surah %d", ch.ID)
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(trackPath(snap)),
		Length:      types.Microseconds(snap.Duration.Microseconds()),
		Title:       name,
		Artist:      []string{snap.Reciter.Name},
		Album:       ch.NameArabic,
		TrackNumber: ch.ID,
	}
	if snap.Verse != nil {
		meta.Title = name + " " + snap.Verse.Key()
		meta.TrackNumber = snap.Verse.Ayah
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.controls.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.controls.Snapshot().Chapter != 0, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.controls.Snapshot().Chapter != 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.controls.Snapshot().State.IsActive(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func trackPath(snap playback.Snapshot) string {
	if snap.Verse != nil {
		return fmt.Sprintf("/org/quranpulse/Verse/%d_%d", snap.Verse.Surah, snap.Verse.Ayah)
	}
	return fmt.Sprintf("/org/quranpulse/Chapter/%d", snap.Chapter)
}
