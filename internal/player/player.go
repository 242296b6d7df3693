// internal/player/player.go
package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultStatusInterval is the cadence of position updates while playing.
const DefaultStatusInterval = 250 * time.Millisecond

// Speaker output rate. Streams with a different rate are resampled.
var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Options configures a Player.
type Options struct {
	HTTPClient     *http.Client
	StatusInterval time.Duration
	UserAgent      string
	Logger         *log.Logger
}

// Player streams remote MP3 files through the system speaker.
type Player struct {
	mu        sync.Mutex
	client    *http.Client
	interval  time.Duration
	userAgent string
	logger    *log.Logger

	status chan Status
	nextID HandleID
	cur    *stream
}

// stream is one loaded recitation.
type stream struct {
	id       HandleID
	url      string
	decoder  beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	ended    chan struct{} // signalled by the speaker at end of playthrough
	unloaded chan struct{}
	finished atomic.Bool
}

// New creates a Player. Zero options select defaults.
func New(opts Options) *Player {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 2 * time.Minute}
	}
	if opts.StatusInterval <= 0 {
		opts.StatusInterval = DefaultStatusInterval
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "quranpulse"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Player{
		client:    opts.HTTPClient,
		interval:  opts.StatusInterval,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
		status:    make(chan Status, 16),
	}
}

// Load implements Transport.
func (p *Player) Load(ctx context.Context, url string, autoplay bool) (HandleID, error) {
	// The fetch runs without mu held.
	data, err := p.fetch(ctx, url)
	if err != nil {
		return 0, &LoadError{URL: url, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cur != nil {
		p.logger.Warn("load with stream still loaded, unloading", "handle", p.cur.id)
		p.unloadLocked()
	}

	decoder, format, err := decodeGoMP3(newMemFile(data))
	if err != nil {
		return 0, &LoadError{URL: url, Err: fmt.Errorf("decode: %w", err)}
	}

	outRate, err := initSpeaker(format.SampleRate)
	if err != nil {
		decoder.Close()
		return 0, &LoadError{URL: url, Err: fmt.Errorf("init speaker: %w", err)}
	}

	var src beep.Streamer = decoder
	if format.SampleRate != outRate {
		src = beep.Resample(4, format.SampleRate, outRate, decoder)
	}

	p.nextID++
	s := &stream{
		id:       p.nextID,
		url:      url,
		decoder:  decoder,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: src, Paused: !autoplay},
		ended:    make(chan struct{}, 1),
		unloaded: make(chan struct{}),
	}
	p.cur = s
	s.start()
	go p.monitor(s)

	p.logger.Debug("stream loaded",
		"handle", s.id,
		"url", url,
		"size", humanize.Bytes(uint64(len(data))),
		"duration", s.duration(),
		"autoplay", autoplay)
	return s.id, nil
}

// Unload implements Transport.
func (p *Player) Unload() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unloadLocked()
	return nil
}

// Close releases the loaded stream.
func (p *Player) Close() error {
	return p.Unload()
}

// Status implements Transport.
func (p *Player) Status() <-chan Status {
	return p.status
}

// State returns the current transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.cur == nil:
		return Unloaded
	case p.cur.playing():
		return Playing
	default:
		return Paused
	}
}

func (p *Player) unloadLocked() {
	s := p.cur
	if s == nil {
		return
	}
	p.cur = nil
	close(s.unloaded)
	speaker.Clear()
	if err := s.decoder.Close(); err != nil {
		p.logger.Debug("close decoder", "handle", s.id, "err", err)
	}

	// Drop events the old stream left behind.
	for {
		select {
		case <-p.status:
		default:
			p.logger.Debug("stream unloaded", "handle", s.id)
			return
		}
	}
}

// initSpeaker initializes the speaker once and returns its sample rate.
func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return speakerSampleRate, nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return 0, err
	}
	speakerInitialized = true
	speakerSampleRate = rate
	return rate, nil
}

// start queues a playthrough on the speaker.
func (s *stream) start() {
	s.finished.Store(false)
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		s.finished.Store(true)
		select {
		case s.ended <- struct{}{}:
		default:
		}
	})))
}

func (s *stream) playing() bool {
	if s.finished.Load() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !s.ctrl.Paused
}

func (s *stream) position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.decoder.Position())
}

func (s *stream) duration() time.Duration {
	return s.format.SampleRate.D(s.decoder.Len())
}

func (s *stream) snapshot() Status {
	return Status{
		Handle:   s.id,
		Position: s.position(),
		Duration: s.duration(),
		Playing:  s.playing(),
	}
}
