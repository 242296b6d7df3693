package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quranpulse/quranpulse/internal/catalog"
	"github.com/quranpulse/quranpulse/internal/config"
	"github.com/quranpulse/quranpulse/internal/errmsg"
	"github.com/quranpulse/quranpulse/internal/quran"
	"github.com/quranpulse/quranpulse/internal/qurancom"
	"github.com/quranpulse/quranpulse/internal/state"
)

// app holds the services shared by every command.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	closeLog func() error
	state    *state.Manager
	api      *qurancom.Client
	catalog  *catalog.Catalog
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := setupLog(cfg)
	if err != nil {
		return nil, err
	}

	sc := cfg.GetStoreConfig()
	mgr, err := state.Open(ctx, state.Options{
		Backend:  sc.Backend,
		Path:     sc.Path,
		RedisURI: sc.RedisURI,
		Logger:   logger,
	})
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("open state: %w", err)
	}

	api := cfg.GetAPIConfig()
	client := qurancom.New(qurancom.Options{
		BaseURL:           api.BaseURL,
		Timeout:           api.Timeout(),
		RequestsPerMinute: api.RequestsPerMinute,
	})

	logger.Info("starting", "version", Version, "store", sc.Backend)

	return &app{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		state:    mgr,
		api:      client,
		catalog: catalog.New(catalog.Options{
			Source:        client,
			Store:         mgr.Store(),
			TTL:           cfg.CacheTTL(),
			TranslationID: api.TranslationID,
			Logger:        logger,
		}),
	}, nil
}

// chapters returns the chapter list and an index over it. When the list
// cannot be indexed the built-in table is used.
func (a *app) chapters(ctx context.Context) ([]quran.Chapter, *quran.Index, error) {
	chapters, err := a.catalog.Chapters(ctx)
	if err != nil {
		return nil, nil, errors.New(errmsg.Format(errmsg.OpChaptersLoad, err))
	}
	idx, err := quran.NewIndex(chapters)
	if err != nil {
		a.logger.Warn("chapter list rejected", "err", err)
		chapters = quran.DefaultChapters()
		idx = quran.MustDefaultIndex()
	}
	return chapters, idx, nil
}

func (a *app) Close() error {
	err := a.state.Close()
	_ = a.closeLog()
	return err
}

// withApp runs fn with a fully wired app and closes it afterwards.
func withApp(ctx context.Context, fn func(*app) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
