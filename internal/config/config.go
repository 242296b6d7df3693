package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/quranpulse/quranpulse/internal/reciter"
)

type Config struct {
	Audio    AudioConfig    `koanf:"audio"`
	Reciters RecitersConfig `koanf:"reciters"`
	API      APIConfig      `koanf:"api"`
	Store    StoreConfig    `koanf:"store"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Log      LogConfig      `koanf:"log"`
}

// AudioConfig locates recitation audio and tunes the player.
type AudioConfig struct {
	AyahBaseURL         string `koanf:"ayah_base_url"`
	ChapterBaseURL      string `koanf:"chapter_base_url"`
	ChapterAltBaseURL   string `koanf:"chapter_alt_base_url"` // used by "double_separator" reciters
	StatusIntervalMS    int    `koanf:"status_interval_ms"`   // position update cadence (default: 250)
	FetchTimeoutSeconds int    `koanf:"fetch_timeout_seconds"`
}

// ReciterEntry is one [[reciters.ayah]] or [[reciters.chapter]] table.
type ReciterEntry struct {
	ID     string `koanf:"id"`
	Name   string `koanf:"name"`
	Naming string `koanf:"naming"` // chapter only: "plain", "zero_padded", "double_separator"
}

// RecitersConfig replaces the built-in reciter lists when entries are given.
type RecitersConfig struct {
	DefaultAyah    string         `koanf:"default_ayah"`
	DefaultChapter string         `koanf:"default_chapter"`
	Ayah           []ReciterEntry `koanf:"ayah"`
	Chapter        []ReciterEntry `koanf:"chapter"`
}

// APIConfig configures the quran.com client.
type APIConfig struct {
	BaseURL           string `koanf:"base_url"`
	TranslationID     int    `koanf:"translation_id"`
	TafsirID          int    `koanf:"tafsir_id"`
	RequestsPerMinute int    `koanf:"requests_per_minute"`
	TimeoutSeconds    int    `koanf:"timeout_seconds"`
}

// StoreConfig selects where preferences are persisted.
type StoreConfig struct {
	Backend  string `koanf:"backend"` // "sqlite" (default) or "redis"
	Path     string `koanf:"path"`    // sqlite file (default: XDG data dir)
	RedisURI string `koanf:"redis_uri"`
}

// CatalogConfig controls the chapter list cache.
type CatalogConfig struct {
	CacheTTLDays int `koanf:"cache_ttl_days"` // default: 7
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // default: XDG state dir
}

// Env holds environment overrides.
type Env struct {
	ConfigPath string `env:"QURANPULSE_CONFIG"`
	LogLevel   string `env:"QURANPULSE_LOG_LEVEL"`
	RedisURI   string `env:"QURANPULSE_REDIS_URI"`
	Store      string `env:"QURANPULSE_STORE"`
}

const (
	DefaultAPIBaseURL    = "https://api.quran.com/api/v4"
	DefaultTranslationID = 85
	DefaultTafsirID      = 169
)

func Load() (*Config, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	paths := getConfigPaths()
	if e.ConfigPath != "" {
		paths = append(paths, expandPath(e.ConfigPath))
	}
	return load(paths, e)
}

func load(paths []string, e Env) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if e.LogLevel != "" {
		cfg.Log.Level = e.LogLevel
	}
	if e.Store != "" {
		cfg.Store.Backend = e.Store
	}
	if e.RedisURI != "" {
		cfg.Store.RedisURI = e.RedisURI
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/quranpulse/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "quranpulse", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.AyahBaseURL == "" {
		cfg.AyahBaseURL = reciter.DefaultAyahBaseURL
	}
	if cfg.ChapterBaseURL == "" {
		cfg.ChapterBaseURL = reciter.DefaultChapterBaseURL
	}
	if cfg.ChapterAltBaseURL == "" {
		cfg.ChapterAltBaseURL = reciter.DefaultChapterAltBaseURL
	}
	if cfg.StatusIntervalMS <= 0 || cfg.StatusIntervalMS >= 1000 {
		cfg.StatusIntervalMS = 250
	}
	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = 120
	}

	return cfg
}

// StatusInterval returns the position update cadence.
func (a AudioConfig) StatusInterval() time.Duration {
	return time.Duration(a.StatusIntervalMS) * time.Millisecond
}

// FetchTimeout returns the download timeout for one stream.
func (a AudioConfig) FetchTimeout() time.Duration {
	return time.Duration(a.FetchTimeoutSeconds) * time.Second
}

// AyahRegistry builds the verse-level reciter registry.
func (c *Config) AyahRegistry() (*reciter.Registry, error) {
	list := reciter.DefaultAyahReciters
	if len(c.Reciters.Ayah) > 0 {
		list = make([]reciter.Reciter, 0, len(c.Reciters.Ayah))
		for _, e := range c.Reciters.Ayah {
			list = append(list, reciter.Reciter{ID: e.ID, Name: e.Name})
		}
	}
	def := c.Reciters.DefaultAyah
	if def == "" && len(c.Reciters.Ayah) == 0 {
		def = reciter.DefaultAyahReciterID
	}
	reg, err := reciter.NewRegistry(def, list...)
	if err != nil {
		return nil, fmt.Errorf("ayah reciters: %w", err)
	}
	return reg, nil
}

// AyahResolver returns the verse URL resolver.
func (c *Config) AyahResolver() reciter.AyahResolver {
	return reciter.AyahResolver{BaseURL: c.GetAudioConfig().AyahBaseURL}
}

// ChapterReciters builds the chapter-level registry and its resolver.
func (c *Config) ChapterReciters() (*reciter.Registry, reciter.ChapterResolver, error) {
	list := reciter.DefaultChapterReciters
	if len(c.Reciters.Chapter) > 0 {
		list = make([]reciter.ChapterReciter, 0, len(c.Reciters.Chapter))
		for _, e := range c.Reciters.Chapter {
			st, err := reciter.ParseStrategy(e.Naming)
			if err != nil {
				return nil, reciter.ChapterResolver{}, fmt.Errorf("chapter reciter %q: %w", e.ID, err)
			}
			list = append(list, reciter.ChapterReciter{
				Reciter: reciter.Reciter{ID: e.ID, Name: e.Name},
				Naming:  st,
			})
		}
	}
	def := c.Reciters.DefaultChapter
	if def == "" && len(c.Reciters.Chapter) == 0 {
		def = reciter.DefaultChapterReciterID
	}

	recs, strategies := reciter.SplitChapterReciters(list)
	reg, err := reciter.NewRegistry(def, recs...)
	if err != nil {
		return nil, reciter.ChapterResolver{}, fmt.Errorf("chapter reciters: %w", err)
	}
	audio := c.GetAudioConfig()
	return reg, reciter.ChapterResolver{
		BaseURL:    audio.ChapterBaseURL,
		AltBaseURL: audio.ChapterAltBaseURL,
		Strategies: strategies,
	}, nil
}

// GetAPIConfig returns the API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBaseURL
	}
	if cfg.TranslationID <= 0 {
		cfg.TranslationID = DefaultTranslationID
	}
	if cfg.TafsirID <= 0 {
		cfg.TafsirID = DefaultTafsirID
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}

	return cfg
}

// Timeout returns the per-request API timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GetStoreConfig returns the store configuration with defaults applied.
func (c *Config) GetStoreConfig() StoreConfig {
	cfg := c.Store
	if cfg.Backend == "" {
		cfg.Backend = "sqlite"
	}
	return cfg
}

// CacheTTL returns how long the chapter list is cached.
func (c *Config) CacheTTL() time.Duration {
	days := c.Catalog.CacheTTLDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() (LogConfig, error) {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		path, err := xdg.StateFile(filepath.Join("quranpulse", "quranpulse.log"))
		if err != nil {
			return cfg, err
		}
		cfg.File = path
	}
	return cfg, nil
}
