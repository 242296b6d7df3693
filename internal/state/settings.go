package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Settings are the user preferences stored as one JSON document.
type Settings struct {
	ArabicFontSize    int  `json:"arabicFontSize"`
	MemorizationPause int  `json:"memorizationPause"` // seconds
	IsDarkMode        bool `json:"isDarkMode"`
	AutoPlayOnStart   bool `json:"autoPlayOnStart"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		ArabicFontSize:    34,
		MemorizationPause: 4,
		IsDarkMode:        false,
		AutoPlayOnStart:   true,
	}
}

// PauseDuration returns the memorization pause as a duration.
func (s Settings) PauseDuration() time.Duration {
	return time.Duration(s.MemorizationPause) * time.Second
}

// SettingNames lists the names accepted by Settings.Set.
var SettingNames = []string{"arabicFontSize", "memorizationPause", "isDarkMode", "autoPlayOnStart"}

// Set assigns a setting by its JSON name.
func (s *Settings) Set(name, value string) error {
	switch strings.ToLower(name) {
	case "arabicfontsize":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("arabicFontSize must be a positive integer, got %q", value)
		}
		s.ArabicFontSize = n
	case "memorizationpause":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("memorizationPause must be a non-negative number of seconds, got %q", value)
		}
		s.MemorizationPause = n
	case "isdarkmode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("isDarkMode must be true or false, got %q", value)
		}
		s.IsDarkMode = b
	case "autoplayonstart":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("autoPlayOnStart must be true or false, got %q", value)
		}
		s.AutoPlayOnStart = b
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", name, strings.Join(SettingNames, ", "))
	}
	return nil
}

// Settings returns stored settings merged over the defaults. A missing or
// unreadable document yields the defaults.
func (m *Manager) Settings(ctx context.Context) (Settings, error) {
	s := DefaultSettings()
	raw, err := m.store.Get(ctx, KeySettings)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	// Unmarshal over the defaults so absent fields keep them.
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.logger.Warn("ignoring corrupt settings", "err", err)
		return DefaultSettings(), nil
	}
	return s, nil
}

// SaveSettings stores s.
func (m *Manager) SaveSettings(ctx context.Context, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, KeySettings, string(data))
}

// UpdateSettings applies fn to the stored settings and saves the result.
func (m *Manager) UpdateSettings(ctx context.Context, fn func(*Settings) error) (Settings, error) {
	m.listMu.Lock()
	defer m.listMu.Unlock()

	s, err := m.Settings(ctx)
	if err != nil {
		return s, err
	}
	if err := fn(&s); err != nil {
		return s, err
	}
	return s, m.SaveSettings(ctx, s)
}
