package state

import (
	"context"
	"errors"
	"strings"
)

// DefaultCity is used for prayer times until a city is saved.
const DefaultCity = "Makkah"

// City returns the saved prayer-times city.
func (m *Manager) City(ctx context.Context) (string, error) {
	city, err := m.store.Get(ctx, KeyCity)
	if errors.Is(err, ErrNotFound) || (err == nil && city == "") {
		return DefaultCity, nil
	}
	if err != nil {
		return DefaultCity, err
	}
	return city, nil
}

// SetCity saves the prayer-times city.
func (m *Manager) SetCity(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return m.store.Delete(ctx, KeyCity)
	}
	return m.store.Set(ctx, KeyCity, city)
}
