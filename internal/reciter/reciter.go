// Package reciter maps reciter identifiers to playable audio URLs.
//
// Two registries exist: one for verse-level streaming and one for
// chapter-level streaming. Their id spaces are disjoint.
package reciter

import (
	"errors"
	"fmt"
)

// Reciter is an audio performer. ID is opaque and used both as the
// persisted preference and as a path segment in audio URLs.
type Reciter struct {
	ID   string `koanf:"id"`
	Name string `koanf:"name"`
}

// ErrUnknown is returned when a reciter id is not registered.
var ErrUnknown = errors.New("unknown reciter")

// Registry is an ordered set of reciters with a default.
type Registry struct {
	reciters  []Reciter
	byID      map[string]int
	defaultID string
}

// NewRegistry creates a registry. defaultID must be one of reciters.
func NewRegistry(defaultID string, reciters ...Reciter) (*Registry, error) {
	if len(reciters) == 0 {
		return nil, errors.New("registry needs at least one reciter")
	}
	r := &Registry{
		reciters:  make([]Reciter, 0, len(reciters)),
		byID:      make(map[string]int, len(reciters)),
		defaultID: defaultID,
	}
	for _, rec := range reciters {
		if rec.ID == "" {
			return nil, errors.New("reciter with empty id")
		}
		if _, dup := r.byID[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate reciter %q", rec.ID)
		}
		r.byID[rec.ID] = len(r.reciters)
		r.reciters = append(r.reciters, rec)
	}
	if defaultID == "" {
		r.defaultID = r.reciters[0].ID
	} else if _, ok := r.byID[defaultID]; !ok {
		return nil, fmt.Errorf("default reciter %q: %w", defaultID, ErrUnknown)
	}
	return r, nil
}

// All returns the reciters in registration order.
func (r *Registry) All() []Reciter {
	out := make([]Reciter, len(r.reciters))
	copy(out, r.reciters)
	return out
}

// Len returns the number of reciters.
func (r *Registry) Len() int { return len(r.reciters) }

// Default returns the default reciter.
func (r *Registry) Default() Reciter {
	return r.reciters[r.byID[r.defaultID]]
}

// Lookup returns the reciter with the given id.
func (r *Registry) Lookup(id string) (Reciter, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Reciter{}, false
	}
	return r.reciters[i], true
}

// Resolve returns the reciter with the given id, or the default when the id
// is empty or not registered.
func (r *Registry) Resolve(id string) Reciter {
	if rec, ok := r.Lookup(id); ok {
		return rec
	}
	return r.Default()
}

// IndexOf returns the position of id in registration order, or -1.
func (r *Registry) IndexOf(id string) int {
	i, ok := r.byID[id]
	if !ok {
		return -1
	}
	return i
}

// Cycle returns the reciter after id, wrapping around.
func (r *Registry) Cycle(id string) Reciter {
	i := r.IndexOf(id)
	return r.reciters[(i+1)%len(r.reciters)]
}
