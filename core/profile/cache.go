// Package profile defines the hourly-profile source contract and the
// run-scoped cache in front of it.
package profile

import (
	"context"
	"sync"

	"github.com/vanditkanudia/gridgap/core/model"
)

// Source fetches one hourly series by (zone, technology, year) key.
// Implementations live in infra/profile. A key the source cannot serve is a
// MissingDataError, never a silent default.
type Source interface {
	Fetch(ctx context.Context, key model.ProfileKey) (model.HourlyProfile, error)
}

// Cache is the run-scoped profile cache: each key is fetched and validated
// once, then served from memory. It is owned by a single run and discarded
// with it; there is no process-global or on-disk profile state.
type Cache struct {
	src   Source
	hours int

	mu      sync.Mutex
	entries map[model.ProfileKey]model.HourlyProfile
}

// NewCache wraps a source. hours is the modeled horizon the profiles must
// cover exactly.
func NewCache(src Source, hours int) *Cache {
	return &Cache{
		src:     src,
		hours:   hours,
		entries: make(map[model.ProfileKey]model.HourlyProfile),
	}
}

// Get returns the profile for key, fetching through the source on first
// use. Profiles are validated against the horizon before entering the
// cache.
func (c *Cache) Get(ctx context.Context, key model.ProfileKey) (model.HourlyProfile, error) {
	c.mu.Lock()
	if p, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return p, nil
	}
	c.mu.Unlock()

	p, err := c.src.Fetch(ctx, key)
	if err != nil {
		return model.HourlyProfile{}, err
	}
	if err := p.Validate(c.hours); err != nil {
		return model.HourlyProfile{}, err
	}

	c.mu.Lock()
	c.entries[key] = p
	c.mu.Unlock()
	return p, nil
}

// Len returns the number of cached profiles.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
