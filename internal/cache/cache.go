// Package cache provides response caching for the read endpoints.
// Entries are grouped into named layers so writes can invalidate a
// whole entity family at once.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Layer names used by the HTTP handlers.
const (
	LayerTrips     = "trips"
	LayerShips     = "ships"
	LayerResorts   = "resorts"
	LayerLocations = "locations"
	LayerVenues    = "venues"
	LayerAmenities = "amenities"
	LayerStats     = "stats"
)

// Stats represents cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Entries   int
	Evictions int64
	HitRate   float64
}

// Store is a single cache tier.
type Store interface {
	// Get retrieves a value. A miss returns false.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Invalidate removes a specific key.
	Invalidate(ctx context.Context, key string)
	// InvalidatePrefix removes all keys with the given prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
	// Clear removes all entries.
	Clear(ctx context.Context)
	// Stats returns tier statistics.
	Stats(ctx context.Context) Stats
}

// Manager routes cache operations to a tier and applies per-layer TTLs.
type Manager struct {
	store      Store
	ttls       map[string]time.Duration
	defaultTTL time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithLayerTTL overrides the TTL for one layer.
func WithLayerTTL(layer string, ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttls[layer] = ttl
	}
}

// WithDefaultTTL overrides the TTL for layers without an explicit one.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.defaultTTL = ttl
	}
}

// New creates a Manager over a tier. A nil store disables caching.
func New(store Store, opts ...Option) *Manager {
	if store == nil {
		store = nop{}
	}
	m := &Manager{
		store:      store,
		defaultTTL: 5 * time.Minute,
		ttls: map[string]time.Duration{
			LayerLocations: 30 * time.Minute,
			LayerVenues:    30 * time.Minute,
			LayerAmenities: 30 * time.Minute,
			LayerStats:     time.Minute,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key builds a cache key inside a layer. The parts are hashed so query
// strings of any length produce a bounded key.
func (m *Manager) Key(layer string, parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	sum := hex.EncodeToString(hasher.Sum(nil))
	return layer + ":" + sum[:16]
}

// Get retrieves a cached value.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	return m.store.Get(ctx, key)
}

// Set stores a value with the TTL of the key's layer.
func (m *Manager) Set(ctx context.Context, key string, value []byte) {
	m.store.Set(ctx, key, value, m.ttlFor(key))
}

// Invalidate removes a specific key.
func (m *Manager) Invalidate(ctx context.Context, key string) {
	m.store.Invalidate(ctx, key)
}

// InvalidateLayer removes every key in a layer.
func (m *Manager) InvalidateLayer(ctx context.Context, layer string) {
	m.store.InvalidatePrefix(ctx, layer+":")
}

// Clear removes all entries.
func (m *Manager) Clear(ctx context.Context) {
	m.store.Clear(ctx)
}

// Stats returns tier statistics.
func (m *Manager) Stats(ctx context.Context) Stats {
	return m.store.Stats(ctx)
}

// ttlFor resolves the TTL from the layer prefix of a key.
func (m *Manager) ttlFor(key string) time.Duration {
	layer := key
	if idx := strings.IndexByte(key, ':'); idx >= 0 {
		layer = key[:idx]
	}
	if ttl, ok := m.ttls[layer]; ok {
		return ttl
	}
	return m.defaultTTL
}

// nop is the disabled-cache tier.
type nop struct{}

func (nop) Get(context.Context, string) ([]byte, bool)            { return nil, false }
func (nop) Set(context.Context, string, []byte, time.Duration)    {}
func (nop) Invalidate(context.Context, string)                    {}
func (nop) InvalidatePrefix(context.Context, string)              {}
func (nop) Clear(context.Context)                                 {}
func (nop) Stats(context.Context) Stats                           { return Stats{} }

var _ Store = nop{}
