package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/internal/cache"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10)

	_, ok := c.Get(ctx, "trips:a")
	assert.False(t, ok)

	c.Set(ctx, "trips:a", []byte("payload"), 0)

	value, ok := c.Get(ctx, "trips:a")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), value)
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10)

	c.Set(ctx, "stats:a", []byte("short-lived"), time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(ctx, "stats:a")
	assert.False(t, ok)
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(2)

	c.Set(ctx, "trips:a", []byte("a"), 0)
	c.Set(ctx, "trips:b", []byte("b"), 0)

	// Touch a so b becomes the oldest.
	_, ok := c.Get(ctx, "trips:a")
	require.True(t, ok)

	c.Set(ctx, "trips:c", []byte("c"), 0)

	_, ok = c.Get(ctx, "trips:b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get(ctx, "trips:a")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "trips:c")
	assert.True(t, ok)

	assert.Equal(t, int64(1), c.Stats(ctx).Evictions)
}

func TestMemory_SetUpdatesExistingEntry(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(2)

	c.Set(ctx, "trips:a", []byte("old"), 0)
	c.Set(ctx, "trips:a", []byte("new"), 0)

	value, ok := c.Get(ctx, "trips:a")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), value)
	assert.Equal(t, 1, c.Stats(ctx).Entries)
}

func TestMemory_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10)

	c.Set(ctx, "trips:a", []byte("a"), 0)
	c.Set(ctx, "trips:b", []byte("b"), 0)
	c.Set(ctx, "ships:a", []byte("s"), 0)

	c.InvalidatePrefix(ctx, "trips:")

	_, ok := c.Get(ctx, "trips:a")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "trips:b")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "ships:a")
	assert.True(t, ok)
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10)

	c.Set(ctx, "trips:a", []byte("a"), 0)
	c.Clear(ctx)

	stats := c.Stats(ctx)
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, int64(0), stats.Hits)
}

func TestMemory_Stats(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory(10)

	c.Set(ctx, "trips:a", []byte("a"), 0)
	c.Get(ctx, "trips:a")
	c.Get(ctx, "trips:a")
	c.Get(ctx, "trips:missing")

	stats := c.Stats(ctx)
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
	assert.InDelta(t, 66.6, stats.HitRate, 0.1)
}

// recordingStore captures Set calls so TTL routing can be asserted.
type recordingStore struct {
	cache.Store
	lastKey string
	lastTTL time.Duration
}

func (r *recordingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	r.lastKey = key
	r.lastTTL = ttl
	r.Store.Set(ctx, key, value, ttl)
}

func TestManager_KeyIsStableAndLayerScoped(t *testing.T) {
	m := cache.New(cache.NewMemory(10))

	first := m.Key(cache.LayerTrips, "list", "search=athens")
	second := m.Key(cache.LayerTrips, "list", "search=athens")
	other := m.Key(cache.LayerTrips, "list", "search=mykonos")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.True(t, len(first) > len(cache.LayerTrips)+1)
	assert.Equal(t, cache.LayerTrips+":", first[:len(cache.LayerTrips)+1])
}

func TestManager_SetUsesLayerTTL(t *testing.T) {
	ctx := context.Background()
	rec := &recordingStore{Store: cache.NewMemory(10)}
	m := cache.New(rec,
		cache.WithLayerTTL(cache.LayerTrips, 42*time.Second),
		cache.WithDefaultTTL(7*time.Second),
	)

	m.Set(ctx, m.Key(cache.LayerTrips, "list"), []byte("t"))
	assert.Equal(t, 42*time.Second, rec.lastTTL)

	m.Set(ctx, m.Key("unlisted", "list"), []byte("u"))
	assert.Equal(t, 7*time.Second, rec.lastTTL)
}

func TestManager_InvalidateLayer(t *testing.T) {
	ctx := context.Background()
	m := cache.New(cache.NewMemory(10))

	tripKey := m.Key(cache.LayerTrips, "list")
	shipKey := m.Key(cache.LayerShips, "list")
	m.Set(ctx, tripKey, []byte("t"))
	m.Set(ctx, shipKey, []byte("s"))

	m.InvalidateLayer(ctx, cache.LayerTrips)

	_, ok := m.Get(ctx, tripKey)
	assert.False(t, ok)
	_, ok = m.Get(ctx, shipKey)
	assert.True(t, ok)
}

func TestManager_NilStoreDisablesCaching(t *testing.T) {
	ctx := context.Background()
	m := cache.New(nil)

	key := m.Key(cache.LayerTrips, "list")
	m.Set(ctx, key, []byte("t"))

	_, ok := m.Get(ctx, key)
	assert.False(t, ok)
	assert.Equal(t, cache.Stats{}, m.Stats(ctx))
}
