package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// entry is a node in the recency list.
type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// expired reports whether the entry's TTL has passed.
func (e *entry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// Memory is an in-process tier with LRU eviction and per-entry TTLs.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxEntries int
	head       *entry
	tail       *entry
	hits       int64
	misses     int64
	evictions  int64
}

// NewMemory creates a memory tier holding at most maxEntries values.
func NewMemory(maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]*entry),
		maxEntries: maxEntries,
	}
}

// Get implements Store.
func (c *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if node.expired() {
		c.unlink(node)
		c.misses++
		return nil, false
	}

	c.moveToFront(node)
	c.hits++
	return node.value, true
}

// Set implements Store.
func (c *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if node, ok := c.entries[key]; ok {
		node.value = value
		node.expiresAt = expiresAt
		c.moveToFront(node)
		return
	}

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	node := &entry{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(node)
	c.entries[key] = node
}

// Invalidate implements Store.
func (c *Memory) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		c.unlink(node)
	}
}

// InvalidatePrefix implements Store.
func (c *Memory) InvalidatePrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []*entry
	for key, node := range c.entries {
		if strings.HasPrefix(key, prefix) {
			stale = append(stale, node)
		}
	}
	for _, node := range stale {
		c.unlink(node)
	}
}

// Clear implements Store.
func (c *Memory) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.head = nil
	c.tail = nil
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Stats implements Store.
func (c *Memory) Stats(ctx context.Context) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Entries:   len(c.entries),
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total) * 100
	}
	return stats
}

// pushFront adds a node at the head of the recency list.
func (c *Memory) pushFront(node *entry) {
	if c.head == nil {
		c.head = node
		c.tail = node
		return
	}
	node.next = c.head
	c.head.prev = node
	c.head = node
}

// moveToFront marks a node most recently used.
func (c *Memory) moveToFront(node *entry) {
	if node == c.head {
		return
	}
	c.detach(node)
	node.prev = nil
	node.next = nil
	c.pushFront(node)
}

// detach removes a node from the list without touching the map.
func (c *Memory) detach(node *entry) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
}

// unlink removes a node from the list and the map.
func (c *Memory) unlink(node *entry) {
	c.detach(node)
	delete(c.entries, node.key)
}

// evictOldest drops the least recently used entry.
func (c *Memory) evictOldest() {
	if c.tail == nil {
		return
	}
	c.unlink(c.tail)
	c.evictions++
}

var _ Store = (*Memory)(nil)
