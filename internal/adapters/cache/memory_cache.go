package cache

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock returns the current time
type Clock func() time.Time

// MemoryCache is an in-memory key-value store that records when each entry was created,
// last read and last overwritten. Values and metadata are always added and removed together.
type MemoryCache[K comparable, V any] struct {
	values map[K]V
	meta   map[K]Meta[K]
	mu     sync.Mutex
	logger *zap.Logger
	now    Clock
}

// NewMemoryCache creates a new in-memory cache. A nil clock uses time.Now.
func NewMemoryCache[K comparable, V any](logger *zap.Logger, clock Clock) *MemoryCache[K, V] {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MemoryCache[K, V]{
		values: make(map[K]V),
		meta:   make(map[K]Meta[K]),
		logger: logger,
		now:    clock,
	}
}

// Now returns the cache clock's current time
func (c *MemoryCache[K, V]) Now() time.Time {
	return c.now()
}

// Set stores value under key. A new key gets fresh metadata; an existing key keeps its
// creation and access times and records the update.
func (c *MemoryCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if meta, ok := c.meta[key]; ok {
		c.meta[key] = meta.WithUpdate(now)
	} else {
		c.meta[key] = newMeta(key, now)
	}
	c.values[key] = value

	c.logger.Debug("Set cache entry",
		zap.Any("key", key),
		zap.Any("value", value),
		zap.Int("size", len(c.values)))
}

// Get retrieves the value for key and records the access
func (c *MemoryCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.values[key]
	if !ok {
		return value, false
	}
	c.meta[key] = c.meta[key].WithAccess(c.now())

	return value, true
}

// GetMeta returns the metadata for key without recording an access
func (c *MemoryCache[K, V]) GetMeta(key K) (Meta[K], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	meta, ok := c.meta[key]
	return meta, ok
}

// Remove deletes key and its metadata, reporting whether it was present
func (c *MemoryCache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[key]; !ok {
		c.logger.Debug("Unknown cache key", zap.Any("key", key))
		return false
	}
	delete(c.values, key)
	delete(c.meta, key)

	c.logger.Debug("Removed cache entry", zap.Any("key", key), zap.Int("size", len(c.values)))
	return true
}

// MetaData returns a snapshot of all entries' metadata, most recently accessed first
func (c *MemoryCache[K, V]) MetaData() []Meta[K] {
	c.mu.Lock()
	snapshot := make([]Meta[K], 0, len(c.meta))
	for _, meta := range c.meta {
		snapshot = append(snapshot, meta)
	}
	c.mu.Unlock()

	slices.SortStableFunc(snapshot, func(a, b Meta[K]) int {
		return b.LastAccessedAt.Compare(a.LastAccessedAt)
	})
	return snapshot
}

// Len returns the number of cached entries
func (c *MemoryCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// RemoveIfNotAccessedSince deletes the entry described by meta unless it has been read
// after meta was captured, reporting whether it was removed
func (c *MemoryCache[K, V]) RemoveIfNotAccessedSince(meta Meta[K]) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.meta[meta.Key]
	if !ok || !current.LastAccessedAt.Equal(meta.LastAccessedAt) {
		return false
	}
	delete(c.values, meta.Key)
	delete(c.meta, meta.Key)

	c.logger.Debug("Removed cache entry", zap.Any("key", meta.Key), zap.Int("size", len(c.values)))
	return true
}
