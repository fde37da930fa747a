package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryMenuCache is a thread-safe in-memory MenuCache. Expired entries
// are dropped lazily on read and swept on write once the store grows past
// its soft cap.
type InMemoryMenuCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	maxKeys int
	clock   func() time.Time
}

// InMemoryConfig holds configuration for InMemoryMenuCache.
type InMemoryConfig struct {
	// TTL applied to entries stored without an explicit expiry.
	// Default: DefaultTTL.
	TTL time.Duration

	// MaxKeys is the soft cap that triggers an expired-entry sweep.
	// Default: 1000.
	MaxKeys int

	// Clock provides time operations for testing. Default: time.Now.
	Clock func() time.Time
}

// NewInMemoryMenuCache creates an in-memory menu cache.
func NewInMemoryMenuCache(cfg InMemoryConfig) *InMemoryMenuCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 1000
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &InMemoryMenuCache{
		entries: make(map[string]Entry),
		ttl:     cfg.TTL,
		maxKeys: cfg.MaxKeys,
		clock:   cfg.Clock,
	}
}

// Put stores an entry, filling StoredAt and ExpiresAt when the caller
// left them zero.
func (c *InMemoryMenuCache) Put(_ context.Context, entry Entry) error {
	now := c.clock()
	if entry.StoredAt.IsZero() {
		entry.StoredAt = now
	}
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = entry.StoredAt.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxKeys {
		c.sweepLocked(now)
	}
	c.entries[Key(entry.SourceID, entry.Week, entry.Year)] = entry
	return nil
}

// Get returns the fresh entry for the key, or nil when absent or expired.
func (c *InMemoryMenuCache) Get(_ context.Context, sourceID string, week, year int) (*Entry, error) {
	key := Key(sourceID, week, year)
	now := c.clock()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.Expired(now) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return &entry, nil
}

// Len reports the current entry count, expired included.
func (c *InMemoryMenuCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryMenuCache) sweepLocked(now time.Time) {
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
		}
	}
}
