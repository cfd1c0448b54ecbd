package service

import (
	"sync"
	"time"
)

const defaultMaxEntries = 50000

// DedupCache is a bounded in-memory set of recently seen event keys.
// Entries expire after a fixed window; eviction happens lazily on access so
// the cache needs no background goroutine and stays bounded under message
// storms.
type DedupCache struct {
	mu         sync.Mutex
	entries    map[string]time.Time // key -> expiry
	window     time.Duration
	maxEntries int
	now        func() time.Time
}

func NewDedupCache(window time.Duration) *DedupCache {
	return &DedupCache{
		entries:    make(map[string]time.Time),
		window:     window,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
}

// Seen reports whether key holds a live entry.
func (c *DedupCache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry, ok := c.entries[key]
	if !ok {
		return false
	}
	if c.now().After(expiry) {
		delete(c.entries, key)
		return false
	}
	return true
}

// Record remembers key for the dedup window.
func (c *DedupCache) Record(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}

	c.entries[key] = c.now().Add(c.window)
}

// Len returns the number of entries currently held, counting expired ones
// not yet evicted.
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLocked sweeps expired entries; when everything is still live it drops
// the entry closest to expiry so the cache never exceeds its bound.
func (c *DedupCache) evictLocked() {
	now := c.now()
	var oldestKey string
	var oldestExpiry time.Time

	for key, expiry := range c.entries {
		if now.After(expiry) {
			delete(c.entries, key)
			continue
		}
		if oldestKey == "" || expiry.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = expiry
		}
	}

	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
