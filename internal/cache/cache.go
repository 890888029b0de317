// Package cache holds the unfiltered catalog fetch between requests.
// Entries expire after a fixed TTL, the entry count is bounded, and
// every successful mutation invalidates the affected catalog key, so
// the cache is never assumed fresh across mutations.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration int64
}

type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
}

// New builds a bounded cache. When the bound is reached, expired
// entries are dropped first; if the cache is still full the new entry
// is simply not stored.
func New(ttl time.Duration, maxEntries int) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
	go c.cleanupLoop()
	return c
}

// Set stores a value under key for the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.dropExpiredLocked()
		if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
			return
		}
	}

	c.entries[key] = entry{
		value:      value,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[key]
	if !found || time.Now().UnixNano() > e.expiration {
		return nil, false
	}
	return e.value, true
}

// Delete removes one key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeleteByPrefix removes every key starting with prefix. Mutation
// handlers use this to invalidate all cached fetches of a catalog.
func (c *Cache) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of stored entries, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) dropExpiredLocked() {
	now := time.Now().UnixNano()
	for key, e := range c.entries {
		if now > e.expiration {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		c.dropExpiredLocked()
		c.mu.Unlock()
	}
}
