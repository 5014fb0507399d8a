package cache

import (
	"sync"
	"time"
)

// cacheEntry holds a cached value with its timestamp.
type cacheEntry struct {
	value     string
	timestamp time.Time
}

// InMemoryCache is a thread-safe in-memory cache with TTL support.
type InMemoryCache struct {
	cache map[string]cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time

	hits   uint64
	misses uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
// If ttlSeconds is 0 or negative, entries never expire.
func NewInMemoryCache(ttlSeconds int) *InMemoryCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0 // No expiration
	}
	return &InMemoryCache{
		cache: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *InMemoryCache) expired(entry cacheEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(entry.timestamp) > c.ttl
}

// Get retrieves a value from the cache.
// Returns the value and true if found and not expired, empty string and false otherwise.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if ok && c.expired(entry, c.now()) {
		delete(c.cache, key)
		ok = false
	}
	if !ok {
		c.misses++
		return "", false
	}

	c.hits++
	return entry.value, true
}

// Set stores a value in the cache.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache[key] = cacheEntry{
		value:     value,
		timestamp: c.now(),
	}
	return nil
}

// Delete removes a key. Missing keys are ignored.
func (c *InMemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
}

// Len returns the number of entries in the cache (including expired ones).
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries from the cache.
func (c *InMemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// Stats returns entry count and hit/miss counters.
func (c *InMemoryCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{Entries: len(c.cache), Hits: c.hits, Misses: c.misses}
}

// Entries returns all non-expired entries as key-value pairs.
func (c *InMemoryCache) Entries() (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]string, len(c.cache))
	now := c.now()

	for key, entry := range c.cache {
		if c.expired(entry, now) {
			continue
		}
		result[key] = entry.value
	}

	return result, nil
}

// Verify InMemoryCache implements Enumerable
var _ Enumerable = (*InMemoryCache)(nil)
