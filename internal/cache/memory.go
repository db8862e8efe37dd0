package cache

import (
	"slices"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps segmentations in process memory for the length of a run
type MemoryCache struct {
	cache    *gocache.Cache
	maxItems int
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewMemoryCache creates a cache holding at most maxItems texts.
// Entries never expire; once full, new texts are not stored.
func NewMemoryCache(maxItems int) *MemoryCache {
	return &MemoryCache{
		cache:    gocache.New(gocache.NoExpiration, 10*time.Minute),
		maxItems: maxItems,
	}
}

// Get retrieves the sentences of a text
func (c *MemoryCache) Get(text string) ([]string, bool) {
	if val, found := c.cache.Get(Key(text)); found {
		c.hits.Add(1)
		return slices.Clone(val.([]string)), true
	}
	c.misses.Add(1)
	return nil, false
}

// Set stores the sentences of a text
func (c *MemoryCache) Set(text string, sentences []string) {
	if c.maxItems > 0 && c.cache.ItemCount() >= c.maxItems {
		return
	}
	c.cache.SetDefault(Key(text), slices.Clone(sentences))
}

// Stats returns hit/miss counters
func (c *MemoryCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Items:  c.cache.ItemCount(),
	}
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
