package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps embeddings in process memory. Vectors never expire;
// the corpus is static and query embeddings are cheap to hold.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new in-memory vector cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a vector from the cache.
func (c *MemoryCache) Get(key string) ([]float32, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]float32), true
	}
	return nil, false
}

// Set stores a vector in the cache.
func (c *MemoryCache) Set(key string, vec []float32) error {
	c.cache.Set(key, vec, gocache.NoExpiration)
	return nil
}

// Delete removes a vector from the cache.
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all vectors from the cache.
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
