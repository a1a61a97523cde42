package cache

// LayeredCache reads from memory first and falls back to disk, promoting
// disk hits into memory.
type LayeredCache struct {
	memory VectorCache
	disk   VectorCache
}

// NewLayeredCache creates a memory-over-disk vector cache.
func NewLayeredCache(diskDir string) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(),
		disk:   NewDiskCache(diskDir),
	}
}

// Get retrieves a vector, checking memory first, then disk.
func (c *LayeredCache) Get(key string) ([]float32, bool) {
	if vec, found := c.memory.Get(key); found {
		return vec, true
	}

	if vec, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, vec)
		return vec, true
	}

	return nil, false
}

// Set stores a vector in both layers.
func (c *LayeredCache) Set(key string, vec []float32) error {
	if err := c.memory.Set(key, vec); err != nil {
		return err
	}
	return c.disk.Set(key, vec)
}

// Delete removes a vector from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	_ = c.disk.Delete(key)
	return nil
}

// Clear removes all vectors from both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
