package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DiskCache persists embeddings as JSON files so corpus vectors survive
// process restarts and the embedding service is not re-queried on boot.
type DiskCache struct {
	dir string
}

// NewDiskCache creates a new disk-backed vector cache rooted at dir.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{dir: dir}
}

type diskEntry struct {
	Vector []float32 `json:"vector"`
}

// Get retrieves a vector from disk.
func (c *DiskCache) Get(key string) ([]float32, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return entry.Vector, true
}

// Set stores a vector on disk.
func (c *DiskCache) Set(key string, vec []float32) error {
	data, err := json.Marshal(diskEntry{Vector: vec})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes a vector from disk.
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes the entire cache directory.
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".vec")
}
