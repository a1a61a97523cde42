package cache

import (
	"path/filepath"
	"testing"
)

func TestKey_DistinguishesModels(t *testing.T) {
	a := Key("model-a", "mpox spreads through contact")
	b := Key("model-b", "mpox spreads through contact")
	if a == b {
		t.Error("Expected different keys for different models")
	}

	if Key("model-a", "text") != Key("model-a", "text") {
		t.Error("Expected identical keys for identical inputs")
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache()

	key := Key("m", "handshake risk")
	vec := []float32{0.1, 0.2, 0.3}

	if _, found := c.Get(key); found {
		t.Fatal("Expected miss before Set")
	}

	if err := c.Set(key, vec); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if len(got) != 3 || got[1] != 0.2 {
		t.Errorf("Unexpected vector: %v", got)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("Expected miss after Delete")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vectors")
	c := NewDiskCache(dir)

	key := Key("m", "pool water transmission")
	vec := []float32{1, 0, -1}

	if err := c.Set(key, vec); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if len(got) != 3 || got[2] != -1 {
		t.Errorf("Unexpected vector: %v", got)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly, then read through a fresh layered cache.
	disk := NewDiskCache(dir)
	key := Key("m", "surface contact")
	if err := disk.Set(key, []float32{0.5}); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(dir)
	if _, found := layered.Get(key); !found {
		t.Fatal("Expected layered cache to find disk entry")
	}

	// After promotion the memory layer must serve the value on its own.
	if _, found := layered.memory.Get(key); !found {
		t.Error("Expected entry promoted to memory layer")
	}
}
