package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// VectorCache stores computed text embeddings so that corpus entries and
// repeated queries are only sent to the embedding service once.
type VectorCache interface {
	Get(key string) ([]float32, bool)
	Set(key string, vec []float32) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a text embedded under a given model.
// Different models produce incompatible vectors, so the model name is part
// of the key.
func Key(model, text string) string {
	hash := sha256.Sum256([]byte(model + "\x00" + text))
	return "mythwatch:v1:" + hex.EncodeToString(hash[:])
}
