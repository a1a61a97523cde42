package oracle

import (
	"context"
	"fmt"

	"github.com/mythwatch/mythwatch/internal/cache"
)

// Similarity pairs an embedder with a vector cache and exposes the
// text-to-text scoring the classifiers run on. Corpus texts hit the cache
// on every call after the first.
type Similarity struct {
	embedder Embedder
	vectors  cache.VectorCache
}

// NewSimilarity creates a similarity oracle. A nil cache disables caching.
func NewSimilarity(embedder Embedder, vectors cache.VectorCache) *Similarity {
	if vectors == nil {
		vectors = cache.NewMemoryCache()
	}
	return &Similarity{embedder: embedder, vectors: vectors}
}

// Vector returns the embedding for text, from cache when available.
func (s *Similarity) Vector(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key(s.embedder.Name(), text)
	if vec, found := s.vectors.Get(key); found {
		return vec, nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	if err := s.vectors.Set(key, vec); err != nil {
		// A failed cache write only costs a future recomputation.
		return vec, nil
	}
	return vec, nil
}

// Score returns the cosine similarity between two texts.
func (s *Similarity) Score(ctx context.Context, a, b string) (float64, error) {
	va, err := s.Vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.Vector(ctx, b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb), nil
}
