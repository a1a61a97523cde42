package oracle

import (
	"context"
	"math"
)

// Embedder converts text into a fixed-length vector. Implementations must
// be safe for concurrent use.
type Embedder interface {
	// Name returns the embedder name, used for cache keying.
	Name() string

	// Embed returns the embedding vector for a text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EntailmentScores holds the class probabilities a natural-language-
// inference model assigns to a claim against its training context.
type EntailmentScores struct {
	Entailment    float64 `json:"entailment"`
	Contradiction float64 `json:"contradiction"`
	Neutral       float64 `json:"neutral"`
}

// Entailer scores a claim for entailment, contradiction and neutrality.
type Entailer interface {
	Name() string
	Entail(ctx context.Context, text string) (EntailmentScores, error)
}

// Summarizer condenses long text. maxWords is advisory; implementations
// may return slightly longer output.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, text string, maxWords int) (string, error)
}

// Cosine computes cosine similarity between two vectors. Returns 0 when
// either vector is empty or zero-length in magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
