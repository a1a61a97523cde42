package oracle

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mythwatch/mythwatch/internal/model"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"empty", nil, nil, 0},
		{"mismatched length", []float32{1}, []float32{1, 0}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

// countingEmbedder tracks how many times each text is embedded.
type countingEmbedder struct {
	calls map[string]int
}

func (e *countingEmbedder) Name() string { return "counting" }

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.calls == nil {
		e.calls = make(map[string]int)
	}
	e.calls[text]++
	return []float32{float32(len(text)), 1}, nil
}

func TestSimilarity_CachesVectors(t *testing.T) {
	embedder := &countingEmbedder{}
	sim := NewSimilarity(embedder, nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := sim.Score(ctx, "mpox spreads through contact", "handshake"); err != nil {
			t.Fatalf("Score failed: %v", err)
		}
	}

	for text, calls := range embedder.calls {
		if calls != 1 {
			t.Errorf("Expected one embedding call for %q, got %d", text, calls)
		}
	}
}

func TestNLIClient_Entail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/test-nli") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `[[{"label":"CONTRADICTION","score":0.7},{"label":"entailment","score":0.2},{"label":"neutral","score":0.1}]]`)
	}))
	defer server.Close()

	client, err := NewNLIClient(model.OracleConfig{
		NLIBaseURL: server.URL,
		NLIModel:   "test-nli",
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewNLIClient failed: %v", err)
	}

	scores, err := client.Entail(context.Background(), "mpox is caused by 5g")
	if err != nil {
		t.Fatalf("Entail failed: %v", err)
	}

	if scores.Contradiction != 0.7 || scores.Entailment != 0.2 || scores.Neutral != 0.1 {
		t.Errorf("Unexpected scores: %+v", scores)
	}
}

func TestNLIClient_FlatResponse(t *testing.T) {
	scores, err := parseNLIScores([]byte(`[{"label":"neutral","score":0.9}]`))
	if err != nil {
		t.Fatalf("parseNLIScores failed: %v", err)
	}
	if scores.Neutral != 0.9 {
		t.Errorf("Expected neutral 0.9, got %v", scores.Neutral)
	}
}

// failingSummarizer always errors, forcing the truncation path.
type failingSummarizer struct{}

func (failingSummarizer) Name() string { return "failing" }

func (failingSummarizer) Summarize(context.Context, string, int) (string, error) {
	return "", fmt.Errorf("model unavailable")
}

func TestShortAnswer(t *testing.T) {
	ctx := context.Background()

	if got := ShortAnswer(ctx, nil, "  "); got != "No summary available" {
		t.Errorf("Expected placeholder for empty text, got %q", got)
	}

	short := "Mpox spreads mainly through close contact."
	if got := ShortAnswer(ctx, failingSummarizer{}, short); got != short {
		t.Errorf("Short text should pass through, got %q", got)
	}

	long := strings.Repeat("transmission requires close and prolonged physical contact ", 30)
	got := ShortAnswer(ctx, failingSummarizer{}, long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncated fallback to end with ellipsis, got %q", got)
	}
	if len([]rune(got)) > truncateRunes+3 {
		t.Errorf("Truncated answer too long: %d runes", len([]rune(got)))
	}
}
