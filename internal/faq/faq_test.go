package faq

import (
	"context"
	"reflect"
	"testing"

	"github.com/mythwatch/mythwatch/internal/corpus"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
)

const testCorpusYAML = `
prototypes:
  - "mpox was engineered in a laboratory"
references:
  real: ["mpox spreads through close physical contact"]
  misinformation: ["mpox is a hoax invented by governments"]
  uncertain: ["new mpox variants may emerge"]
faqs:
  - question: "how does mpox spread"
    answer: "Mpox spreads primarily through close physical contact with an infected person."
    source: "https://www.who.int/news-room/fact-sheets/detail/mpox"
  - question: "is there a vaccine for mpox"
    answer: "Yes, vaccines developed for smallpox provide protection against mpox."
    source: "https://www.cdc.gov/poxvirus/monkeypox/vaccines.html"
`

type mapEmbedder struct {
	vecs map[string][]float32
	next int
}

func newMapEmbedder() *mapEmbedder {
	return &mapEmbedder{vecs: make(map[string][]float32)}
}

func (e *mapEmbedder) set(text string, axis int) {
	vec := make([]float32, 32)
	vec[axis] = 1
	e.vecs[text] = vec
}

func (e *mapEmbedder) Name() string { return "map" }

func (e *mapEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := e.vecs[text]; ok {
		return vec, nil
	}
	vec := make([]float32, 32)
	vec[8+e.next%24] = 1
	e.next++
	e.vecs[text] = vec
	return vec, nil
}

func testMatcher(t *testing.T, embedder oracle.Embedder) *Matcher {
	t.Helper()
	c, err := corpus.Parse([]byte(testCorpusYAML))
	if err != nil {
		t.Fatalf("Failed to parse test corpus: %v", err)
	}
	return New(c, oracle.NewSimilarity(embedder, nil))
}

func TestLookup_ExactNormalizedMatch(t *testing.T) {
	m := testMatcher(t, newMapEmbedder())

	// "monkeypox" normalizes to "mpox", making this an exact table hit.
	match, found := m.Lookup(context.Background(), "How does MONKEYPOX spread", 0.65)
	if !found {
		t.Fatal("Expected an exact match")
	}
	if match.Score != 1 {
		t.Errorf("Score = %v, want 1 for exact match", match.Score)
	}
	if match.Source != "https://www.who.int/news-room/fact-sheets/detail/mpox" {
		t.Errorf("Source = %q, unexpected", match.Source)
	}
}

func TestLookup_SemanticMatch(t *testing.T) {
	embedder := newMapEmbedder()
	embedder.set("is there a vaccine for mpox", 0)
	embedder.set("can i get vaccinated against this disease", 0)

	m := testMatcher(t, embedder)

	match, found := m.Lookup(context.Background(), "can i get vaccinated against this disease", 0.65)
	if !found {
		t.Fatal("Expected a semantic match")
	}
	if match.Question != "is there a vaccine for mpox" {
		t.Errorf("Question = %q, want the vaccine FAQ", match.Question)
	}
}

func TestLookup_ExpansionPullsTopicMatch(t *testing.T) {
	embedder := newMapEmbedder()
	// The raw question embeds nowhere near the table, but it contains
	// "catch", so the canonical transmission query is added and pinned to
	// the transmission FAQ's axis.
	embedder.set("how does mpox spread", 0)
	embedder.set("could my roommate catch it from me", 1)

	m := testMatcher(t, embedder)

	match, found := m.Lookup(context.Background(), "could my roommate catch it from me", 0.65)
	if !found {
		t.Fatal("Expected the expanded query to match")
	}
	if match.Question != "how does mpox spread" {
		t.Errorf("Question = %q, want the transmission FAQ", match.Question)
	}
}

func TestLookup_BelowThreshold(t *testing.T) {
	m := testMatcher(t, newMapEmbedder())

	if _, found := m.Lookup(context.Background(), "what is the capital of France", 0.65); found {
		t.Error("Expected no match for an unrelated question")
	}
}

func TestLookup_EmptyQuestion(t *testing.T) {
	m := testMatcher(t, newMapEmbedder())

	if _, found := m.Lookup(context.Background(), "   ", 0.65); found {
		t.Error("Expected no match for blank input")
	}
}

func TestExpandQuery(t *testing.T) {
	got := ExpandQuery("how do people catch mpox and avoid it")
	want := []string{
		"how do people catch mpox and avoid it",
		"how does mpox spread",
		"how can I prevent mpox",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandQuery = %v, want %v", got, want)
	}

	got = ExpandQuery("tell me about the outbreak")
	if len(got) != 1 {
		t.Errorf("Expected no expansion, got %v", got)
	}
}

func TestLookupNormalizesSynonyms(t *testing.T) {
	if got := model.Normalize("Can I CATCH Monkeypox?"); got != "can i catch mpox?" {
		t.Errorf("Normalize = %q, want synonym folding applied", got)
	}
}
