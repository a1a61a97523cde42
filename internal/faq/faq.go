// Package faq answers general questions from the curated FAQ table. Exact
// normalized matches win outright; everything else goes through query
// expansion and embedding similarity.
package faq

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/corpus"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
)

// expansions augment a user question with canonical phrasings for its
// topic, which pulls paraphrased questions toward the right FAQ entry.
var expansions = []struct {
	category string
	keywords []string
	query    string
}{
	{"transmission", []string{"spread", "transmit", "catch", "contagious", "pass it"}, "how does mpox spread"},
	{"prevention", []string{"prevent", "avoid", "protect", "stay safe"}, "how can I prevent mpox"},
	{"symptoms", []string{"symptom", "sign", "rash", "fever", "feel"}, "what are the symptoms of mpox"},
	{"treatment", []string{"treat", "cure", "medicine", "vaccine", "recover"}, "how is mpox treated"},
}

// Match is an accepted FAQ answer.
type Match struct {
	Question string
	Answer   string
	Source   string
	Score    float64
}

// Matcher answers questions from the FAQ table.
type Matcher struct {
	corpus     *corpus.Corpus
	similarity *oracle.Similarity
}

// New creates an FAQ matcher.
func New(c *corpus.Corpus, similarity *oracle.Similarity) *Matcher {
	return &Matcher{corpus: c, similarity: similarity}
}

// Lookup finds the FAQ entry closest to the question. The threshold is
// caller-supplied: routing branches that already know the topic accept
// weaker matches. Returns false when nothing clears the threshold.
func (m *Matcher) Lookup(ctx context.Context, question string, threshold float64) (Match, bool) {
	normalized := model.Normalize(question)
	if normalized == "" {
		return Match{}, false
	}

	if entry, found := m.corpus.FindFAQ(normalized); found {
		return Match{
			Question: entry.Question,
			Answer:   entry.Answer,
			Source:   entry.Source,
			Score:    1,
		}, true
	}

	queries := ExpandQuery(normalized)

	var best corpus.FAQEntry
	bestScore := -1.0
	for _, entry := range m.corpus.FAQs {
		for _, query := range queries {
			score, err := m.similarity.Score(ctx, query, entry.Question)
			if err != nil {
				log.Warn().Err(err).Msg("faq similarity unavailable")
				return Match{}, false
			}
			if score > bestScore {
				bestScore = score
				best = entry
			}
		}
	}

	if bestScore < threshold {
		return Match{}, false
	}
	return Match{
		Question: best.Question,
		Answer:   best.Answer,
		Source:   best.Source,
		Score:    bestScore,
	}, true
}

// ExpandQuery returns the normalized question plus a canonical phrasing
// for every health topic its keywords hit.
func ExpandQuery(normalized string) []string {
	queries := []string{normalized}
	for _, exp := range expansions {
		for _, kw := range exp.keywords {
			if strings.Contains(normalized, kw) {
				queries = append(queries, exp.query)
				break
			}
		}
	}
	return queries
}
