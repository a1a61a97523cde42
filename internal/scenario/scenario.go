// Package scenario assesses transmission situations ("can I get it from a
// handshake?") against the curated scenario table and reports a risk tier
// instead of a truth verdict.
package scenario

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/corpus"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
)

const exactMatchConfidence = 0.95

// ClaimChecker is the fallback for questions that match no known
// scenario.
type ClaimChecker interface {
	Classify(ctx context.Context, text string) model.ClassificationResult
}

// Classifier matches free-text questions to transmission scenarios, first
// by literal key containment, then by embedding similarity.
type Classifier struct {
	corpus     *corpus.Corpus
	similarity *oracle.Similarity
	claims     ClaimChecker
	thresholds model.ThresholdConfig
}

// New creates a scenario classifier.
func New(c *corpus.Corpus, similarity *oracle.Similarity, claims ClaimChecker, thresholds model.ThresholdConfig) *Classifier {
	return &Classifier{
		corpus:     c,
		similarity: similarity,
		claims:     claims,
		thresholds: thresholds,
	}
}

// Classify assesses a transmission question. Literal key containment wins
// in table order; otherwise the closest scenario by embedding similarity
// is used, and below the match threshold the question is handed to the
// claim checker.
func (c *Classifier) Classify(ctx context.Context, text string) model.ScenarioResult {
	lower := strings.ToLower(text)

	for _, entry := range c.corpus.Scenarios {
		if strings.Contains(lower, entry.Key) {
			return resultFromEntry(entry, entry.Reason, exactMatchConfidence)
		}
	}

	best, bestScore, err := c.closest(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("scenario similarity unavailable, delegating to claim check")
		return c.delegate(ctx, text)
	}

	switch {
	case bestScore > c.thresholds.ScenarioHigh:
		return resultFromEntry(best, best.Reason+" (High confidence assessment)", bestScore)
	case bestScore > c.thresholds.ScenarioMatch:
		return resultFromEntry(best, best.Reason+" (Moderate confidence assessment)", bestScore)
	default:
		return c.delegate(ctx, text)
	}
}

func (c *Classifier) closest(ctx context.Context, text string) (corpus.ScenarioEntry, float64, error) {
	var best corpus.ScenarioEntry
	bestScore := -1.0

	for _, entry := range c.corpus.Scenarios {
		score, err := c.similarity.Score(ctx, text, entry.Key)
		if err != nil {
			return corpus.ScenarioEntry{}, 0, err
		}
		if score > bestScore {
			bestScore = score
			best = entry
		}
	}
	return best, bestScore, nil
}

func (c *Classifier) delegate(ctx context.Context, text string) model.ScenarioResult {
	fallback := c.claims.Classify(ctx, text)
	return model.ScenarioResult{Fallback: &fallback}
}

func resultFromEntry(entry corpus.ScenarioEntry, reason string, confidence float64) model.ScenarioResult {
	return model.ScenarioResult{
		Scenario:    entry.Key,
		Tier:        entry.Tier,
		Explanation: entry.Explanation,
		Reason:      reason,
		Evidence:    entry.Evidence,
		CitationURL: entry.CitationURL,
		Confidence:  confidence,
	}
}
