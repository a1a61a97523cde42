// Package classify implements the claim-verification pipeline: keyword
// overrides first, then prototype similarity, then entailment scoring,
// then an average-similarity fallback against the labeled reference
// statements.
package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/corpus"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
)

// preventionFalsehoods are phrasings of known false prevention claims.
// Any hit is misinformation outright, no semantic scoring needed.
var preventionFalsehoods = []string{
	"garlic water prevents", "garlic protects against", "home remedy prevents",
	"natural prevention", "herbal cure for", "garlic cure",
}

// trustedTopicTerms short-circuit to Real: vaccine statements in this
// corpus overwhelmingly restate verified guidance.
var trustedTopicTerms = []string{"vaccine", "smallpox"}

// nonCoherent matches characters outside the plain-text alphabet the
// classifiers understand.
var nonCoherent = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?]`)

const (
	keywordConfidence = 0.95
	symptomConfidence = 1.0
)

// Classifier turns free-text claims into labeled verdicts.
type Classifier struct {
	corpus     *corpus.Corpus
	similarity *oracle.Similarity
	entailer   oracle.Entailer
	thresholds model.ThresholdConfig
}

// New creates a claim classifier. The entailer may be nil, in which case
// the entailment step is skipped and verdicts rely on the remaining
// signals.
func New(c *corpus.Corpus, similarity *oracle.Similarity, entailer oracle.Entailer, thresholds model.ThresholdConfig) *Classifier {
	return &Classifier{
		corpus:     c,
		similarity: similarity,
		entailer:   entailer,
		thresholds: thresholds,
	}
}

// Classify runs the full verification pipeline on a claim.
func (c *Classifier) Classify(ctx context.Context, text string) model.ClassificationResult {
	if strings.TrimSpace(text) == "" {
		return model.ClassificationResult{
			Label:       model.LabelInvalidInput,
			Explanation: "Sorry, I couldn't understand that.",
			Reason:      "Input was empty.",
			Confidence:  0,
		}
	}

	if isNonsense(text) {
		return model.ClassificationResult{
			Label:       model.LabelInvalidInput,
			Explanation: "Gibberish detected.",
			Reason:      "Input was not coherent.",
			Confidence:  0,
		}
	}

	verdict := c.detect(ctx, text)
	switch verdict {
	case model.LabelMisinformation, model.LabelReal:
		return model.ClassificationResult{
			Label:       verdict,
			Explanation: c.corpus.Explanations[verdict],
			Reason:      c.reason(ctx, text, verdict),
			CitationURL: c.corpus.CitationURLs[verdict],
			Confidence:  keywordConfidence,
		}
	}

	// Unresolved verdicts about symptoms are informational lookups, not
	// claims to verify.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "symptom") || strings.Contains(lower, "sign") {
		return model.ClassificationResult{
			Label:       model.LabelInformational,
			Explanation: "Medical symptom inquiry",
			Reason:      "This appears to be a request for symptom information",
			CitationURL: "https://www.cdc.gov/poxvirus/monkeypox/symptoms.html",
			Confidence:  symptomConfidence,
		}
	}

	return c.referenceFallback(ctx, text)
}

// detect applies the keyword, prototype and entailment checks in order.
// Anything other than Real or Misinformation leaves the verdict to the
// reference fallback.
func (c *Classifier) detect(ctx context.Context, text string) model.Label {
	lower := strings.ToLower(text)

	for _, phrase := range preventionFalsehoods {
		if strings.Contains(lower, phrase) {
			return model.LabelMisinformation
		}
	}

	for _, term := range trustedTopicTerms {
		if strings.Contains(lower, term) {
			return model.LabelReal
		}
	}

	if match, err := c.matchesPrototype(ctx, text); err != nil {
		log.Warn().Err(err).Msg("prototype similarity unavailable, skipping")
	} else if match {
		return model.LabelMisinformation
	}

	if c.entailer == nil {
		return model.LabelExpertReview
	}

	scores, err := c.entailer.Entail(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("entailment scoring unavailable, skipping")
		return model.LabelExpertReview
	}

	switch {
	case scores.Contradiction > scores.Entailment:
		return model.LabelMisinformation
	case scores.Entailment > scores.Contradiction:
		return model.LabelReal
	case scores.Neutral > c.thresholds.Neutral:
		return model.LabelUncertain
	default:
		return model.LabelExpertReview
	}
}

// matchesPrototype reports whether the claim resembles any curated
// misinformation prototype.
func (c *Classifier) matchesPrototype(ctx context.Context, text string) (bool, error) {
	for _, prototype := range c.corpus.Prototypes {
		score, err := c.similarity.Score(ctx, text, prototype)
		if err != nil {
			return false, err
		}
		if score > c.thresholds.MisinfoPrototype {
			log.Debug().Float64("similarity", score).Str("prototype", prototype).
				Msg("misinformation prototype matched")
			return true, nil
		}
	}
	return false, nil
}

// referenceFallback averages the claim's similarity against each labeled
// reference group and picks the best, with a floor below which the claim
// goes to expert review.
func (c *Classifier) referenceFallback(ctx context.Context, text string) model.ClassificationResult {
	bestLabel := model.Label("")
	bestAvg := -1.0

	for _, label := range []model.Label{model.LabelReal, model.LabelMisinformation, model.LabelUncertain} {
		refs := c.corpus.References[label]
		var total float64
		for _, ref := range refs {
			score, err := c.similarity.Score(ctx, text, ref)
			if err != nil {
				// No semantic signal left; the conservative verdict stands.
				log.Warn().Err(err).Msg("reference similarity unavailable")
				return c.expertReviewResult(ctx, text, 0)
			}
			total += score
		}
		avg := total / float64(len(refs))
		if avg > bestAvg {
			bestAvg = avg
			bestLabel = label
		}
	}

	if bestAvg < c.thresholds.ReferenceFloor {
		return c.expertReviewResult(ctx, text, bestAvg)
	}

	return model.ClassificationResult{
		Label:       bestLabel,
		Explanation: c.corpus.Explanations[bestLabel],
		Reason:      c.reason(ctx, text, bestLabel),
		CitationURL: c.corpus.CitationURLs[bestLabel],
		Confidence:  bestAvg,
	}
}

func (c *Classifier) expertReviewResult(ctx context.Context, text string, confidence float64) model.ClassificationResult {
	return model.ClassificationResult{
		Label:       model.LabelExpertReview,
		Explanation: c.corpus.Explanations[model.LabelExpertReview],
		Reason:      c.reason(ctx, text, model.LabelExpertReview),
		CitationURL: c.corpus.CitationURLs[model.LabelExpertReview],
		Confidence:  confidence,
	}
}

// reason selects the candidate reason closest to the claim, with a
// literal override for garlic-prevention phrasing.
func (c *Classifier) reason(ctx context.Context, text string, label model.Label) string {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "garlic") &&
		(strings.Contains(lower, "prevent") || strings.Contains(lower, "protect")) {
		return "No natural remedies like garlic prevent mpox. The WHO explicitly warns against such unproven prevention methods."
	}

	candidates := c.corpus.Reasons[label]
	if len(candidates) == 0 {
		return "Additional details are unavailable."
	}

	best := candidates[0]
	bestScore := -1.0
	for _, candidate := range candidates {
		score, err := c.similarity.Score(ctx, text, candidate)
		if err != nil {
			// Without embeddings the first candidate is as good as any.
			return candidates[0]
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best
}

// isNonsense flags text too short or too noisy to classify.
func isNonsense(text string) bool {
	return len(strings.Fields(text)) < 2 || nonCoherent.MatchString(text)
}
