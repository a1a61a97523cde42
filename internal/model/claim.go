package model

import "strings"

// Claim represents a single free-text assertion submitted for verification.
// It has no persistent identity; it lives for the duration of one request.
type Claim struct {
	Raw        string `json:"raw"`        // Text exactly as received
	Normalized string `json:"normalized"` // Lowercased, synonym-folded form
}

// synonyms folds alternate disease names onto the canonical term so that
// keyword tables and reference embeddings only need one spelling.
var synonyms = map[string]string{
	"monkeypox":  "mpox",
	"monkey pox": "mpox",
}

// NewClaim normalizes raw input into a Claim.
func NewClaim(raw string) Claim {
	return Claim{Raw: raw, Normalized: Normalize(raw)}
}

// Normalize lowercases text and folds known synonyms.
func Normalize(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	for from, to := range synonyms {
		normalized = strings.ReplaceAll(normalized, from, to)
	}
	return normalized
}

// IsEmpty reports whether the claim has no usable content.
func (c Claim) IsEmpty() bool {
	return strings.TrimSpace(c.Raw) == ""
}
