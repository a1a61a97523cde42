// Package corpus holds the curated knowledge tables the classifiers score
// against: misinformation prototypes, labeled reference statements,
// transmission scenarios, FAQ pairs, reason pools and citations. Tables
// are loaded once at startup and are read-only afterwards, so concurrent
// readers need no locking.
package corpus

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mythwatch/mythwatch/internal/model"
)

//go:embed data/corpus.yaml
var corpusYAML []byte

// ScenarioEntry describes one transmission situation with a precomputed
// risk tier. Keys are unique; table order is match order.
type ScenarioEntry struct {
	Key         string         `yaml:"key"`
	Tier        model.RiskTier `yaml:"risk"`
	Explanation string         `yaml:"explanation"`
	Reason      string         `yaml:"reason"`
	Evidence    string         `yaml:"evidence"`
	CitationURL string         `yaml:"citation"`
}

// FAQEntry is one curated question/answer pair.
type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Source   string `yaml:"source"`
}

// Corpus is the full set of curated tables.
type Corpus struct {
	Prototypes   []string
	References   map[model.Label][]string
	Scenarios    []ScenarioEntry
	FAQs         []FAQEntry
	Reasons      map[model.Label][]string
	Explanations map[model.Label]string
	CitationURLs map[model.Label]string
}

type corpusFile struct {
	Prototypes   []string            `yaml:"prototypes"`
	References   map[string][]string `yaml:"references"`
	Scenarios    []ScenarioEntry     `yaml:"scenarios"`
	FAQs         []FAQEntry          `yaml:"faqs"`
	Reasons      map[string][]string `yaml:"reasons"`
	Explanations map[string]string   `yaml:"explanations"`
	Citations    map[string]string   `yaml:"citations"`
}

// labelKeys maps YAML label keys onto verdict labels.
var labelKeys = map[string]model.Label{
	"real":           model.LabelReal,
	"misinformation": model.LabelMisinformation,
	"uncertain":      model.LabelUncertain,
	"expert_review":  model.LabelExpertReview,
}

// Load parses and validates the embedded corpus.
func Load() (*Corpus, error) {
	return Parse(corpusYAML)
}

// Parse builds a Corpus from YAML data.
func Parse(data []byte) (*Corpus, error) {
	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	c := &Corpus{
		Prototypes:   file.Prototypes,
		References:   make(map[model.Label][]string),
		Scenarios:    file.Scenarios,
		Reasons:      make(map[model.Label][]string),
		Explanations: make(map[model.Label]string),
		CitationURLs: make(map[model.Label]string),
	}

	for key, statements := range file.References {
		label, ok := labelKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown reference label %q", key)
		}
		c.References[label] = statements
	}

	for key, reasons := range file.Reasons {
		label, ok := labelKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown reason label %q", key)
		}
		c.Reasons[label] = reasons
	}

	for key, text := range file.Explanations {
		label, ok := labelKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown explanation label %q", key)
		}
		c.Explanations[label] = text
	}

	for key, url := range file.Citations {
		label, ok := labelKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown citation label %q", key)
		}
		c.CitationURLs[label] = url
	}

	c.FAQs = dedupeFAQs(file.FAQs)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate enforces the table invariants the classifiers depend on.
func (c *Corpus) validate() error {
	if len(c.Prototypes) == 0 {
		return fmt.Errorf("corpus has no misinformation prototypes")
	}

	// Averaging over an empty label group would divide by zero.
	for _, label := range []model.Label{model.LabelReal, model.LabelMisinformation, model.LabelUncertain} {
		if len(c.References[label]) == 0 {
			return fmt.Errorf("reference label %q has no statements", label)
		}
	}

	seen := make(map[string]bool)
	for _, s := range c.Scenarios {
		if s.Key == "" {
			return fmt.Errorf("scenario with empty key")
		}
		if seen[s.Key] {
			return fmt.Errorf("duplicate scenario key %q", s.Key)
		}
		seen[s.Key] = true
	}

	return nil
}

// dedupeFAQs drops entries whose normalized question already appeared,
// keeping the first occurrence.
func dedupeFAQs(faqs []FAQEntry) []FAQEntry {
	seen := make(map[string]bool)
	out := make([]FAQEntry, 0, len(faqs))
	for _, faq := range faqs {
		q := model.Normalize(faq.Question)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		faq.Question = q
		out = append(out, faq)
	}
	return out
}

// AllTexts returns every text that will be embedded, for cache warming.
func (c *Corpus) AllTexts() []string {
	var texts []string
	texts = append(texts, c.Prototypes...)
	for _, refs := range c.References {
		texts = append(texts, refs...)
	}
	for _, s := range c.Scenarios {
		texts = append(texts, s.Key)
	}
	for _, faq := range c.FAQs {
		texts = append(texts, faq.Question)
	}
	for _, reasons := range c.Reasons {
		texts = append(texts, reasons...)
	}
	return texts
}

// Scenario returns the entry with the given key, if present.
func (c *Corpus) Scenario(key string) (ScenarioEntry, bool) {
	for _, s := range c.Scenarios {
		if s.Key == key {
			return s, true
		}
	}
	return ScenarioEntry{}, false
}

// FindFAQ returns the entry whose normalized question equals the input.
func (c *Corpus) FindFAQ(question string) (FAQEntry, bool) {
	q := model.Normalize(question)
	for _, faq := range c.FAQs {
		if strings.EqualFold(faq.Question, q) {
			return faq, true
		}
	}
	return FAQEntry{}, false
}
