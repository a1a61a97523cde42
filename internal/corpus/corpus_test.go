package corpus

import (
	"testing"

	"github.com/mythwatch/mythwatch/internal/model"
)

func TestLoad_EmbeddedCorpus(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(c.Prototypes) == 0 {
		t.Error("Expected misinformation prototypes")
	}

	for _, label := range []model.Label{model.LabelReal, model.LabelMisinformation, model.LabelUncertain} {
		if len(c.References[label]) == 0 {
			t.Errorf("Expected reference statements for %q", label)
		}
	}

	if _, ok := c.Scenario("handshake"); !ok {
		t.Error("Expected handshake scenario entry")
	}

	for _, label := range []model.Label{model.LabelReal, model.LabelMisinformation, model.LabelUncertain, model.LabelExpertReview} {
		if c.Explanations[label] == "" {
			t.Errorf("Missing explanation for %q", label)
		}
		if c.CitationURLs[label] == "" {
			t.Errorf("Missing citation URL for %q", label)
		}
		if len(c.Reasons[label]) == 0 {
			t.Errorf("Missing reason pool for %q", label)
		}
	}
}

func TestParse_DeduplicatesFAQs(t *testing.T) {
	data := []byte(`
prototypes: ["Mpox spreads through WiFi."]
references:
  real: ["Mpox spreads through contact."]
  misinformation: ["Mpox is caused by 5G."]
  uncertain: ["Surface transmission evidence is mixed."]
faqs:
  - question: "Is monkeypox airborne"
    answer: "No."
  - question: "is mpox airborne"
    answer: "Duplicate after normalization."
  - question: "can pets spread mpox"
    answer: "Rarely."
`)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(c.FAQs) != 2 {
		t.Fatalf("Expected 2 deduplicated FAQs, got %d", len(c.FAQs))
	}
	// The first occurrence wins, normalized.
	if c.FAQs[0].Answer != "No." {
		t.Errorf("Expected first duplicate kept, got %q", c.FAQs[0].Answer)
	}
	if c.FAQs[0].Question != "is mpox airborne" {
		t.Errorf("Expected normalized question, got %q", c.FAQs[0].Question)
	}
}

func TestParse_RejectsEmptyReferenceGroup(t *testing.T) {
	data := []byte(`
prototypes: ["Mpox spreads through WiFi."]
references:
  real: ["Mpox spreads through contact."]
  misinformation: ["Mpox is caused by 5G."]
`)

	if _, err := Parse(data); err == nil {
		t.Fatal("Expected error for missing uncertain reference group")
	}
}

func TestParse_RejectsDuplicateScenarioKeys(t *testing.T) {
	data := []byte(`
prototypes: ["Mpox spreads through WiFi."]
references:
  real: ["Mpox spreads through contact."]
  misinformation: ["Mpox is caused by 5G."]
  uncertain: ["Mixed evidence."]
scenarios:
  - key: handshake
    risk: "LOW RISK"
  - key: handshake
    risk: "HIGH RISK"
`)

	if _, err := Parse(data); err == nil {
		t.Fatal("Expected error for duplicate scenario key")
	}
}

func TestAllTexts_CoversEveryTable(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	texts := make(map[string]bool)
	for _, text := range c.AllTexts() {
		texts[text] = true
	}

	if !texts[c.Prototypes[0]] {
		t.Error("AllTexts missing prototypes")
	}
	if !texts["handshake"] {
		t.Error("AllTexts missing scenario keys")
	}
	if !texts[c.FAQs[0].Question] {
		t.Error("AllTexts missing FAQ questions")
	}
}
