package model

// Label is the closed set of claim verdicts.
type Label string

const (
	LabelInvalidInput   Label = "Invalid Input"
	LabelReal           Label = "Real"
	LabelMisinformation Label = "Misinformation"
	LabelUncertain      Label = "Uncertain"
	LabelExpertReview   Label = "Requires Expert Review"
	LabelInformational  Label = "Informational"
)

// RiskTier is a transmission-scenario risk level.
type RiskTier string

const (
	RiskVeryLow  RiskTier = "VERY LOW RISK"
	RiskLow      RiskTier = "LOW RISK"
	RiskModerate RiskTier = "MODERATE RISK"
	RiskHigh     RiskTier = "HIGH RISK"
)

// Intent classifies which router branch handled a message. It is recorded
// with every logged message.
type Intent string

const (
	IntentJoke          Intent = "joke"
	IntentOffTopic      Intent = "off_topic"
	IntentVague         Intent = "vague_reference"
	IntentMisinfoCheck  Intent = "misinfo_check"
	IntentTransmitInfo  Intent = "transmission_info"
	IntentRiskCompare   Intent = "risk_comparison"
	IntentSymptomQuery  Intent = "symptom_query"
	IntentTransmitClaim Intent = "transmission_claim"
	IntentPrevention    Intent = "prevention_info"
	IntentScenario      Intent = "transmission_risk"
	IntentGreeting      Intent = "greeting"
	IntentCasual        Intent = "casual_reply"
	IntentNews          Intent = "news_request"
	IntentFAQ           Intent = "general_question"
	IntentClassify      Intent = "classification"
)

// Response is the payload produced for every routed message. Confidence is
// zero for conversational branches that carry no verdict.
type Response struct {
	Intent      Intent  `json:"intent"`
	Label       Label   `json:"label,omitempty"`
	Text        string  `json:"text"`
	Explanation string  `json:"explanation,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	CitationURL string  `json:"source_url,omitempty"`
	Confidence  float64 `json:"score"`
}

// ClassificationResult is a claim verdict before it is rendered into a
// Response. Never mutated after construction.
type ClassificationResult struct {
	Label       Label   `json:"label"`
	Explanation string  `json:"explanation"`
	Reason      string  `json:"reason"`
	CitationURL string  `json:"source_url,omitempty"`
	Confidence  float64 `json:"score"`
}

// ScenarioResult is a transmission-scenario verdict. Fallback marks results
// that were delegated to full claim classification because no scenario
// matched above threshold.
type ScenarioResult struct {
	Scenario    string                `json:"scenario,omitempty"`
	Tier        RiskTier              `json:"risk,omitempty"`
	Explanation string                `json:"explanation"`
	Reason      string                `json:"reason"`
	Evidence    string                `json:"evidence,omitempty"`
	CitationURL string                `json:"source_url,omitempty"`
	Confidence  float64               `json:"score"`
	Fallback    *ClassificationResult `json:"fallback,omitempty"`
}

// NewsItem is one fetched headline.
type NewsItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DetailedView is the structured follow-up rendering produced when a user
// asks for more detail about their previous answer.
type DetailedView struct {
	Kind    ContextType `json:"kind"`
	Query   string      `json:"query,omitempty"`
	Title   string      `json:"title"`
	Body    string      `json:"body"`
	Sources []string    `json:"sources,omitempty"`
}
