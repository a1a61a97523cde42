// Package router dispatches incoming messages through a priority-ordered
// cascade of intent predicates. The first matching branch produces the
// response; later branches never run. Conversational branches answer from
// canned pools, knowledge branches consult the FAQ table, the scenario
// table or the claim classifier.
package router

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/faq"
	"github.com/mythwatch/mythwatch/internal/model"
	"github.com/mythwatch/mythwatch/internal/oracle"
	"github.com/mythwatch/mythwatch/internal/store"
)

// ClaimClassifier verifies a free-text claim.
type ClaimClassifier interface {
	Classify(ctx context.Context, text string) model.ClassificationResult
}

// ScenarioClassifier assesses a transmission scenario.
type ScenarioClassifier interface {
	Classify(ctx context.Context, text string) model.ScenarioResult
}

// FAQLookup finds the closest FAQ answer above a threshold.
type FAQLookup interface {
	Lookup(ctx context.Context, question string, threshold float64) (faq.Match, bool)
}

// HeadlineFetcher returns current topic headlines.
type HeadlineFetcher interface {
	Headlines(ctx context.Context) ([]model.NewsItem, error)
}

// ContextStore is the per-user follow-up memory.
type ContextStore interface {
	Get(ctx context.Context, userID string) (model.UserContext, bool)
	Put(ctx context.Context, userID string, uc model.UserContext)
	Sweep(ctx context.Context)
}

// Router routes messages to intent handlers.
type Router struct {
	claims     ClaimClassifier
	scenarios  ScenarioClassifier
	faqs       FAQLookup
	news       HeadlineFetcher
	contexts   ContextStore
	recorder   store.Recorder
	summarizer oracle.Summarizer
	thresholds model.ThresholdConfig
	responses  *picker
}

// New creates a router. The recorder may be nil, which disables
// conversation logging; the summarizer may be nil, which disables answer
// shortening.
func New(claims ClaimClassifier, scenarios ScenarioClassifier, faqs FAQLookup, news HeadlineFetcher,
	contexts ContextStore, recorder store.Recorder, summarizer oracle.Summarizer,
	thresholds model.ThresholdConfig) *Router {
	if recorder == nil {
		recorder = store.NopRecorder{}
	}
	return &Router{
		claims:     claims,
		scenarios:  scenarios,
		faqs:       faqs,
		news:       news,
		contexts:   contexts,
		recorder:   recorder,
		summarizer: summarizer,
		thresholds: thresholds,
		responses:  newPicker(),
	}
}

// route pairs an intent predicate with its handler. Table order is
// priority order.
type route struct {
	intent model.Intent
	match  func(text string) bool
	handle func(ctx context.Context, userID, text string) model.Response
}

func (r *Router) routes() []route {
	return []route{
		{model.IntentJoke, isJokeRequest, r.handleJoke},
		{model.IntentOffTopic, isOffTopic, r.handleOffTopic},
		{model.IntentVague, isVagueReference, r.handleVague},
		{model.IntentMisinfoCheck, isClearMisinfo, r.handleClassification},
		{model.IntentTransmitInfo, isTransmissionExplanation, r.handleTransmissionExplanation},
		{model.IntentRiskCompare, isRiskComparison, r.handleRiskComparison},
		{model.IntentSymptomQuery, isSymptomQuery, r.handleSymptomQuery},
		{model.IntentTransmitClaim, isTransmissionClaim, r.handleTransmissionClaim},
		{model.IntentPrevention, isPreventionQuery, r.handlePrevention},
		{model.IntentScenario, isTransmissionScenario, r.handleScenario},
		{model.IntentGreeting, isGreeting, r.handleGreeting},
		{model.IntentCasual, isCasualThanks, r.handleCasual},
		{model.IntentNews, isNewsRequest, r.handleNews},
		{model.IntentFAQ, isGeneralQuestion, r.handleGeneralQuestion},
	}
}

// Process routes one message and returns the response. The message is
// normalized before any predicate sees it.
func (r *Router) Process(ctx context.Context, userID, message string) model.Response {
	claim := model.NewClaim(message)
	text := claim.Normalized

	r.contexts.Sweep(ctx)

	var resp model.Response
	matched := false
	for _, rt := range r.routes() {
		if rt.match(text) {
			resp = rt.handle(ctx, userID, text)
			resp.Intent = rt.intent
			matched = true
			break
		}
	}
	if !matched {
		resp = r.handleClassification(ctx, userID, text)
		resp.Intent = model.IntentClassify
	}

	r.record(ctx, userID, message, resp)
	return resp
}

func (r *Router) record(ctx context.Context, userID, message string, resp model.Response) {
	err := r.recorder.Record(ctx, store.Entry{
		User:           userID,
		Intent:         resp.Intent,
		Message:        message,
		Response:       resp.Text,
		Misinformation: resp.Label == model.LabelMisinformation,
	})
	if err != nil {
		// Logging failures never block answering.
		log.Warn().Err(err).Str("user", userID).Msg("conversation logging failed")
	}
}

func (r *Router) handleJoke(_ context.Context, _, _ string) model.Response {
	return model.Response{
		Text: "Here's a health-related joke for you:\n\n" +
			r.responses.pick(jokePool) +
			"\n\nNow, how can I help with mpox information today?",
	}
}

func (r *Router) handleOffTopic(_ context.Context, _, _ string) model.Response {
	return model.Response{Text: r.responses.pick(offTopicPool)}
}

// handleVague resolves "tell me more" style follow-ups against the stored
// context. With no live context the user is asked to rephrase.
func (r *Router) handleVague(ctx context.Context, userID, _ string) model.Response {
	uc, found := r.contexts.Get(ctx, userID)
	if !found {
		return model.Response{
			Text: "I'm not sure what you're referring to.\n" +
				"Please provide more context or ask a complete question about mpox.",
		}
	}
	view := renderDetail(uc)
	return model.Response{Text: formatDetail(view)}
}

func (r *Router) handleClassification(ctx context.Context, userID, text string) model.Response {
	result := r.claims.Classify(ctx, text)
	if result.Label == model.LabelInvalidInput {
		return model.Response{
			Label: result.Label,
			Text:  "Sorry, I couldn't understand that. Please ask or state something clearly.",
		}
	}

	body := fmt.Sprintf("Prediction: %s\nExplanation: %s\nReason: %s", result.Label, result.Explanation, result.Reason)
	if result.CitationURL != "" {
		body += "\nSource: " + result.CitationURL
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:  model.ContextClassification,
		Query: text,
		Content: map[string]string{
			"label":       string(result.Label),
			"explanation": result.Explanation,
			"reason":      result.Reason,
			"source_url":  result.CitationURL,
		},
	})

	return model.Response{
		Label:       result.Label,
		Text:        body,
		Explanation: result.Explanation,
		Reason:      result.Reason,
		CitationURL: result.CitationURL,
		Confidence:  result.Confidence,
	}
}

func (r *Router) handleTransmissionExplanation(ctx context.Context, userID, _ string) model.Response {
	r.contexts.Put(ctx, userID, model.UserContext{
		Type:    model.ContextInfo,
		Content: map[string]string{"category": "transmission"},
	})
	return model.Response{
		Text: "Mpox is primarily transmitted through prolonged, close, direct contact with an infected person, " +
			"especially via skin-to-skin contact. Although transmission through contaminated surfaces is possible, " +
			"it is considerably less common.\n" +
			"For more details: https://www.cdc.gov/mpox/index.html and " +
			"https://www.who.int/news-room/questions-and-answers/item/mpox",
	}
}

func (r *Router) handleRiskComparison(_ context.Context, _, _ string) model.Response {
	return model.Response{
		Text: "Disease Comparison:\n\n" +
			"Mpox vs other diseases:\n" +
			"- Fatality rate: 1-10% (lower than smallpox)\n" +
			"- Contagiousness: Less than measles or COVID\n" +
			"- Severity: Generally milder than smallpox\n\n" +
			"Trusted comparisons:\n" +
			"https://www.who.int/news-room/questions-and-answers/item/monkeypox\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/clinicians/faq.html",
	}
}

func (r *Router) handleSymptomQuery(ctx context.Context, userID, text string) model.Response {
	match, found := r.faqs.Lookup(ctx, text, r.thresholds.FAQMatch)
	var body, answer, summary string
	if found {
		summary = oracle.ShortAnswer(ctx, r.summarizer, match.Answer)
		answer = match.Answer
		body = "Informational Answer:\n\n" + summary + "\n\n" +
			"For more details:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/clinicians/faq.html | " +
			"https://www.who.int/health-topics/monkeypox"
	} else {
		body = "I couldn't find an exact answer for that.\n\n" +
			"It's always best to refer to trusted health sources:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/clinicians/faq.html | " +
			"https://www.who.int/health-topics/monkeypox"
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:  model.ContextFAQ,
		Query: text,
		Content: map[string]string{
			"question": text,
			"answer":   answer,
			"summary":  summary,
		},
	})
	return model.Response{Text: body, Confidence: match.Score}
}

func (r *Router) handleTransmissionClaim(ctx context.Context, userID, text string) model.Response {
	// Transmission questions accept weaker FAQ matches.
	match, found := r.faqs.Lookup(ctx, text, 0.6)
	var body string
	if found {
		body = "Transmission Facts:\n\n" + oracle.ShortAnswer(ctx, r.summarizer, match.Answer) + "\n\n" +
			"Trusted sources:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/transmission.html | " +
			"https://www.who.int/news-room/questions-and-answers/item/monkeypox"
	} else {
		body = "How Mpox Spreads:\n\n" +
			"- Direct contact with infectious rash/scabs\n" +
			"- Respiratory secretions during prolonged face-to-face contact\n" +
			"- Contact with contaminated objects\n" +
			"- From pregnant person to fetus\n\n" +
			"Detailed information:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/transmission.html | " +
			"https://www.who.int/news-room/questions-and-answers/item/monkeypox"
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:    model.ContextInfo,
		Query:   text,
		Content: map[string]string{"category": "transmission"},
	})
	return model.Response{Text: body, Confidence: match.Score}
}

func (r *Router) handlePrevention(ctx context.Context, userID, text string) model.Response {
	match, found := r.faqs.Lookup(ctx, text, 0.6)
	var body string
	if found {
		body = "Prevention Guide:\n\n" + oracle.ShortAnswer(ctx, r.summarizer, match.Answer) + "\n\n" +
			"Trusted sources:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/prevention.html | " +
			"https://www.who.int/news-room/questions-and-answers/item/monkeypox"
	} else {
		body = "Key Prevention Methods:\n\n" +
			"- Avoid close contact with infected people\n" +
			"- Practice good hand hygiene\n" +
			"- Use PPE when caring for patients\n" +
			"- Isolate if experiencing symptoms\n\n" +
			"Detailed guidelines:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/prevention.html | " +
			"https://www.who.int/news-room/questions-and-answers/item/monkeypox"
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:    model.ContextInfo,
		Query:   text,
		Content: map[string]string{"category": "prevention"},
	})
	return model.Response{Text: body, Confidence: match.Score}
}

func (r *Router) handleScenario(ctx context.Context, userID, text string) model.Response {
	result := r.scenarios.Classify(ctx, text)
	if result.Fallback == nil {
		body := fmt.Sprintf("Transmission Risk Assessment:\n\n"+
			"- Scenario: %s\n"+
			"- Risk Level: %s\n"+
			"- Explanation: %s\n"+
			"- Reason: %s", text, result.Tier, result.Explanation, result.Reason)
		if result.CitationURL != "" {
			body += "\n\nTrusted source:\n" + result.CitationURL
		}
		return model.Response{Text: body, Confidence: result.Confidence}
	}

	// Weak scenario match: try the FAQ table with a permissive threshold
	// before surfacing the claim verdict.
	if match, found := r.faqs.Lookup(ctx, text, 0.5); found {
		body := "Transmission Facts:\n\n" + oracle.ShortAnswer(ctx, r.summarizer, match.Answer) + "\n\n" +
			"Trusted source:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/transmission.html"
		return model.Response{Text: body, Confidence: match.Score}
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:    model.ContextInfo,
		Query:   text,
		Content: map[string]string{"category": "transmission"},
	})
	return model.Response{
		Text: "General Transmission Info:\n\n" +
			"Mpox spreads through:\n" +
			"- Direct contact with infectious rash\n" +
			"- Respiratory secretions during prolonged contact\n" +
			"- Contaminated objects (less common)\n\n" +
			"Detailed guidelines:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/transmission.html",
	}
}

func (r *Router) handleGreeting(_ context.Context, _, text string) model.Response {
	if containsAny(text, []string{"how are you"}) {
		return model.Response{Text: r.responses.pick(conversationalPool)}
	}
	return model.Response{Text: r.responses.pick(greetingPool)}
}

func (r *Router) handleCasual(_ context.Context, _, _ string) model.Response {
	return model.Response{Text: r.responses.pick(casualPool)}
}

func (r *Router) handleNews(ctx context.Context, userID, text string) model.Response {
	items, err := r.news.Headlines(ctx)
	if err != nil || len(items) == 0 {
		log.Warn().Err(err).Msg("headline fetch failed")
		return model.Response{Text: "Couldn't fetch the latest news right now. Please try again later."}
	}

	top := items[0]
	r.contexts.Put(ctx, userID, model.UserContext{
		Type:  model.ContextNews,
		Query: text,
		Content: map[string]string{
			"title": top.Title,
			"url":   top.URL,
		},
	})
	return model.Response{
		Text: fmt.Sprintf("Latest Headline:\n%s\nRead more: %s", top.Title, top.URL),
	}
}

func (r *Router) handleGeneralQuestion(ctx context.Context, userID, text string) model.Response {
	match, found := r.faqs.Lookup(ctx, text, r.thresholds.FAQMatch)
	var body, answer, summary string
	if found {
		summary = oracle.ShortAnswer(ctx, r.summarizer, match.Answer)
		answer = match.Answer
		body = "Informational Answer:\n\n" + summary + "\n\n" +
			"For more details:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/clinicians/faq.html | " +
			"https://www.who.int/health-topics/monkeypox"
	} else {
		body = "I couldn't find an exact answer for that.\n\n" +
			"It's always best to refer to trusted health sources:\n" +
			"https://www.cdc.gov/poxvirus/monkeypox/clinicians/faq.html | " +
			"https://www.who.int/health-topics/monkeypox"
	}

	r.contexts.Put(ctx, userID, model.UserContext{
		Type:  model.ContextFAQ,
		Query: text,
		Content: map[string]string{
			"question": text,
			"answer":   answer,
			"summary":  summary,
		},
	})
	return model.Response{Text: body, Confidence: match.Score}
}
