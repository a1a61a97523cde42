package router

import (
	"regexp"
	"strings"
)

// Keyword tables for the routing cascade. All matching happens on
// normalized (lowercased, synonym-folded) text.

var jokeTriggers = []string{
	"joke", "funny", "humor", "laugh", "hilarious", "comedy",
	"kidding", "jest", "gag", "pun", "rofl", "lol", "make me laugh",
	"cheer me up", "tell me something funny", "lighten up",
}

var offTopicKeywords = []string{
	"capital", "president", "weather", "sports", "movie", "music",
	"celebrity", "recipe", "game", "sport", "team", "actor", "actress",
	"book", "song", "artist", "football", "basketball", "entertainment",
	"history", "geography", "politics", "economy", "stock", "finance",
	"cook", "restaurant", "travel", "destination",
	"language", "translate", "currency", "population",
}

var diseaseKeywords = []string{"pox", "virus", "disease", "illness", "infection"}

var healthKeywords = []string{"health", "medical", "clinic", "doctor", "hospital", "patient", "mpox"}

var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`who (is|are) .+`),
	regexp.MustCompile(`what (is|are) .+`),
	regexp.MustCompile(`where is .+`),
	regexp.MustCompile(`when (was|did) .+`),
	regexp.MustCompile(`how to .+`),
	regexp.MustCompile(`capital of`),
	regexp.MustCompile(`president of`),
	regexp.MustCompile(`leader of`),
	regexp.MustCompile(`population of`),
	regexp.MustCompile(`define `),
	regexp.MustCompile(`meaning of`),
	regexp.MustCompile(`translate `),
}

var vagueTerms = []string{"this", "that", "it", "explain", "more", "detail", "tell me"}

var standaloneVaguePhrases = []string{"tell me", "explain", "what about", "how about", "and"}

var misinfoKeyphrases = []string{
	"garlic water", "5g", "government hoax", "bill gates", "microchip",
	"wifi signals", "not real", "fake virus", "planned", "bio weapon",
}

var transmissionExplanationPattern = regexp.MustCompile(`how is mpox (transmitted|spread)`)

var riskPhrases = []string{
	"safe to", "is it safe", "how safe", "should i worry",
	"chance of getting", "likely to catch", "risk of",
	"more dangerous", "less dangerous", "compared to",
	"versus", "vs ",
}

var comparableDiseases = []string{"covid", "chickenpox", "smallpox", "measles", "flu"}

var transmissionClaimKeywords = []string{"spread", "transmit", "catch", "infect", "exposure", "contact"}

var preventionKeywords = []string{"prevent", "avoid", "protection", "safe"}

var transmissionScenarioKeywords = []string{
	"handshake", "hand shake", "shake hands", "hug", "kiss", "embrace",
	"surface", "object", "toilet", "bedding", "clothing", "utensil",
	"air", "breathe", "cough", "sneeze", "respiratory", "aerosol",
	"water", "pool", "swim", "swimming", "beach", "ocean",
	"food", "eat", "drink", "animal", "pet",
}

var transmissionScenarioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`can you get \w+ from`),
	regexp.MustCompile(`is it safe to`),
	regexp.MustCompile(`risk of.*from`),
	regexp.MustCompile(`transmi(t|ssion).*(through|via|from)`),
	regexp.MustCompile(`spread.*(in|through|at)`),
}

var greetings = []string{
	"hi", "hello", "hey", "good morning", "good afternoon", "good evening", "howdy",
	"how are you", "how's it going", "what's up", "how do you do", "how are things",
	"how have you been", "how is everything",
}

// Greetings match on word boundaries so "hi" does not fire inside "this".
var greetingPatterns = compileGreetings()

func compileGreetings() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(greetings))
	for _, greet := range greetings {
		patterns = append(patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(greet)+`\b`))
	}
	return patterns
}

var casualKeywords = []string{
	"thanks", "thank", "thx", "tx", "appreciate",
	"ok", "cool", "fine", "alright", "got it",
	"cheers", "kudos", "ty",
	"hank", "tank", "thnak", "thnks",
}

var newsKeywords = []string{"news", "update", "headline", "recent", "latest", "new", "current"}

var questionKeywords = []string{"what", "how", "why", "when", "where", "who", "is", "are", "can", "does", "do", "will"}

var questionPhrases = []string{"tell me", "explain", "describe", "list", "what is", "what are", "how do", "can you"}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func isJokeRequest(text string) bool {
	return containsAny(text, jokeTriggers)
}

// isOffTopic is two-tiered: an explicit off-topic keyword decides
// immediately; otherwise disease or health terms keep the message on
// topic, and only then do trivia question patterns reject it.
func isOffTopic(text string) bool {
	if containsAny(text, offTopicKeywords) {
		return true
	}
	if containsAny(text, diseaseKeywords) {
		return false
	}
	if !containsAny(text, healthKeywords) {
		return matchesAny(text, offTopicPatterns)
	}
	return false
}

// isVagueReference flags short follow-ups like "tell me more" that only
// make sense against the previous answer.
func isVagueReference(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, phrase := range standaloneVaguePhrases {
		if trimmed == phrase {
			return true
		}
	}
	return containsAny(trimmed, vagueTerms) && len(strings.Fields(trimmed)) <= 3
}

func isClearMisinfo(text string) bool {
	return containsAny(text, misinfoKeyphrases)
}

func isTransmissionExplanation(text string) bool {
	return transmissionExplanationPattern.MatchString(text)
}

// isRiskComparison accepts only explicit disease comparisons; plain risk
// questions continue down the cascade to scenario handling.
func isRiskComparison(text string) bool {
	if !containsAny(text, riskPhrases) {
		return false
	}
	if !strings.Contains(text, " vs ") && !strings.Contains(text, "compared to") {
		return false
	}
	return containsAny(text, comparableDiseases)
}

func isSymptomQuery(text string) bool {
	return strings.Contains(text, "symptom") || strings.Contains(text, "sign")
}

func isTransmissionClaim(text string) bool {
	return containsAny(text, transmissionClaimKeywords)
}

func isPreventionQuery(text string) bool {
	return containsAny(text, preventionKeywords)
}

func isTransmissionScenario(text string) bool {
	return containsAny(text, transmissionScenarioKeywords) ||
		matchesAny(text, transmissionScenarioPatterns)
}

func isGreeting(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return matchesAny(text, greetingPatterns)
}

func isCasualThanks(text string) bool {
	return containsAny(text, casualKeywords)
}

func isNewsRequest(text string) bool {
	if containsAny(text, newsKeywords) {
		return true
	}
	return strings.Contains(text, "mpox") &&
		containsAny(text, []string{"report", "show", "give"})
}

func isGeneralQuestion(text string) bool {
	trimmed := strings.TrimSpace(text)
	if strings.HasSuffix(trimmed, "?") {
		return true
	}
	fields := strings.Fields(trimmed)
	if len(fields) > 0 {
		for _, kw := range questionKeywords {
			if fields[0] == kw {
				return true
			}
		}
	}
	return containsAny(trimmed, questionPhrases)
}
