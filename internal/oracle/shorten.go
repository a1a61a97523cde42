package oracle

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// summarizeWordFloor is the length above which answers get summarized.
	summarizeWordFloor = 100
	// truncateRunes caps the fallback truncation.
	truncateRunes = 300
)

// ShortAnswer condenses a long reference answer for chat display. Texts of
// a hundred words or fewer pass through untouched. When summarization is
// unavailable or fails, the text is truncated with an ellipsis instead.
func ShortAnswer(ctx context.Context, summarizer Summarizer, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "No summary available"
	}

	if len(strings.Fields(text)) <= summarizeWordFloor {
		return text
	}

	if summarizer != nil {
		summary, err := summarizer.Summarize(ctx, text, 80)
		if err == nil && summary != "" {
			return summary
		}
		log.Warn().Err(err).Msg("summarization failed, truncating")
	}

	runes := []rune(text)
	if len(runes) <= truncateRunes {
		return text
	}
	return string(runes[:truncateRunes]) + "..."
}
