package router

import (
	"fmt"
	"strings"

	"github.com/mythwatch/mythwatch/internal/model"
)

// renderDetail expands a stored context into the structured follow-up
// view shown when a user asks for more about their previous answer.
func renderDetail(uc model.UserContext) model.DetailedView {
	switch uc.Type {
	case model.ContextClassification:
		return model.DetailedView{
			Kind:  uc.Type,
			Query: uc.Query,
			Title: "Detailed Explanation",
			Body: fmt.Sprintf("Original Query: %s\nClassification: %s\nReason: %s\nFull Explanation: %s",
				uc.Query, uc.Content["label"], uc.Content["reason"], uc.Content["explanation"]),
			Sources: nonEmpty(uc.Content["source_url"]),
		}

	case model.ContextFAQ:
		return model.DetailedView{
			Kind:  uc.Type,
			Query: uc.Query,
			Title: "Full Answer",
			Body:  fmt.Sprintf("%s\n\nSummary: %s", uc.Content["answer"], uc.Content["summary"]),
		}

	case model.ContextInfo:
		category := uc.Content["category"]
		if category == "" {
			category = "information"
		}
		return model.DetailedView{
			Kind:  uc.Type,
			Query: uc.Query,
			Title: fmt.Sprintf("Detailed %s Information", capitalize(category)),
			Body:  "For comprehensive guidelines, please visit the trusted sources below.",
			Sources: []string{
				"https://www.cdc.gov/poxvirus/monkeypox",
				"https://www.who.int/news-room/questions-and-answers/item/mpox",
			},
		}

	case model.ContextNews:
		return model.DetailedView{
			Kind:    uc.Type,
			Query:   uc.Query,
			Title:   "News Details",
			Body:    fmt.Sprintf("Headline: %s\n\nFor more news updates, visit trusted health news sources.", uc.Content["title"]),
			Sources: nonEmpty(uc.Content["url"]),
		}

	default:
		return model.DetailedView{
			Kind:    uc.Type,
			Title:   "More Information",
			Body:    "Here's where to learn more.",
			Sources: []string{"https://www.cdc.gov/poxvirus/monkeypox"},
		}
	}
}

// formatDetail flattens a view for chat display.
func formatDetail(view model.DetailedView) string {
	var sb strings.Builder
	sb.WriteString(view.Title)
	sb.WriteString(":\n\n")
	sb.WriteString(view.Body)
	if len(view.Sources) > 0 {
		sb.WriteString("\n\nSources:\n")
		sb.WriteString(strings.Join(view.Sources, "\n"))
	}
	return sb.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
