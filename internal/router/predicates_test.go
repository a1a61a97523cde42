package router

import "testing"

func TestIsOffTopic(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"what is the capital of france", true},
		{"who is the best actor", true},
		{"what is mpox", false},             // health term keeps it on topic
		{"is chickenpox similar", false},    // disease term keeps it on topic
		{"should i see a doctor", false},    // health keyword
		{"what is the best strategy", true}, // trivia pattern, no health terms
		{"random words without questions", false},
	}
	for _, tt := range tests {
		if got := isOffTopic(tt.text); got != tt.want {
			t.Errorf("isOffTopic(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsVagueReference(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"tell me", true},
		{"explain", true},
		{"what about", true},
		{"more detail please", true},
		{"tell me about mpox transmission in detail", false}, // too long
		{"", false},
	}
	for _, tt := range tests {
		if got := isVagueReference(tt.text); got != tt.want {
			t.Errorf("isVagueReference(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsRiskComparison(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"is mpox more dangerous compared to covid", true},
		{"mpox vs smallpox severity", true},
		{"is it safe to hug someone", false},  // risk phrase but no comparison
		{"compared to last year cases", false}, // comparison but no disease
	}
	for _, tt := range tests {
		if got := isRiskComparison(tt.text); got != tt.want {
			t.Errorf("isRiskComparison(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsNewsRequest(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"any news about the outbreak", true},
		{"latest mpox situation", true},
		{"show me an mpox report", true},
		{"does garlic help", false},
	}
	for _, tt := range tests {
		if got := isNewsRequest(tt.text); got != tt.want {
			t.Errorf("isNewsRequest(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsGeneralQuestion(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"does the vaccine work?", true},
		{"how does it spread", true},
		{"describe the rash stages", true},
		{"garlic cures everything", false},
	}
	for _, tt := range tests {
		if got := isGeneralQuestion(tt.text); got != tt.want {
			t.Errorf("isGeneralQuestion(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
