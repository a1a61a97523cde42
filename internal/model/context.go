package model

import "time"

// ContextType tags what kind of answer a stored context refers to, which
// selects the detail-rendering template for follow-ups.
type ContextType string

const (
	ContextClassification ContextType = "classification"
	ContextFAQ            ContextType = "faq"
	ContextInfo           ContextType = "info"
	ContextNews           ContextType = "news"
)

// UserContext is the short-lived per-user memory of the last answer that
// warrants follow-up. Exactly one context exists per user; every new
// qualifying answer overwrites the previous one.
type UserContext struct {
	Type      ContextType       `json:"type"`
	Query     string            `json:"query"`
	Content   map[string]string `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
}

// Expired reports whether the context is older than ttl at the given time.
func (c UserContext) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.CreatedAt) > ttl
}
