// Package contextstore keeps the short-lived per-user memory of the last
// answer, used to resolve vague follow-ups like "tell me more". Entries
// expire after a fixed TTL; expiry is enforced lazily on access, never by
// a background timer.
package contextstore

import (
	"context"
	"fmt"

	"github.com/mythwatch/mythwatch/internal/model"
)

// Store is the injectable per-user context capability. Implementations
// must be safe for concurrent use and must never return expired entries.
type Store interface {
	// Get returns the live context for a user, if any.
	Get(ctx context.Context, userID string) (model.UserContext, bool)

	// Put stores a user's context, replacing any previous one.
	Put(ctx context.Context, userID string, uc model.UserContext)

	// Sweep evicts expired entries. Called before every lookup and every
	// new message.
	Sweep(ctx context.Context)
}

// New builds a store for the configured backend.
func New(cfg model.ContextConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown context backend: %s (supported: memory, redis)", cfg.Backend)
	}
}
