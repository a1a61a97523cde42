package contextstore

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mythwatch/mythwatch/internal/model"
)

// MemoryStore keeps contexts in process memory. The cleanup interval is
// zero: no janitor goroutine runs, expiry happens on Sweep and Get.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates an in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryStore{
		cache: gocache.New(ttl, 0),
		ttl:   ttl,
	}
}

// Get returns the live context for a user. Expired entries are never
// returned.
func (s *MemoryStore) Get(_ context.Context, userID string) (model.UserContext, bool) {
	if val, found := s.cache.Get(userID); found {
		return val.(model.UserContext), true
	}
	return model.UserContext{}, false
}

// Put stores a context, replacing any previous one for the user.
func (s *MemoryStore) Put(_ context.Context, userID string, uc model.UserContext) {
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = time.Now()
	}
	s.cache.Set(userID, uc, s.ttl)
}

// Sweep drops expired entries.
func (s *MemoryStore) Sweep(_ context.Context) {
	s.cache.DeleteExpired()
}
