package contextstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/model"
)

// RedisStore keeps contexts in Redis so multiple bot or API instances
// share follow-up memory. Redis expires keys itself; Sweep is a no-op.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis at addr.
func NewRedisStore(addr string, ttl time.Duration) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address is required for the redis context backend")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func contextKey(userID string) string {
	return "mythwatch:context:" + userID
}

// Get returns the live context for a user. Any Redis failure is treated
// as a miss; follow-up memory is best-effort.
func (s *RedisStore) Get(ctx context.Context, userID string) (model.UserContext, bool) {
	data, err := s.client.Get(ctx, contextKey(userID)).Result()
	if err == redis.Nil {
		return model.UserContext{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("redis context read failed")
		return model.UserContext{}, false
	}

	var uc model.UserContext
	if err := json.Unmarshal([]byte(data), &uc); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("corrupt context entry dropped")
		_ = s.client.Del(ctx, contextKey(userID)).Err()
		return model.UserContext{}, false
	}
	return uc, true
}

// Put stores a context with the store TTL.
func (s *RedisStore) Put(ctx context.Context, userID string, uc model.UserContext) {
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = time.Now()
	}

	data, err := json.Marshal(uc)
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("context marshal failed")
		return
	}

	if err := s.client.Set(ctx, contextKey(userID), data, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("redis context write failed")
	}
}

// Sweep is a no-op; Redis evicts expired keys on its own.
func (s *RedisStore) Sweep(context.Context) {}
