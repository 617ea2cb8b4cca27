package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orohange/console-gateway/internal/core/domain"
)

const defaultAttemptTTL = 10 * time.Minute

// AttemptStore keeps in-progress two-step attempts with a TTL, keyed by
// email. Key format: attempt:auth:<email> / attempt:reset:<email>.
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAttemptStore creates an AttemptStore wrapping the given Redis client.
// A non-positive ttl falls back to defaultAttemptTTL.
func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	if ttl <= 0 {
		ttl = defaultAttemptTTL
	}
	return &AttemptStore{client: client, ttl: ttl}
}

func authKey(email string) string  { return fmt.Sprintf("attempt:auth:%s", email) }
func resetKey(email string) string { return fmt.Sprintf("attempt:reset:%s", email) }

func (s *AttemptStore) SaveAuth(ctx context.Context, attempt *domain.AuthAttempt) error {
	return s.save(ctx, authKey(attempt.Email), attempt)
}

func (s *AttemptStore) LoadAuth(ctx context.Context, email string) (*domain.AuthAttempt, error) {
	var attempt domain.AuthAttempt
	if err := s.load(ctx, authKey(email), &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptStore) DeleteAuth(ctx context.Context, email string) error {
	return s.client.Del(ctx, authKey(email)).Err()
}

func (s *AttemptStore) SaveReset(ctx context.Context, attempt *domain.ResetAttempt) error {
	return s.save(ctx, resetKey(attempt.Email), attempt)
}

func (s *AttemptStore) LoadReset(ctx context.Context, email string) (*domain.ResetAttempt, error) {
	var attempt domain.ResetAttempt
	if err := s.load(ctx, resetKey(email), &attempt); err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *AttemptStore) DeleteReset(ctx context.Context, email string) error {
	return s.client.Del(ctx, resetKey(email)).Err()
}

func (s *AttemptStore) save(ctx context.Context, key string, attempt any) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *AttemptStore) load(ctx context.Context, key string, attempt any) error {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrNoAttempt
		}
		return fmt.Errorf("load attempt: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), attempt); err != nil {
		return fmt.Errorf("decode attempt: %w", err)
	}
	return nil
}
