package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// SessionStore persists sessions as a two-entry token/user pair per session
// id, mirroring the console's storage contract. Both entries are written
// and deleted together; entries carry no TTL because the upstream token is
// trusted until upstream rejects it.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func tokenKey(sid string) string { return fmt.Sprintf("session:%s:token", sid) }
func userKey(sid string) string  { return fmt.Sprintf("session:%s:user", sid) }

func (s *SessionStore) Write(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session.Identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKey(session.ID), session.Token, 0)
	pipe.Set(ctx, userKey(session.ID), raw, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SessionStore) Read(ctx context.Context, sid string) (*domain.Session, error) {
	vals, err := s.client.MGet(ctx, tokenKey(sid), userKey(sid)).Result()
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	token, tokenOK := vals[0].(string)
	rawUser, userOK := vals[1].(string)
	if !tokenOK || !userOK {
		// One entry without the other would violate the pairing invariant;
		// treat any partial state as absent.
		return nil, domain.ErrSessionNotFound
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(rawUser), &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}

	return &domain.Session{ID: sid, Token: token, Identity: identity}, nil
}

func (s *SessionStore) Clear(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, tokenKey(sid), userKey(sid)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
