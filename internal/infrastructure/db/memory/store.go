// Package memory provides process-local session and attempt stores. They
// back development mode (no REDIS_ADDR configured) and tests; state does
// not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// SessionStore is a thread-safe in-memory SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Read(_ context.Context, sid string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *SessionStore) Write(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

type authEntry struct {
	attempt   domain.AuthAttempt
	expiresAt time.Time
}

type resetEntry struct {
	attempt   domain.ResetAttempt
	expiresAt time.Time
}

// AttemptStore is a thread-safe in-memory AttemptStore with TTL expiry
// checked on load.
type AttemptStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	auth  map[string]authEntry
	reset map[string]resetEntry
	now   func() time.Time
}

func NewAttemptStore(ttl time.Duration) *AttemptStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &AttemptStore{
		ttl:   ttl,
		auth:  make(map[string]authEntry),
		reset: make(map[string]resetEntry),
		now:   time.Now,
	}
}

func (s *AttemptStore) SaveAuth(_ context.Context, attempt *domain.AuthAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth[attempt.Email] = authEntry{attempt: *attempt, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *AttemptStore) LoadAuth(_ context.Context, email string) (*domain.AuthAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.auth[email]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.auth, email)
		return nil, domain.ErrNoAttempt
	}
	attempt := entry.attempt
	return &attempt, nil
}

func (s *AttemptStore) DeleteAuth(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.auth, email)
	return nil
}

func (s *AttemptStore) SaveReset(_ context.Context, attempt *domain.ResetAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset[attempt.Email] = resetEntry{attempt: *attempt, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *AttemptStore) LoadReset(_ context.Context, email string) (*domain.ResetAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.reset[email]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.reset, email)
		return nil, domain.ErrNoAttempt
	}
	attempt := entry.attempt
	return &attempt, nil
}

func (s *AttemptStore) DeleteReset(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reset, email)
	return nil
}
