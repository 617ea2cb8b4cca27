package ports

import (
	"context"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// SessionStore persists sessions keyed by session id. Write replaces the
// stored token+identity pair atomically from the caller's perspective;
// Clear removes both. Sessions carry no TTL of their own: the upstream
// token is trusted until the upstream API starts rejecting it.
type SessionStore interface {
	Read(ctx context.Context, sid string) (*domain.Session, error)
	Write(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context, sid string) error
}

// AttemptStore holds in-progress two-step attempts, keyed by email.
// Records expire after the store's TTL; loading an expired or missing
// record returns domain.ErrNoAttempt.
type AttemptStore interface {
	SaveAuth(ctx context.Context, attempt *domain.AuthAttempt) error
	LoadAuth(ctx context.Context, email string) (*domain.AuthAttempt, error)
	DeleteAuth(ctx context.Context, email string) error

	SaveReset(ctx context.Context, attempt *domain.ResetAttempt) error
	LoadReset(ctx context.Context, email string) (*domain.ResetAttempt, error)
	DeleteReset(ctx context.Context, email string) error
}

// CredentialSealer reversibly encrypts sign-in credentials for the attempt
// store. Sealing is reversible because the verify step must replay the
// password to the upstream API.
type CredentialSealer interface {
	Seal(email, password string) ([]byte, error)
	Open(sealed []byte) (email, password string, err error)
}
