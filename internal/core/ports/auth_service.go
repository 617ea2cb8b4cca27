package ports

import (
	"context"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// SessionGrant is the terminal outcome of a verified sign-in.
type SessionGrant struct {
	// SessionToken is the signed token carrying the session id; the client
	// presents it as a cookie or bearer header on later requests.
	SessionToken string
	Identity     domain.Identity
	// Landing is the post-login redirect path for the granted role.
	Landing string
}

// AuthService owns the two-step sign-in and password-reset flows and the
// session lifecycle.
type AuthService interface {
	// SignIn runs the first step: it validates the credentials are present,
	// asks upstream to send a one-time code and records the attempt in the
	// verify phase. Returns the upstream confirmation message.
	SignIn(ctx context.Context, email, password string) (string, error)

	// VerifyOTP runs the second step: it replays the retained credentials
	// with the code and, on success, writes the session and discards the
	// attempt. On failure the attempt is kept so the user can retry.
	VerifyOTP(ctx context.Context, email, otp string) (*SessionGrant, error)

	Register(ctx context.Context, form RegisterForm) (string, error)

	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)

	Logout(ctx context.Context, sid string) error
	CurrentSession(ctx context.Context, sid string) (*domain.Session, error)
}
