package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/api/metrics"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// AuthService implements the two-step OTP sign-in, the password-reset flow
// and the session lifecycle. All state between steps lives in the attempt
// store; the only durable outcome is a session.
type AuthService struct {
	api       ports.AuthAPI
	sessions  ports.SessionStore
	attempts  ports.AttemptStore
	sealer    ports.CredentialSealer
	jwtSecret string
	logger    zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, sessions ports.SessionStore, attempts ports.AttemptStore, sealer ports.CredentialSealer, jwtSecret string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		api:       api,
		sessions:  sessions,
		attempts:  attempts,
		sealer:    sealer,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// SignIn validates the credentials are present, asks upstream to send the
// one-time code and, once upstream acknowledges, advances the attempt to
// the verify phase with the credentials sealed for replay.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", &domain.ValidationError{Message: "email and password are required"}
	}

	attempt := &domain.AuthAttempt{
		Email:     email,
		Phase:     domain.PhaseLogin,
		CreatedAt: time.Now().UTC(),
	}

	msg, err := s.api.SendOTP(ctx, email, password)
	if err != nil {
		metrics.OTPRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Str("email", email).Msg("otp request rejected upstream")
		return "", withFallback(err, "OTP sending failed")
	}

	sealed, err := s.sealer.Seal(email, password)
	if err != nil {
		return "", err
	}
	if err := attempt.Advance(domain.PhaseVerify); err != nil {
		return "", err
	}
	attempt.SealedCredentials = sealed

	if err := s.attempts.SaveAuth(ctx, attempt); err != nil {
		return "", err
	}

	metrics.OTPRequestsTotal.WithLabelValues("sent").Inc()
	s.logger.Info().Str("email", email).Msg("otp requested")
	return msg, nil
}

// VerifyOTP replays the retained credentials together with the code. On
// success it writes the session and discards the attempt; on upstream
// rejection the attempt is left untouched so the user may retry without
// re-entering credentials. No automatic retry happens here.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*ports.SessionGrant, error) {
	if otp == "" {
		return nil, &domain.ValidationError{Message: "OTP is required"}
	}

	attempt, err := s.attempts.LoadAuth(ctx, email)
	if err != nil {
		return nil, err
	}
	if attempt.Phase != domain.PhaseVerify {
		return nil, domain.ErrNoAttempt
	}

	_, password, err := s.sealer.Open(attempt.SealedCredentials)
	if err != nil {
		return nil, err
	}

	res, err := s.api.VerifyOTP(ctx, email, password, otp)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("failure").Inc()
		s.logger.Warn().Err(err).Str("email", email).Msg("otp verification rejected upstream")
		return nil, withFallback(err, "OTP verification failed")
	}

	identity := domain.Identity{
		ID:    res.User.ID,
		Name:  res.User.Name,
		Email: res.User.Email,
		Role:  domain.ParseRole(res.User.Role),
		Image: res.User.Image,
	}
	session := &domain.Session{
		ID:       uuid.NewString(),
		Token:    res.Token,
		Identity: identity,
	}
	if err := s.sessions.Write(ctx, session); err != nil {
		return nil, err
	}
	if err := s.attempts.DeleteAuth(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to discard verified attempt")
	}

	signed, err := s.issueSessionToken(session)
	if err != nil {
		return nil, err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()
	s.logger.Info().Str("email", email).Str("role", string(identity.Role)).Msg("login successful")

	return &ports.SessionGrant{
		SessionToken: signed,
		Identity:     identity,
		Landing:      domain.PostLoginPath(identity.Role),
	}, nil
}

// Register forwards the multipart registration to upstream.
func (s *AuthService) Register(ctx context.Context, form ports.RegisterForm) (string, error) {
	if form.Name == "" || form.Email == "" || form.Password == "" {
		return "", &domain.ValidationError{Message: "name, email and password are required"}
	}
	msg, err := s.api.Register(ctx, form)
	if err != nil {
		return "", withFallback(err, "registration failed")
	}
	s.logger.Info().Str("email", form.Email).Msg("registration forwarded")
	return msg, nil
}

// RequestPasswordReset starts the reset flow; a successful upstream call
// records a reset attempt so the second step is only accepted afterwards.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", &domain.ValidationError{Message: "email is required"}
	}

	attempt := &domain.ResetAttempt{
		Email:     email,
		Phase:     domain.PhaseRequest,
		CreatedAt: time.Now().UTC(),
	}

	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", withFallback(err, "failed to send OTP")
	}
	if err := attempt.Advance(domain.PhaseReset); err != nil {
		return "", err
	}
	if err := s.attempts.SaveReset(ctx, attempt); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", email).Msg("password reset requested")
	return msg, nil
}

// ResetPassword completes the reset flow. It terminates without a session:
// the caller is sent back to sign in with the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	if otp == "" || newPassword == "" {
		return "", &domain.ValidationError{Message: "all fields are required"}
	}

	attempt, err := s.attempts.LoadReset(ctx, email)
	if err != nil {
		return "", err
	}
	if attempt.Phase != domain.PhaseReset {
		return "", domain.ErrNoAttempt
	}

	msg, err := s.api.ResetPassword(ctx, email, otp, newPassword)
	if err != nil {
		return "", withFallback(err, "reset failed")
	}
	if err := s.attempts.DeleteReset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to discard reset attempt")
	}

	s.logger.Info().Str("email", email).Msg("password reset completed")
	return msg, nil
}

// Logout clears the session. It is idempotent: logging out an unknown or
// already-cleared session succeeds quietly.
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if _, err := s.sessions.Read(ctx, sid); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	s.logger.Info().Str("sid", sid).Msg("session cleared")
	return nil
}

// CurrentSession returns the stored session for sid.
func (s *AuthService) CurrentSession(ctx context.Context, sid string) (*domain.Session, error) {
	return s.sessions.Read(ctx, sid)
}

// issueSessionToken signs the session id into a compact token the client
// carries. The token has no expiry of its own; the session store is the
// authority on whether a session still exists.
func (s *AuthService) issueSessionToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"role": string(session.Identity.Role),
		"iat":  time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// withFallback substitutes a generic message when upstream rejected the
// call without a usable message of its own.
func withFallback(err error, msg string) error {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.Message == "" {
		ue.Message = msg
	}
	return err
}
