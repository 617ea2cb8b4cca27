package domain

import "time"

// AttemptPhase tracks where a two-step flow currently stands.
type AttemptPhase string

const (
	// Sign-in: credentials collected, then the one-time code.
	PhaseLogin  AttemptPhase = "login"
	PhaseVerify AttemptPhase = "verify"

	// Password reset: email collected, then code plus new password.
	PhaseRequest AttemptPhase = "request"
	PhaseReset   AttemptPhase = "reset"
)

// validAdvances defines the allowed phase transitions. A flow advances only
// after the upstream API acknowledged the previous step; completing the
// second step is terminal and deletes the attempt record instead.
var validAdvances = map[AttemptPhase][]AttemptPhase{
	PhaseLogin:   {PhaseVerify},
	PhaseRequest: {PhaseReset},
}

// CanAdvanceTo reports whether the transition from p to next is allowed.
func (p AttemptPhase) CanAdvanceTo(next AttemptPhase) bool {
	for _, allowed := range validAdvances[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AuthAttempt is one in-progress sign-in, keyed by email. The credentials
// are sealed at rest because the verify step replays them upstream.
type AuthAttempt struct {
	Email             string       `json:"email"`
	Phase             AttemptPhase `json:"phase"`
	SealedCredentials []byte       `json:"sealed_credentials,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
}

// Advance moves the attempt to the next phase, rejecting transitions the
// table does not allow.
func (a *AuthAttempt) Advance(next AttemptPhase) error {
	if !a.Phase.CanAdvanceTo(next) {
		return ErrInvalidPhase
	}
	a.Phase = next
	return nil
}

// ResetAttempt is one in-progress password reset, keyed by email. It holds
// no credentials; it only proves the request step completed.
type ResetAttempt struct {
	Email     string       `json:"email"`
	Phase     AttemptPhase `json:"phase"`
	CreatedAt time.Time    `json:"created_at"`
}

// Advance moves the reset attempt to the next phase.
func (a *ResetAttempt) Advance(next AttemptPhase) error {
	if !a.Phase.CanAdvanceTo(next) {
		return ErrInvalidPhase
	}
	a.Phase = next
	return nil
}
