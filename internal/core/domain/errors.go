package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoAttempt       = errors.New("no pending attempt for this email")
	ErrInvalidPhase    = errors.New("invalid attempt phase transition")
)

// ValidationError reports a required field missing or malformed. It is
// raised before any upstream call and leaves flow state unchanged.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError carries a rejection from the orphanage API, or a transport
// failure reaching it. The upstream message, when present, is surfaced to
// the caller untouched.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream rejected the request (status %d)", e.Status)
	}
	return e.Message
}
