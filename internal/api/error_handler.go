package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays upstream rejections with their original status and message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Input failures caught before any upstream call.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message
	}

	// Upstream rejections keep their status so the console surfaces the
	// real failure to the user.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		status := ue.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, ue.Error()
	}

	switch {
	case errors.Is(err, domain.ErrNoAttempt):
		return http.StatusConflict, "no sign-in attempt in progress, start over"
	case errors.Is(err, domain.ErrInvalidPhase):
		return http.StatusConflict, "this step is out of order, start over"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "not signed in"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
