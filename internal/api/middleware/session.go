package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "orohange_session"

const sessionContextKey = "session"

// Session resolves the caller's session from the request and injects it into
// the echo context. It never rejects: requests without a valid session simply
// proceed anonymous, and the role guard decides what they may reach.
func Session(store ports.SessionStore, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return next(c)
			}

			sid, err := parseSessionID(token, jwtSecret)
			if err != nil {
				return next(c)
			}

			sess, err := store.Read(c.Request().Context(), sid)
			if err != nil {
				if !errors.Is(err, domain.ErrSessionNotFound) {
					c.Logger().Errorf("session lookup failed: %v", err)
				}
				return next(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session injected by the Session middleware, or nil
// when the request is anonymous.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// sessionToken extracts the signed token from the session cookie, falling
// back to a bearer Authorization header for non-browser clients.
func sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

func parseSessionID(token, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sid, nil
}
