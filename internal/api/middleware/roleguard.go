package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/api/metrics"
	"github.com/orohange/console-gateway/internal/core/domain"
)

// RoleGuard admits the request only when the resolved session carries one of
// the allowed roles. Everything else is redirected to the sign-in screen with
// no error payload. The session itself is left untouched: a denied request
// does not sign the caller out elsewhere.
func RoleGuard(allowed ...domain.Role) echo.MiddlewareFunc {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil {
				metrics.GuardDecisionsTotal.WithLabelValues("deny").Inc()
				return c.Redirect(http.StatusFound, domain.PathSignIn)
			}

			if _, ok := allowedSet[sess.Identity.Role]; !ok {
				metrics.GuardDecisionsTotal.WithLabelValues("deny").Inc()
				return c.Redirect(http.StatusFound, domain.PathSignIn)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("admit").Inc()
			return next(c)
		}
	}
}
