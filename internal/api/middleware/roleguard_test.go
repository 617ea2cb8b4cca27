package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/domain"
)

func guardContext(e *echo.Echo, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(sessionContextKey, sess)
	}
	return c, rec
}

func TestRoleGuard_AdmitsAllowedRole(t *testing.T) {
	e := echo.New()
	c, rec := guardContext(e, &domain.Session{
		ID:       "sid",
		Identity: domain.Identity{Role: domain.RoleAdmin},
	})

	called := false
	handler := RoleGuard(domain.RoleAdmin, domain.RoleStaff)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRoleGuard_RedirectsAnonymous(t *testing.T) {
	e := echo.New()
	c, rec := guardContext(e, nil)

	handler := RoleGuard(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != domain.PathSignIn {
		t.Fatalf("expected redirect to %s, got %s", domain.PathSignIn, loc)
	}
}

func TestRoleGuard_RedirectsDisallowedRole(t *testing.T) {
	e := echo.New()
	c, rec := guardContext(e, &domain.Session{
		ID:       "sid",
		Identity: domain.Identity{Role: domain.RoleUser},
	})

	handler := RoleGuard(domain.RoleAdmin, domain.RoleStaff)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

// A denied request must not disturb the session: repeating the same request
// yields the same decision, and an allowed route still admits the caller.
func TestRoleGuard_DenialLeavesSessionIntact(t *testing.T) {
	e := echo.New()
	sess := &domain.Session{
		ID:       "sid",
		Identity: domain.Identity{Role: domain.RoleStaff},
	}

	deny := RoleGuard(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	for i := 0; i < 2; i++ {
		c, rec := guardContext(e, sess)
		if err := deny(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302 on pass %d, got %d", i, rec.Code)
		}
	}

	c, rec := guardContext(e, sess)
	admit := RoleGuard(domain.RoleStaff)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := admit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after denials, got %d", rec.Code)
	}
}
