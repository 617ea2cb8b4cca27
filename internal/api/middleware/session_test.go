package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/orohange/console-gateway/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
	readErr  error
}

func (s *stubSessionStore) Read(_ context.Context, sid string) (*domain.Session, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Write(_ context.Context, sess *domain.Session) error {
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Clear(_ context.Context, sid string) error {
	delete(s.sessions, sid)
	return nil
}

func signSessionToken(t *testing.T, secret, sid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  sid,
		"role": "admin",
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSession_InjectsFromCookie(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"sid-1": {
			ID:    "sid-1",
			Token: "upstream-token",
			Identity: domain.Identity{
				ID:    "u1",
				Email: "admin@orohange.org",
				Role:  domain.RoleAdmin,
			},
		},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "secret", "sid-1")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, "secret")
	handler := mw(func(c echo.Context) error {
		sess := SessionFrom(c)
		if sess == nil {
			t.Fatalf("session not injected")
		}
		if sess.Token != "upstream-token" {
			t.Fatalf("unexpected token %q", sess.Token)
		}
		if sess.Identity.Role != domain.RoleAdmin {
			t.Fatalf("unexpected role %q", sess.Identity.Role)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_InjectsFromBearer(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"sid-2": {ID: "sid-2", Token: "tok"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signSessionToken(t, "secret", "sid-2"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, "secret")
	handler := mw(func(c echo.Context) error {
		if SessionFrom(c) == nil {
			t.Fatalf("session not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_AnonymousWithoutToken(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session(store, "secret")
	handler := mw(func(c echo.Context) error {
		called = true
		if SessionFrom(c) != nil {
			t.Fatalf("expected anonymous request")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_AnonymousOnBadSignature(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"sid-3": {ID: "sid-3"},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "wrong-secret", "sid-3")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, "secret")
	handler := mw(func(c echo.Context) error {
		if SessionFrom(c) != nil {
			t.Fatalf("forged token must not resolve a session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_AnonymousWhenStoreMisses(t *testing.T) {
	store := &stubSessionStore{sessions: map[string]*domain.Session{}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signSessionToken(t, "secret", "gone")})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(store, "secret")
	handler := mw(func(c echo.Context) error {
		if SessionFrom(c) != nil {
			t.Fatalf("stale token must not resolve a session")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
