package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/orohange/console-gateway/internal/api/middleware"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/service"
	"github.com/orohange/console-gateway/internal/infrastructure/db/memory"
	"github.com/orohange/console-gateway/internal/infrastructure/seal"
	"github.com/orohange/console-gateway/internal/infrastructure/upstream"
)

// fakeOrphanageAPI is a minimal stand-in for the remote API: OTP endpoints
// plus one resource list.
func fakeOrphanageAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"OTP sent"}`))
	})
	mux.HandleFunc("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["otp"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid OTP"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"upstream-token","user":{"id":"u1","name":"Admin","email":"admin@orohange.org","role":"admin"}}`))
	})
	mux.HandleFunc("/api/children", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer upstream-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Amina"}]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httptest.NewServer(mux)
}

func newTestRouter(t *testing.T, upstreamURL string) *httptest.Server {
	t.Helper()

	log := zerolog.Nop()
	sessions := memory.NewSessionStore()
	attempts := memory.NewAttemptStore(10 * time.Minute)
	sealer, err := seal.New("test-seal-secret")
	if err != nil {
		t.Fatalf("sealer: %v", err)
	}
	client := upstream.New(upstreamURL, 5*time.Second, log)

	e := NewRouter(RouterConfig{
		AuthService:     service.NewAuthService(client, sessions, attempts, sealer, "test-jwt-secret", log),
		ResourceService: service.NewResourceService(client, sessions, log),
		Sessions:        sessions,
		Upstream:        client,
		JWTSecret:       "test-jwt-secret",
		AuthRate:        100,
		AuthBurst:       100,
		MetricsRegistry: prometheus.NewRegistry(),
		Logger:          log,
	})
	return httptest.NewServer(e)
}

func TestRouter_RootRedirectsAnonymousToSignIn(t *testing.T) {
	api := fakeOrphanageAPI(t)
	defer api.Close()
	srv := newTestRouter(t, api.URL)
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != domain.PathSignIn {
		t.Fatalf("expected redirect to %s, got %s", domain.PathSignIn, loc)
	}
}

func TestRouter_GuardRedirectsAnonymousFromResources(t *testing.T) {
	api := fakeOrphanageAPI(t)
	defer api.Close()
	srv := newTestRouter(t, api.URL)
	defer srv.Close()

	client := &http.Client{CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	for _, path := range []string{"/api/children", "/api/dashboard", "/admin-dashboard"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != domain.PathSignIn {
			t.Fatalf("%s: expected redirect to %s, got %s", path, domain.PathSignIn, loc)
		}
	}
}

func TestRouter_FullSignInFlow(t *testing.T) {
	api := fakeOrphanageAPI(t)
	defer api.Close()
	srv := newTestRouter(t, api.URL)
	defer srv.Close()

	// Step one: request the OTP.
	resp, err := http.Post(srv.URL+"/api/auth/send-otp", "application/json",
		strings.NewReader(`{"email":"admin@orohange.org","password":"secret"}`))
	if err != nil {
		t.Fatalf("send-otp: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send-otp: expected 200, got %d", resp.StatusCode)
	}

	// Step two: verify and collect the session cookie.
	resp, err = http.Post(srv.URL+"/api/auth/verify-otp", "application/json",
		strings.NewReader(`{"email":"admin@orohange.org","otp":"123456"}`))
	if err != nil {
		t.Fatalf("verify-otp: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify-otp: expected 200, got %d", resp.StatusCode)
	}

	var verify struct {
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verify); err != nil {
		t.Fatalf("decode verify response: %v", err)
	}
	if verify.Redirect != domain.PathAdminDashboard {
		t.Fatalf("expected landing %s, got %s", domain.PathAdminDashboard, verify.Redirect)
	}

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}

	// The cookie now opens the resource proxy.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/children", nil)
	req.AddCookie(cookie)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("children: expected 200, got %d", resp2.StatusCode)
	}
}

func TestRouter_WrongOTPSurfacesUpstreamMessage(t *testing.T) {
	api := fakeOrphanageAPI(t)
	defer api.Close()
	srv := newTestRouter(t, api.URL)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/auth/send-otp", "application/json",
		strings.NewReader(`{"email":"admin@orohange.org","password":"secret"}`))
	if err != nil {
		t.Fatalf("send-otp: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/api/auth/verify-otp", "application/json",
		strings.NewReader(`{"email":"admin@orohange.org","otp":"999999"}`))
	if err != nil {
		t.Fatalf("verify-otp: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Invalid OTP" {
		t.Fatalf("expected upstream message preserved, got %q", body["error"])
	}
}

func TestRouter_HealthEndpoints(t *testing.T) {
	api := fakeOrphanageAPI(t)
	defer api.Close()
	srv := newTestRouter(t, api.URL)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/health/ready")
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", resp.StatusCode)
	}
}
