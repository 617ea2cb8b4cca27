package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/orohange/console-gateway/internal/api/handler"
	"github.com/orohange/console-gateway/internal/api/middleware"
	"github.com/orohange/console-gateway/internal/core/domain"
	"github.com/orohange/console-gateway/internal/core/ports"
)

// RouterConfig carries the wired services and the knobs the route table
// needs.
type RouterConfig struct {
	AuthService     ports.AuthService
	ResourceService ports.ResourceService
	Sessions        ports.SessionStore

	// Redis may be nil when the gateway runs on in-memory stores; the
	// readiness probe then skips it.
	Redis    *redis.Client
	Upstream handler.UpstreamPinger

	JWTSecret    string
	SecureCookie bool

	// AuthRate / AuthBurst throttle the public auth endpoints per IP.
	AuthRate  float64
	AuthBurst int

	// MetricsRegistry overrides the default Prometheus registry. Tests pass
	// a fresh registry so routers can be built repeatedly.
	MetricsRegistry *prometheus.Registry

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	promCfg := echoprometheus.MiddlewareConfig{Namespace: "console"}
	handlerCfg := echoprometheus.HandlerConfig{}
	if cfg.MetricsRegistry != nil {
		promCfg.Registerer = cfg.MetricsRegistry
		handlerCfg.Gatherer = cfg.MetricsRegistry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))
	e.Use(middleware.Session(cfg.Sessions, cfg.JWTSecret))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SecureCookie)
	childrenHandler := handler.NewChildrenHandler(cfg.ResourceService)
	staffHandler := handler.NewStaffHandler(cfg.ResourceService)
	userHandler := handler.NewUserHandler(cfg.ResourceService)
	dashboardHandler := handler.NewDashboardHandler(cfg.ResourceService)
	navHandler := handler.NewNavigationHandler()
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Redis, cfg.Upstream)

	// --- Landing and public screens ---
	e.GET("/", navHandler.Root)
	e.GET(domain.PathSignIn, navHandler.PublicView("signin"))
	e.GET(domain.PathSignUp, navHandler.PublicView("signup"))
	e.GET(domain.PathForgotPassword, navHandler.PublicView("forgot-password"))

	// --- Auth flows (rate limited per IP) ---
	authRL := middleware.NewRateLimiter(rate.Limit(cfg.AuthRate), cfg.AuthBurst)
	auth := e.Group("/api/auth", authRL.Middleware())
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/register", authHandler.Register)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Logout stays un-throttled and unguarded: a stale console tab must
	// always be able to sign out cleanly.
	e.POST("/api/auth/logout", authHandler.Logout)

	// --- Console screens and resource proxy (role guarded) ---
	guard := middleware.RoleGuard(domain.RoleAdmin, domain.RoleStaff)
	console := e.Group("", guard)
	console.GET(domain.PathAdminDashboard, navHandler.GuardedView("admin-dashboard"))
	console.GET(domain.PathStaffDashboard, navHandler.GuardedView("staff-dashboard"))

	protected := e.Group("/api", guard)
	protected.GET("/auth/session", authHandler.Session)

	protected.GET("/children", childrenHandler.List)
	protected.POST("/children", childrenHandler.Create)
	protected.PUT("/children/:id", childrenHandler.Update)
	protected.DELETE("/children/:id", childrenHandler.Delete)

	protected.GET("/staff", staffHandler.List)
	protected.POST("/staff", staffHandler.Create)
	protected.PUT("/staff/:id", staffHandler.Update)
	protected.DELETE("/staff/:id", staffHandler.Delete)

	protected.GET("/users", userHandler.List)
	protected.POST("/users", userHandler.Create)
	protected.PATCH("/users/update/:id", userHandler.Update)
	protected.DELETE("/users/:id", userHandler.Delete)

	protected.GET("/profile", userHandler.Profile)
	protected.PATCH("/profile", userHandler.UpdateProfile)

	protected.GET("/donations", dashboardHandler.Donations)
	protected.GET("/reports/donations/:range", dashboardHandler.DonationsReport)
	protected.GET("/dashboard", dashboardHandler.Stats)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(handlerCfg))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
