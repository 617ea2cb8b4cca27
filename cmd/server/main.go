package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/orohange/console-gateway/docs"
	"github.com/orohange/console-gateway/internal/api"
	"github.com/orohange/console-gateway/internal/core/ports"
	"github.com/orohange/console-gateway/internal/core/service"
	"github.com/orohange/console-gateway/internal/infrastructure/config"
	"github.com/orohange/console-gateway/internal/infrastructure/db/memory"
	redisdb "github.com/orohange/console-gateway/internal/infrastructure/db/redis"
	"github.com/orohange/console-gateway/internal/infrastructure/seal"
	"github.com/orohange/console-gateway/internal/infrastructure/upstream"
	"github.com/orohange/console-gateway/pkg/logger"
)

// @title           Orohange Console Gateway
// @version         1.0
// @description     Authenticating gateway for the orphanage admin console. Owns sessions and role-gated navigation; proxies resource operations to the upstream orphanage API.
// @BasePath        /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	sealer, err := seal.New(cfg.SealKey)
	if err != nil {
		log.Fatal().Err(err).Msg("credential sealer init failed")
	}

	var (
		sessions ports.SessionStore
		attempts ports.AttemptStore
		rdb      *redis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer client.Close()

		rdb = client
		sessions = redisdb.NewSessionStore(client)
		attempts = redisdb.NewAttemptStore(client, cfg.Auth.AttemptTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis stores")
	} else {
		sessions = memory.NewSessionStore()
		attempts = memory.NewAttemptStore(cfg.Auth.AttemptTTL)
		log.Warn().Msg("REDIS_ADDR not set, using in-memory stores")
	}

	upstreamClient := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)

	authService := service.NewAuthService(upstreamClient, sessions, attempts, sealer, cfg.JWTSecret, log)
	resourceService := service.NewResourceService(upstreamClient, sessions, log)

	e := api.NewRouter(api.RouterConfig{
		AuthService:     authService,
		ResourceService: resourceService,
		Sessions:        sessions,
		Redis:           rdb,
		Upstream:        upstreamClient,
		JWTSecret:       cfg.JWTSecret,
		SecureCookie:    cfg.Env != "development",
		AuthRate:        cfg.Auth.RateLimit,
		AuthBurst:       cfg.Auth.RateBurst,
		Logger:          log,
	})

	address := ":" + cfg.Port
	log.Info().Str("address", address).Str("upstream", cfg.Upstream.BaseURL).Msg("starting console gateway")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}

	log.Info().Msg("server exited properly")
}
