package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs the session token handed to the browser.
	JWTSecret string `env:"JWT_SECRET"`
	// SealKey encrypts retained sign-in credentials in the attempt store.
	SealKey string `env:"CREDENTIAL_SEAL_KEY"`

	Upstream UpstreamConfig
	Redis    RedisConfig
	Auth     AuthConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://server-orohange.onrender.com"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=15s"`
}

// RedisConfig selects the store backend. An empty Addr switches the gateway
// to in-memory stores, intended for development only.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	// AttemptTTL bounds how long a started sign-in or reset may wait for
	// its second step.
	AttemptTTL time.Duration `env:"ATTEMPT_TTL, default=10m"`
	// RateLimit and RateBurst throttle the public auth endpoints per client IP.
	RateLimit float64 `env:"AUTH_RATE_LIMIT, default=1"`
	RateBurst int     `env:"AUTH_RATE_BURST, default=5"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
