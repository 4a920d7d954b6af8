package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/recrm/crm-api/internal/core/domain"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// STATUS_TRANSITIONS selects permissive (any enum value) or strict
	// (transition table) status updates.
	StatusTransitions string `env:"STATUS_TRANSITIONS, default=permissive"`
	ActivityWorkers   int    `env:"ACTIVITY_WORKERS,   default=8"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	TokenTTL     time.Duration `env:"TOKEN_TTL,          default=24h"`
	CookieName   string        `env:"AUTH_COOKIE_NAME,   default=auth-token"`
	CookieSecure bool          `env:"AUTH_COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=real_estate_crm"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment switches on console logging and secure-less cookies.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) TransitionPolicy() domain.TransitionPolicy {
	return domain.TransitionPolicy{Mode: domain.ParseTransitionMode(c.StatusTransitions)}
}
