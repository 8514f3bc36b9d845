package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"Masterblog/internal/core/ratelimit"
)

// Config holds the server settings, read from the environment
type Config struct {
	Host              string
	Port              string
	RateLimitStorage  string
	RedisURL          string
	LogFormat         string
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          zerolog.Level
	TrustProxyHeaders bool
	SeedPosts         bool
}

// Log output formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Load reads the configuration from environment variables, applying defaults
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Host:             envOr(getenv, "HOST", "0.0.0.0"),
		Port:             envOr(getenv, "PORT", "5002"),
		RateLimitStorage: strings.ToLower(envOr(getenv, "RATE_LIMIT_STORAGE", ratelimit.StorageMemory)),
		RedisURL:         envOr(getenv, "REDIS_URL", "redis://localhost:6379/0"),
		LogFormat:        strings.ToLower(envOr(getenv, "LOG_FORMAT", LogFormatJSON)),
		AllowedOrigins:   splitList(envOr(getenv, "CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.RateLimitRequests, err = intVar(getenv, "RATE_LIMIT_REQUESTS", ratelimit.DefaultRequests); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = durationVar(getenv, "RATE_LIMIT_WINDOW", ratelimit.DefaultWindow); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationVar(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.TrustProxyHeaders, err = boolVar(getenv, "TRUST_PROXY_HEADERS", false); err != nil {
		return nil, err
	}
	if cfg.SeedPosts, err = boolVar(getenv, "SEED_POSTS", true); err != nil {
		return nil, err
	}

	cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(envOr(getenv, "LOG_LEVEL", "info")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and enums
func (c *Config) Validate() error {
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %d, must be positive", c.RateLimitRequests)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("invalid RATE_LIMIT_WINDOW: %s, must be positive", c.RateLimitWindow)
	}
	if c.RateLimitStorage != ratelimit.StorageMemory && c.RateLimitStorage != ratelimit.StorageRedis {
		return fmt.Errorf("invalid RATE_LIMIT_STORAGE: %s, must be '%s' or '%s'",
			c.RateLimitStorage, ratelimit.StorageMemory, ratelimit.StorageRedis)
	}
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatConsole {
		return fmt.Errorf("invalid LOG_FORMAT: %s, must be '%s' or '%s'", c.LogFormat, LogFormatJSON, LogFormatConsole)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid PORT: %s", c.Port)
	}
	return nil
}

// Addr returns host:port for the listener
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func envOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationVar(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolVar(getenv func(string) string, key string, def bool) (bool, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
