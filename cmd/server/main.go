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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"Masterblog/internal/api/middleware"
	"Masterblog/internal/api/routes"
	"Masterblog/internal/config"
	"Masterblog/internal/core/posts"
	"Masterblog/internal/core/ratelimit"
	"Masterblog/internal/db/memory"
)

// seedPosts are loaded at boot so a fresh instance has something to list
var seedPosts = []posts.Fields{
	{"title": "First post1", "content": "This is the first post."},
	{"title": "Second post1", "content": "This is the second post."},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postRepo := memory.NewPostRepository()
	if cfg.SeedPosts {
		for _, fields := range seedPosts {
			if _, err := postRepo.Create(ctx, fields); err != nil {
				logger.Fatal().Err(err).Msg("failed to seed posts")
			}
		}
		logger.Info().Int("count", postRepo.Len()).Msg("seeded posts")
	}
	postService := posts.NewPostService(postRepo)

	store, closeStore, err := newRateLimitStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize rate limit store")
	}
	defer closeStore()

	limiter, err := ratelimit.New(store, cfg.RateLimitRequests, cfg.RateLimitWindow)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create rate limiter")
	}
	rateLimiter := middleware.NewRateLimiter(limiter, middleware.ClientIP)

	handler := routes.NewRouter(postService, rateLimiter, routes.RouterOptions{
		Logger:            logger,
		AllowedOrigins:    cfg.AllowedOrigins,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.Addr()).
			Int("rate_limit", cfg.RateLimitRequests).
			Dur("rate_window", cfg.RateLimitWindow).
			Str("rate_storage", cfg.RateLimitStorage).
			Msg("masterblog API starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if cfg.LogFormat == config.LogFormatConsole {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// newRateLimitStore picks the counter backend. The returned func releases it.
func newRateLimitStore(ctx context.Context, cfg *config.Config) (ratelimit.Store, func(), error) {
	if cfg.RateLimitStorage == ratelimit.StorageRedis {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return ratelimit.NewRedisStore(client), func() { _ = client.Close() }, nil
	}

	store := ratelimit.NewMemoryStore()
	store.StartCleanup(cfg.RateLimitWindow)
	return store, func() { _ = store.Close() }, nil
}
