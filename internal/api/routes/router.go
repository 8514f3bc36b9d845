package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/api/middleware"
	"Masterblog/internal/core/posts"
)

// RouterOptions configures the outer HTTP plumbing
type RouterOptions struct {
	Logger            zerolog.Logger
	AllowedOrigins    []string
	TrustProxyHeaders bool
}

// NewRouter builds the full HTTP handler: common middleware, CORS,
// JSON fallbacks for unknown routes and methods, and the post endpoints.
func NewRouter(service posts.Service, rateLimiter *middleware.RateLimiter, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if opts.TrustProxyHeaders {
		// Rewrites RemoteAddr from X-Forwarded-For / X-Real-IP before the limiter keys on it
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(opts.AllowedOrigins))

	// Fallbacks must be set before routes are registered so inline routers inherit them
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	RegisterPostRoutes(r, service, rateLimiter)

	return r
}

// corsMiddleware adds cross-origin headers to every response
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	})
}
