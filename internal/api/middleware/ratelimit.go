package middleware

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"Masterblog/internal/api/handlers"
	"Masterblog/internal/core/ratelimit"
)

// KeyFunc derives the client identity used to bucket rate-limit counts
type KeyFunc func(r *http.Request) string

// RateLimiter gates handlers behind a ratelimit.Limiter
type RateLimiter struct {
	limiter *ratelimit.Limiter
	keyFunc KeyFunc
	now     func() time.Time
}

// NewRateLimiter creates a rate-limit guard. A nil keyFunc defaults to ClientIP.
func NewRateLimiter(limiter *ratelimit.Limiter, keyFunc KeyFunc) *RateLimiter {
	if keyFunc == nil {
		keyFunc = ClientIP
	}
	return &RateLimiter{
		limiter: limiter,
		keyFunc: keyFunc,
		now:     time.Now,
	}
}

// Middleware returns a rate limiting middleware.
// Rejected requests never reach next.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := rl.keyFunc(r)

		res, err := rl.limiter.Check(r.Context(), clientID)
		if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
			log.Error().Err(err).Str("client", clientID).Msg("rate limit check failed")
			handlers.WriteError(w, http.StatusServiceUnavailable, "RateLimiterUnavailable",
				"Rate limiting is temporarily unavailable. Please try again later.")
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if err != nil {
			retry := res.RetryAfter(rl.now())
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			log.Warn().Str("client", clientID).Str("path", r.URL.Path).Msg("rate limit exceeded")
			handlers.WriteError(w, http.StatusTooManyRequests, "RateLimitExceeded",
				"Rate limit exceeded. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClientIP returns the host part of RemoteAddr.
// Proxy headers are only honored when chi's RealIP middleware runs first.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
