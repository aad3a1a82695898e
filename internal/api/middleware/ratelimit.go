package middleware

import (
	"context"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/taskapi/internal/api/shared"
	"github.com/phrazzld/taskapi/internal/platform/logger"
	"github.com/phrazzld/taskapi/internal/platform/ratelimit"
)

// RateLimiter records a hit for key and reports whether it is within limit.
// *ratelimit.Limiter satisfies it.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.Result, error)
}

// RateLimitMiddleware limits requests per client IP within one named scope.
type RateLimitMiddleware struct {
	limiter RateLimiter
	scope   string
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimitMiddleware creates a limiter allowing limit requests per
// window for each client IP. scope keeps counters of different routes apart.
func NewRateLimitMiddleware(limiter RateLimiter, scope string, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Limit rejects requests over the limit with 429 and rate limit headers.
// If the limiter itself fails the request is let through.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		result, err := m.limiter.Allow(r.Context(), m.scope+":"+ip, m.limit, m.window)
		if err != nil {
			logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
				slog.String("scope", m.scope),
				slog.String("error", err.Error()))
			next.ServeHTTP(w, r)
			return
		}

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.ResetAt.Sub(m.now()).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			h.Set("Retry-After", strconv.Itoa(retryAfter))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, "Too Many Attempts.", nil,
				shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware,
// mounted ahead of this one, has already applied X-Forwarded-For.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
