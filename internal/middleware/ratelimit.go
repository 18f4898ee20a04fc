package middleware

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shearbook/shearbook/internal/ratelimit"
)

// RateLimit enforces a per-client sliding-window limit on the wrapped
// handler. Keys are derived from the remote address, so one chatty client
// cannot starve the assistant for everyone else. Limiter errors other than
// ErrLimitExceeded fail open.
func RateLimit(limiter ratelimit.Limiter, limit int, window time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		if limiter == nil || limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			result, err := limiter.Check(r.Context(), key, limit, window)
			if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
				log.Warn("rate limiter error", slog.String("key", key), slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if result != nil && !result.Allowed {
				log.Warn("rate limit exceeded", slog.String("key", key))
				http.Error(w, "too many requests, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
