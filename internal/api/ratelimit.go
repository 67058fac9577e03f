// internal/api/ratelimit.go
package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "infraiq-workers/internal/common/errors"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/metrics"
)

// CounterStore counts hits per key inside a fixed window.
type CounterStore interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter is a fixed-window limiter keyed by client IP. When the store
// is unreachable requests are let through.
type RateLimiter struct {
	store  CounterStore
	limit  int64
	window time.Duration
	prefix string
	logger logger.Logger
}

func NewRateLimiter(store CounterStore, limit int, window time.Duration, prefix string, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  int64(limit),
		window: window,
		prefix: prefix,
		logger: log,
	}
}

// Allow records one hit for client and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, client string) (allowed bool, remaining int64, err error) {
	bucket := time.Now().UnixMilli() / rl.window.Milliseconds()
	key := rl.prefix + ":" + client + ":" + strconv.FormatInt(bucket, 10)

	count, err := rl.store.IncrWindow(ctx, key, rl.window)
	if err != nil {
		return true, rl.limit, err
	}
	remaining = rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, nil
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)

		allowed, remaining, err := rl.Allow(r.Context(), client)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable, allowing request", map[string]interface{}{
				"error":  apperrors.NewRateLimiterUnavailableError(err).Details,
				"client": client,
			})
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.limit, 10))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			metrics.RateLimitedRequests.Inc()
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, apperrors.NewRateLimitedError(client, rl.limit))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
