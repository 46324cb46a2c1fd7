package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"baseware/internal/response"
)

// KeyFunc extracts the rate limiting key from a request.
type KeyFunc func(*http.Request) string

// Skipper reports whether a request bypasses rate limiting.
type Skipper func(*http.Request) bool

type RateLimiterOption func(*RateLimiter)

func WithSkipper(skipper Skipper) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.skipper = skipper
	}
}

func WithKeyFunc(keyFunc KeyFunc) RateLimiterOption {
	return func(rl *RateLimiter) {
		rl.extractKey = keyFunc
	}
}

// RateLimiter keeps one token bucket per key.
type RateLimiter struct {
	extractKey KeyFunc
	skipper    Skipper
	limit      rate.Limit
	burst      int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// ClientIP is the default key: the remote address without its port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// NewRateLimiter allows limit requests per second per key with the given
// burst. Idle buckets are swept every minute until ctx is done.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, options ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		extractKey: ClientIP,
		skipper:    func(*http.Request) bool { return false },
		limit:      limit,
		burst:      burst,
		limiters:   make(map[string]*rate.Limiter),
	}
	for _, opt := range options {
		opt(rl)
	}
	go rl.cleanup(ctx, time.Minute)
	return rl
}

// cleanup drops buckets that have refilled, i.e. keys that went quiet.
func (rl *RateLimiter) cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, limiter := range rl.limiters {
				if limiter.Tokens() >= float64(rl.burst) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.extractKey(r)
		if !rl.getLimiter(key).Allow() {
			slog.WarnContext(r.Context(), "rate limit exceeded",
				"key", key,
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.SendError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
