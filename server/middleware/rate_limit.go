// Package middleware provides HTTP middleware for the presence API.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter provides per-client rate limiting functionality.
type RateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// NewRateLimiter creates a rate limiter allowing rps requests per second per
// client with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		limit:  rate.Limit(rps),
		burst:  burst,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware returns an echo middleware that limits requests per client IP.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}

// Prune drops limiters that have been idle long enough to refill completely.
// Callers may run it periodically to bound memory on long-lived servers.
func (rl *RateLimiter) Prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, limiter := range rl.limits {
		if limiter.TokensAt(time.Now()) >= float64(rl.burst) {
			delete(rl.limits, key)
		}
	}
}
