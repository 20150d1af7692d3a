package api

import (
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/ratelimit"
)

// RateLimiter limits request rates per client key.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a rate limiter allowing ratePerInterval requests per
// interval with the given burst size.
func NewRateLimiter(ratePerInterval int, interval time.Duration, burst int) *RateLimiter {
	rps := float64(ratePerInterval) / interval.Seconds()
	return ratelimit.New(rps, burst)
}

// checkAuthRateLimit enforces the per-IP limit on the auth endpoints. An
// empty IP (direct local calls, tests) shares one bucket.
func (s *Server) checkAuthRateLimit(ip string) error {
	key := ip
	if key == "" {
		key = "local"
	}
	if !s.authRateLimiter.Allow(key) {
		s.logger.Warn("rate limit exceeded", "ip", key)
		return &APIError{
			status:  429,
			Code:    "RATE_LIMITED",
			Message: "Too many requests. Please try again later.",
		}
	}
	return nil
}
