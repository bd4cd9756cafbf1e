package api

import (
	"net/http"

	"golang.org/x/time/rate"
)

// rateLimiter is the minimal surface the middleware needs; tests substitute a
// static implementation.
type rateLimiter interface {
	Allow() bool
}

type tokenBucketLimiter struct {
	bucket *rate.Limiter
}

// newTokenBucketLimiter builds a rate.Limiter-backed limiter. Plan computation
// is CPU-bound, so the bucket guards the whole API rather than per client.
// Non-positive inputs fall back to a minimal working limiter.
func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &tokenBucketLimiter{
		bucket: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (l *tokenBucketLimiter) Allow() bool {
	if l == nil || l.bucket == nil {
		return true
	}
	return l.bucket.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
