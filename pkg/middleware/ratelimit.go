package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit creates a middleware that rejects requests with 429 once the
// shared limiter is exhausted. Simulation runs are CPU-bound, so the service
// caps how fast they can be triggered.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
