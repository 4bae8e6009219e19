package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit applies a global per-IP limit. The device scan endpoint shares
// this budget, so the window should stay generous enough for a classroom
// full of back-to-back card taps.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		requests = 500
	}
	if window <= 0 {
		window = 15 * time.Minute
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success": false, "message": "Too many requests from this IP, try again later"}`))
		}),
	)
}
