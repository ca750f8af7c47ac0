package middleware

import (
	"net/http"
	"time"

	"github.com/rosebudapp/rosebud/internal/logging"
)

// RequestLogger returns middleware that logs one line per request with the
// method, path, status and duration.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sr, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}
