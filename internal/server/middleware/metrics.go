package middleware

import (
	"net/http"
	"time"

	"github.com/rosebudapp/rosebud/internal/server/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// Metrics returns middleware recording request count, status code and
// latency for every request passing through it.
func Metrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sr, r)

			rec.RecordRequest(r.Method, sr.status, time.Since(start))
		})
	}
}
