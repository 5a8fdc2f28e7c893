package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/heliobs/magpie/internal/metrics"
)

// Metrics records request counts and latencies per endpoint. The
// endpoint label is fixed at registration time so path parameters do
// not blow up the label cardinality.
func Metrics(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			status := strconv.Itoa(wrapped.statusCode)
			metrics.RecordHTTPRequest(endpoint, r.Method, status)
			metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, time.Since(start).Seconds())
		})
	}
}
