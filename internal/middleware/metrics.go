package middleware

import (
	"net/http"
	"strconv"

	"github.com/shearbook/shearbook/pkg/metrics"
)

// Metrics counts handled HTTP requests, reporting them to Prometheus.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		metrics.RecordHTTPRequest(r.URL.Path, strconv.Itoa(status))
	})
}
