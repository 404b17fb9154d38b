package providers

import (
	"net/http"
	"strings"
	"time"
)

// statusRecorder captures the code a handler writes. It starts at 200
// because handlers that never call WriteHeader send that implicitly, and
// only the first explicit write counts.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wrote {
		w.status = code
		w.wrote = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware wraps the API mux with per-request instrumentation:
// one counter increment and one duration observation, labeled by the
// normalized route path. The route table uses fixed paths, so the path
// itself is a bounded label set.
func MetricsMiddleware(metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		endpoint := strings.TrimSuffix(r.URL.Path, "/")
		if endpoint == "" {
			endpoint = "/"
		}
		metrics.IncRequestsTotal(endpoint, rec.status)
		metrics.ObserveRequestDuration(endpoint, time.Since(start))
	})
}
