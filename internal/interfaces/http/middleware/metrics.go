package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/admet-prioritizer/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request count, latency and in-flight requests.  The path
// label is the matched route pattern so that run ids do not explode label
// cardinality.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			active := m.HTTPActiveRequests.WithLabelValues(r.Method)
			active.Inc()
			defer active.Dec()

			wrapped := newWrappedResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			m.RecordHTTPRequest(r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

//Personal.AI order the ending
