package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/order-service/observability"
)

// unmatchedRoute labels requests that matched no route, so probes of
// arbitrary paths do not create new metric series.
const unmatchedRoute = "unmatched"

// Metrics records inbound request count and duration per route and status.
func Metrics(m *observability.RequestMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if rec.status == http.StatusNotFound || rec.status == http.StatusMethodNotAllowed {
				route = unmatchedRoute
			}
			m.RecordRequest(r.Context(), r.Method, route, rec.status, time.Since(start))
		})
	}
}
