package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/order-service/logger"
)

// RequestLogger logs one line per request: debug for success, warn for 4xx,
// error for 5xx. Health, info, version and docs paths are not logged.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isQuietPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := record(w)
			next.ServeHTTP(rec, r)

			fields := logger.Fields(
				logger.FieldMethod, r.Method,
				"path", r.URL.Path,
				logger.FieldStatus, rec.status,
				"bytes", rec.bytes,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			logByStatus(log.WithContext(r.Context()), fields, rec.status)
		})
	}
}

func isQuietPath(path string) bool {
	switch path {
	case "/health", "/info", "/version":
		return true
	}
	return strings.HasPrefix(path, "/swagger-ui") || strings.HasPrefix(path, "/v3/api-docs")
}

func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
