// Package server provides the HTTP server of the order service: Gin served
// over HTTP/1.1 and h2c, a net/http middleware chain around the engine, and
// the /health, /info and /version endpoints.
//
// # Middleware
//
// Built-in middleware (server/middleware), outermost first:
//
//   - Recovery: panic recovery with an INTERNAL_ERROR body
//   - RequestID: X-Request-Id generation and propagation into log context
//   - Tracing: one OpenTelemetry server span per request
//   - BodySizeLimit: request body size limit
//   - RequestLogger: request logging with status and duration
//   - Metrics: request count and duration instruments (optional)
//
// Handlers report failures with RespondWithError, which renders
// *errors.AppError values with their HTTP status.
package server
