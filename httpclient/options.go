package httpclient

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/order-service/logger"
)

// Option configures optional collaborators of a Client.
type Option func(*options)

type options struct {
	log    *logger.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// WithLogger sets the logger used for call outcomes.
// Defaults to the global logger tagged with the client name.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer sets the tracer used for client spans.
// Defaults to the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithMeter sets the meter used for call metrics.
// Defaults to the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}
