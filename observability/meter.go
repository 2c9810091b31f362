package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/order-service/logger"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.MetricInterval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ClientMetrics holds instruments for outbound HTTP calls.
type ClientMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	inflight metric.Int64UpDownCounter
}

// NewClientMetrics creates outbound call instruments on the given meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	calls, err := meter.Int64Counter("http.client.calls",
		metric.WithDescription("Outbound HTTP calls by client, method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.client.calls counter: %w", err)
	}

	duration, err := meter.Float64Histogram("http.client.duration",
		metric.WithDescription("Duration of outbound HTTP calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.client.duration histogram: %w", err)
	}

	inflight, err := meter.Int64UpDownCounter("http.client.active",
		metric.WithDescription("Outbound HTTP calls currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.client.active gauge: %w", err)
	}

	return &ClientMetrics{calls: calls, duration: duration, inflight: inflight}, nil
}

// RecordStart marks an outbound call as in flight.
func (m *ClientMetrics) RecordStart(ctx context.Context, client string) {
	m.inflight.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrClientName, client)))
}

// RecordCall records a completed outbound call. Outcome is "ok" or the
// failure cause tag.
func (m *ClientMetrics) RecordCall(ctx context.Context, client, method, outcome string, d time.Duration) {
	m.inflight.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrClientName, client)))
	attrs := metric.WithAttributes(
		attribute.String(AttrClientName, client),
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrOutcome, outcome),
	)
	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}

// RequestMetrics holds instruments for inbound HTTP requests.
type RequestMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRequestMetrics creates inbound request instruments on the given meter.
func NewRequestMetrics(meter metric.Meter) (*RequestMetrics, error) {
	total, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Inbound HTTP requests by route and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.requests counter: %w", err)
	}
	duration, err := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("Duration of inbound HTTP requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating http.server.duration histogram: %w", err)
	}
	return &RequestMetrics{total: total, duration: duration}, nil
}

// RecordRequest records a completed inbound request.
func (m *RequestMetrics) RecordRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
		attribute.Int(AttrHTTPStatus, status),
	)
	m.total.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
