// Package observability wires OpenTelemetry tracing and metrics for the
// order service.
//
// When enabled, Component installs global tracer and meter providers that
// export over OTLP/HTTP and flushes them on shutdown. When disabled the
// global no-op providers stay in place, so instrumented code (the HTTP
// client, the request middleware) runs unchanged.
//
//	comp := observability.NewComponent(cfg, "order-service", "v0.0.1", "production")
//	app.RegisterComponent(comp)
//
//	metrics, err := observability.NewClientMetrics(observability.Meter("httpclient"))
//	metrics.RecordCall(ctx, "inventory", "GET", "ok", elapsed)
package observability
