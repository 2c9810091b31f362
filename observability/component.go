package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/order-service/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component installs the OTLP tracer and meter providers on Start and
// flushes them on Stop. A disabled config makes both no-ops.
type Component struct {
	cfg         Config
	serviceName string
	version     string
	environment string

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

// NewComponent creates the telemetry component.
func NewComponent(cfg Config, serviceName, version, environment string) *Component {
	return &Component{
		cfg:         cfg,
		serviceName: serviceName,
		version:     version,
		environment: environment,
	}
}

// Name returns the component name.
func (c *Component) Name() string { return "telemetry" }

// Start initializes exporters when enabled.
func (c *Component) Start(ctx context.Context) error {
	if !c.cfg.Enabled {
		return nil
	}
	res, err := newResource(c.serviceName, c.version, c.environment)
	if err != nil {
		return fmt.Errorf("creating resource: %w", err)
	}
	tp, err := InitTracer(ctx, c.cfg, res)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, c.cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	c.tp, c.mp = tp, mp
	return nil
}

// Stop flushes and shuts down the providers.
func (c *Component) Stop(ctx context.Context) error {
	var errs []error
	if c.tp != nil {
		if err := c.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if c.mp != nil {
		if err := c.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Health reports healthy; export failures are retried by the SDK and
// never block the service.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the component description for the startup log.
func (c *Component) Describe() component.Description {
	details := "disabled"
	if c.cfg.Enabled {
		details = fmt.Sprintf("otlp http://%s sample=%.2f", c.cfg.Endpoint, c.cfg.Sampling())
	}
	return component.Description{Name: "OpenTelemetry", Type: "telemetry", Details: details}
}
