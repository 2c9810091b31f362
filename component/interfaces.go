package component

import "context"

// HealthStatus is the health state reported by a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's entry in the /health response.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a long-lived part of the process (HTTP server, outbound
// client, telemetry) started once at boot and stopped at shutdown.
type Component interface {
	// Name must be unique within a Registry.
	Name() string
	Start(ctx context.Context) error
	// Stop releases resources; ctx carries the shutdown deadline.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is what a component reports about itself in the startup log.
type Description struct {
	// Name is a display name; the registry falls back to Component.Name.
	Name string
	// Type is a category such as "server", "http-client" or "telemetry".
	Type string
	// Details is a one-line summary, e.g. "http://inventory:8082 connect=3s response=3s".
	Details string
}

// Describable is implemented by components that describe themselves.
type Describable interface {
	Describe() Description
}
