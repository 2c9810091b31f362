// Package component defines the lifecycle contract for the long-lived
// values the order service builds at startup: the HTTP server, the
// telemetry exporters and the outbound service clients.
//
// Components are constructed eagerly by main, registered with a Registry in
// dependency order, started in that order and stopped in reverse.
package component
