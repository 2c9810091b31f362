package httpclient

import (
	"fmt"
	"net/url"
	"time"

	apperrors "github.com/kbukum/order-service/errors"
)

const (
	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 3000 * time.Millisecond
	// DefaultResponseTimeout bounds the wait for response headers once connected.
	DefaultResponseTimeout = 3000 * time.Millisecond

	defaultMaxIdleConnsPerHost = 16
)

// TimeoutPolicy holds the two timeouts applied to every call.
type TimeoutPolicy struct {
	// Connect bounds TCP connection establishment and the TLS handshake.
	Connect time.Duration `yaml:"connect" mapstructure:"connect"`
	// Response bounds the wait for the response after the request is sent.
	Response time.Duration `yaml:"response" mapstructure:"response"`
}

// DefaultTimeoutPolicy returns 3000ms for both timeouts.
func DefaultTimeoutPolicy() TimeoutPolicy {
	return TimeoutPolicy{Connect: DefaultConnectTimeout, Response: DefaultResponseTimeout}
}

// NewTimeoutPolicy builds a policy from millisecond values. It does not
// validate; New rejects non-positive values.
func NewTimeoutPolicy(connectMs, responseMs int) TimeoutPolicy {
	return TimeoutPolicy{
		Connect:  time.Duration(connectMs) * time.Millisecond,
		Response: time.Duration(responseMs) * time.Millisecond,
	}
}

// Validate returns a configuration error when either timeout is not positive.
func (p TimeoutPolicy) Validate() error {
	if p.Connect <= 0 {
		return apperrors.Configuration("connect_timeout", fmt.Sprintf("must be positive (got: %s)", p.Connect))
	}
	if p.Response <= 0 {
		return apperrors.Configuration("response_timeout", fmt.Sprintf("must be positive (got: %s)", p.Response))
	}
	return nil
}

// Total is the worst-case time a single call may block.
func (p TimeoutPolicy) Total() time.Duration {
	return p.Connect + p.Response
}

// String renders the policy for logs.
func (p TimeoutPolicy) String() string {
	return fmt.Sprintf("connect=%s response=%s", p.Connect, p.Response)
}

// Config configures the HTTP client.
type Config struct {
	// Name identifies the remote service in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the absolute http(s) URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeouts are applied to every call. Zero values are rejected, not
	// defaulted.
	Timeouts TimeoutPolicy `yaml:"timeouts" mapstructure:"timeouts"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// MaxIdleConnsPerHost sizes the keep-alive pool. Defaults to 16.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
}

// ApplyDefaults fills in zero-value fields that have safe defaults.
// Timeouts are deliberately left alone.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = defaultMaxIdleConnsPerHost
	}
}

// Validate checks the base URL and timeouts. Every failure is an
// *errors.AppError with code CONFIGURATION_ERROR.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return apperrors.Configuration("base_url", "is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return apperrors.Configuration("base_url", err.Error()).WithCause(err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.Configuration("base_url", fmt.Sprintf("scheme must be http or https (got: %q)", u.Scheme))
	}
	if u.Host == "" {
		return apperrors.Configuration("base_url", "host is required")
	}
	return c.Timeouts.Validate()
}
