package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/order-service/component"
)

// Component wraps an already-built Client with lifecycle management.
// The client is constructed eagerly so configuration errors surface before
// any component starts.
type Component struct {
	client *Client
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent wraps c for registration with a component.Registry.
func NewComponent(c *Client) *Component {
	return &Component{client: c}
}

// Name returns the component name.
func (c *Component) Name() string {
	return "httpclient:" + c.client.Name()
}

// Start is a no-op; connections are dialed on first use.
func (c *Component) Start(_ context.Context) error {
	return nil
}

// Stop releases idle keep-alive connections.
func (c *Component) Stop(_ context.Context) error {
	c.client.CloseIdleConnections()
	return nil
}

// Health reports healthy. Remote availability is observed per call, not probed.
func (c *Component) Health(_ context.Context) component.Health {
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns component description for the startup log.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.client.Name(),
		Type:    "http-client",
		Details: fmt.Sprintf("%s %s", c.client.BaseURL(), c.client.Timeouts()),
	}
}

// Client returns the wrapped client.
func (c *Component) Client() *Client {
	return c.client
}
