package inventory

import (
	"context"
	"strconv"

	"github.com/kbukum/order-service/httpclient"
	"github.com/kbukum/order-service/validation"
)

// ServiceName identifies the inventory service in logs, spans and metrics.
const ServiceName = "inventory"

const stockPath = "/api/inventory"

// Client is the handle for the inventory service. It is built once at
// startup and shared; all methods are safe for concurrent use.
type Client struct {
	http *httpclient.Client
}

// NewClient validates baseURL and policy and builds the handle. Invalid
// input yields a CONFIGURATION_ERROR and a nil client.
func NewClient(baseURL string, policy httpclient.TimeoutPolicy, opts ...httpclient.Option) (*Client, error) {
	c, err := httpclient.New(httpclient.Config{
		Name:     ServiceName,
		BaseURL:  baseURL,
		Timeouts: policy,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// IsInStock asks the inventory service whether quantity units of skuCode
// are available. Arguments are checked before any network I/O.
func (c *Client) IsInStock(ctx context.Context, skuCode string, quantity int) (bool, error) {
	if err := validation.New().
		Required("skuCode", skuCode).
		Min("quantity", quantity, 1).
		Validate(); err != nil {
		return false, err
	}

	resp, err := httpclient.Get[bool](ctx, c.http, stockPath, httpclient.WithQuery(map[string]string{
		"skuCode":  skuCode,
		"quantity": strconv.Itoa(quantity),
	}))
	if err != nil {
		return false, err
	}
	return resp.Data, nil
}

// HTTP returns the underlying client for lifecycle registration.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}
