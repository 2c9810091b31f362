package main

import (
	"fmt"

	"github.com/kbukum/order-service/apidoc"
	"github.com/kbukum/order-service/config"
	"github.com/kbukum/order-service/httpclient"
	"github.com/kbukum/order-service/observability"
	"github.com/kbukum/order-service/server"
)

// InventoryConfig locates the inventory service and bounds calls to it.
// Timeouts are in milliseconds.
type InventoryConfig struct {
	URL             string `yaml:"url" mapstructure:"url"`
	ConnectTimeout  int    `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	ResponseTimeout int    `yaml:"response_timeout" mapstructure:"response_timeout"`
}

// Policy converts the configured milliseconds into a timeout policy.
func (c InventoryConfig) Policy() httpclient.TimeoutPolicy {
	return httpclient.NewTimeoutPolicy(c.ConnectTimeout, c.ResponseTimeout)
}

// AppConfig is the full configuration of the order service.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Inventory     InventoryConfig      `yaml:"inventory" mapstructure:"inventory"`
	Docs          apidoc.DocsConfig    `yaml:"docs" mapstructure:"docs"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills unset fields in every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Inventory.ConnectTimeout == 0 {
		c.Inventory.ConnectTimeout = int(httpclient.DefaultConnectTimeout.Milliseconds())
	}
	if c.Inventory.ResponseTimeout == 0 {
		c.Inventory.ResponseTimeout = int(httpclient.DefaultResponseTimeout.Milliseconds())
	}
}

// Validate checks every section. The inventory URL and timeouts are
// validated again by inventory.NewClient, which reports them as
// configuration errors.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if c.Inventory.URL == "" {
		return fmt.Errorf("inventory.url is required")
	}
	if err := c.Docs.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
