package apidoc

import (
	"github.com/kbukum/order-service/validation"
)

// DocsConfig controls the documentation endpoint.
type DocsConfig struct {
	// Enabled registers the /v3/api-docs and /swagger-ui routes.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Title overrides the published API title.
	Title string `yaml:"title" mapstructure:"title"`
	// Version overrides the published API version.
	Version string `yaml:"version" mapstructure:"version"`
	// ExternalDocsURL overrides the project documentation link.
	ExternalDocsURL string `yaml:"external_docs_url" mapstructure:"external_docs_url" validate:"omitempty,http_url"`
	// ServerURL is advertised in the document's servers list when set.
	ServerURL string `yaml:"server_url" mapstructure:"server_url" validate:"omitempty,http_url"`
}

// Validate checks that configured URLs are absolute http(s) URLs.
func (c *DocsConfig) Validate() error {
	return validation.Validate(c)
}
