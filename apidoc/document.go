package apidoc

import "strings"

// OpenAPIVersion is the OpenAPI specification version of generated documents.
const OpenAPIVersion = "3.0.3"

// Document is an OpenAPI 3.0 document.
type Document struct {
	OpenAPI      string              `json:"openapi" yaml:"openapi"`
	Info         Info                `json:"info" yaml:"info"`
	ExternalDocs *ExternalDocs       `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
	Servers      []Server            `json:"servers,omitempty" yaml:"servers,omitempty"`
	Tags         []Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Paths        map[string]PathItem `json:"paths" yaml:"paths"`
}

// Info is the document's info object.
type Info struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string   `json:"version" yaml:"version"`
	License     *License `json:"license,omitempty" yaml:"license,omitempty"`
}

// License names the API license.
type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// ExternalDocs links to documentation outside the document.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url"`
}

// Server is a base URL the API is served from.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag groups operations.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem maps lower-case HTTP methods to operations.
type PathItem map[string]Operation

// Operation describes a single API operation on a path.
type Operation struct {
	Tags        []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string              `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses" yaml:"responses"`
}

// Parameter describes a path, query or header parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody describes an operation's request body.
type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]MediaType `json:"content" yaml:"content"`
}

// Response describes a single response of an operation.
type Response struct {
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType holds the schema for one content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema is the subset of JSON Schema used by this service.
type Schema struct {
	Type        string             `json:"type,omitempty" yaml:"type,omitempty"`
	Format      string             `json:"format,omitempty" yaml:"format,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required    []string           `json:"required,omitempty" yaml:"required,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Example     any                `json:"example,omitempty" yaml:"example,omitempty"`

	// ExclusiveMinimum makes Minimum a strict bound (OpenAPI 3.0 boolean form).
	ExclusiveMinimum bool `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
}

// JSONContent wraps a schema as an application/json content map.
func JSONContent(s *Schema) map[string]MediaType {
	return map[string]MediaType{"application/json": {Schema: s}}
}

// Option customizes a Document.
type Option func(*Document)

// WithServer advertises a server URL.
func WithServer(url, description string) Option {
	return func(d *Document) {
		d.Servers = append(d.Servers, Server{URL: url, Description: description})
	}
}

// WithTag declares an operation tag.
func WithTag(name, description string) Option {
	return func(d *Document) {
		d.Tags = append(d.Tags, Tag{Name: name, Description: description})
	}
}

// WithOperation documents op under path and method.
func WithOperation(path, method string, op Operation) Option {
	return func(d *Document) {
		item, ok := d.Paths[path]
		if !ok {
			item = PathItem{}
			d.Paths[path] = item
		}
		item[strings.ToLower(method)] = op
	}
}

// NewDocument builds an OpenAPI document from meta.
func NewDocument(meta Metadata, opts ...Option) *Document {
	d := &Document{
		OpenAPI: OpenAPIVersion,
		Info: Info{
			Title:       meta.Title,
			Description: meta.Description,
			Version:     meta.Version,
		},
		Paths: map[string]PathItem{},
	}
	if meta.LicenseName != "" {
		d.Info.License = &License{Name: meta.LicenseName}
	}
	if meta.ExternalDocsURL != "" {
		d.ExternalDocs = &ExternalDocs{
			Description: meta.ExternalDocsDescription,
			URL:         meta.ExternalDocsURL,
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}
