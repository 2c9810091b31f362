// Package apidoc publishes the service's OpenAPI description.
//
// BuildMetadata returns the fixed API metadata (title, description,
// version, license, external docs). NewDocument turns it into an OpenAPI
// 3.0.3 document and Register serves that document, rendered once at
// startup, as JSON on /v3/api-docs, as YAML on /v3/api-docs.yaml, and
// through Swagger UI on /swagger-ui/index.html.
package apidoc
