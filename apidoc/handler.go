package apidoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.yaml.in/yaml/v3"
)

// Documentation routes, compatible with springdoc defaults.
const (
	PathJSON         = "/v3/api-docs"
	PathYAML         = "/v3/api-docs.yaml"
	PathSwaggerUI    = "/swagger-ui/index.html"
	PathSwaggerShort = "/swagger-ui.html"
)

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui" data-spec-url="{{.SpecURL}}"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    const el = document.getElementById("swagger-ui");
    window.ui = SwaggerUIBundle({ url: el.dataset.specUrl, dom_id: "#swagger-ui" });
  </script>
</body>
</html>
`))

// Rendered holds the serialized forms of a Document.
type Rendered struct {
	JSON []byte
	YAML []byte
	HTML []byte
}

// Render serializes doc once. The result is immutable and served as-is.
func Render(doc *Document) (*Rendered, error) {
	jsonBody, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render openapi json: %w", err)
	}
	yamlBody, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render openapi yaml: %w", err)
	}
	var page bytes.Buffer
	if err := swaggerPage.Execute(&page, struct{ Title, SpecURL string }{doc.Info.Title, PathJSON}); err != nil {
		return nil, fmt.Errorf("render swagger ui: %w", err)
	}
	return &Rendered{JSON: jsonBody, YAML: yamlBody, HTML: page.Bytes()}, nil
}

// Register renders doc and mounts the documentation routes on router.
func Register(router gin.IRoutes, doc *Document) error {
	r, err := Render(doc)
	if err != nil {
		return err
	}

	router.GET(PathJSON, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", r.JSON)
	})
	router.GET(PathYAML, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", r.YAML)
	})
	router.GET(PathSwaggerUI, func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", r.HTML)
	})
	router.GET(PathSwaggerShort, func(c *gin.Context) {
		c.Redirect(http.StatusFound, PathSwaggerUI)
	})
	return nil
}
