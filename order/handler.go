package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/order-service/apidoc"
	apperrors "github.com/kbukum/order-service/errors"
	"github.com/kbukum/order-service/server"
)

// Path is the order placement route.
const Path = "/api/order"

// Handler exposes Service over HTTP.
type Handler struct {
	svc *Service
}

// NewHandler creates an order handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the order routes.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST(Path, h.placeOrder)
}

func (h *Handler) placeOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("request body must be a JSON order").WithCause(err))
		return
	}

	o, err := h.svc.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, o)
}

// DocOptions describes the order routes for the OpenAPI document.
func DocOptions() []apidoc.Option {
	zero, one := 0.0, 1.0
	errorBody := apidoc.JSONContent(&apidoc.Schema{Type: "object", Description: "Error envelope"})
	return []apidoc.Option{
		apidoc.WithTag("orders", "Order placement"),
		apidoc.WithOperation(Path, http.MethodPost, apidoc.Operation{
			Tags:        []string{"orders"},
			Summary:     "Place an order",
			Description: "Checks stock with the inventory service and acknowledges the order.",
			OperationID: "placeOrder",
			RequestBody: &apidoc.RequestBody{
				Required: true,
				Content: apidoc.JSONContent(&apidoc.Schema{
					Type:     "object",
					Required: []string{"skuCode", "price", "quantity"},
					Properties: map[string]*apidoc.Schema{
						"skuCode":  {Type: "string", Example: "iphone_15"},
						"price":    {Type: "number", Format: "double", Minimum: &zero, ExclusiveMinimum: true},
						"quantity": {Type: "integer", Format: "int32", Minimum: &one},
					},
				}),
			},
			Responses: map[string]apidoc.Response{
				"201": {Description: "Order placed", Content: apidoc.JSONContent(&apidoc.Schema{
					Type: "object",
					Properties: map[string]*apidoc.Schema{
						"data": {Type: "object", Properties: map[string]*apidoc.Schema{
							"orderNumber": {Type: "string", Format: "uuid"},
							"skuCode":     {Type: "string"},
							"price":       {Type: "number", Format: "double"},
							"quantity":    {Type: "integer", Format: "int32"},
						}},
					},
				})},
				"400": {Description: "Invalid request", Content: errorBody},
				"409": {Description: "Product out of stock", Content: errorBody},
				"502": {Description: "Inventory service error", Content: errorBody},
				"503": {Description: "Inventory service unreachable", Content: errorBody},
				"504": {Description: "Inventory service timed out", Content: errorBody},
			},
		}),
	}
}
