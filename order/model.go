package order

// PlaceOrderRequest is the body of POST /api/order.
type PlaceOrderRequest struct {
	SkuCode  string  `json:"skuCode" validate:"required"`
	Price    float64 `json:"price" validate:"gt=0"`
	Quantity int     `json:"quantity" validate:"gt=0"`
}

// Order is an accepted order.
type Order struct {
	OrderNumber string  `json:"orderNumber"`
	SkuCode     string  `json:"skuCode"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}
