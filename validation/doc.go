// Package validation provides input validation for the order service.
//
// Struct tag validation (go-playground/validator) covers request payloads
// and configuration structs; the programmatic Validator covers call
// arguments that never live in a struct.
//
// # Struct Tag Validation
//
//	type PlaceOrderRequest struct {
//	    SkuCode  string `json:"skuCode" validate:"required"`
//	    Quantity int    `json:"quantity" validate:"gt=0"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    Required("skuCode", sku).
//	    Min("quantity", qty, 1).
//	    Validate()
package validation
