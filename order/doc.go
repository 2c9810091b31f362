// Package order places orders after checking stock with the inventory
// service. Inventory failures are mapped to TIMEOUT (504),
// CONNECTION_FAILED (503) or EXTERNAL_SERVICE_ERROR (502); an
// out-of-stock product is a CONFLICT (409).
package order
