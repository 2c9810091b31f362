// Package errors provides the AppError type shared by every layer of the
// order service.
//
// Infrastructure packages (httpclient, config) report startup problems as
// CONFIGURATION_ERROR; request handlers translate downstream failures into
// TIMEOUT, CONNECTION_FAILED or EXTERNAL_SERVICE_ERROR and render them with
// ToResponse.
package errors
