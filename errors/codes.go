package errors

import "net/http"

// ErrorCode is a machine-readable error code carried in responses.
type ErrorCode string

const (
	ErrCodeInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeConflict         ErrorCode = "CONFLICT"

	// Downstream failures, as seen by a caller of another service.
	ErrCodeTimeout          ErrorCode = "TIMEOUT"
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeExternalService  ErrorCode = "EXTERNAL_SERVICE_ERROR"

	// ErrCodeConfiguration marks invalid settings found while building a
	// long-lived component. It is fatal to startup.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codeTable = map[ErrorCode]codeInfo{
	ErrCodeInvalidInput:     {http.StatusBadRequest, false},
	ErrCodeNotFound:         {http.StatusNotFound, false},
	ErrCodeMethodNotAllowed: {http.StatusMethodNotAllowed, false},
	ErrCodeConflict:         {http.StatusConflict, false},
	ErrCodeTimeout:          {http.StatusGatewayTimeout, true},
	ErrCodeConnectionFailed: {http.StatusServiceUnavailable, true},
	ErrCodeExternalService:  {http.StatusBadGateway, true},
	ErrCodeConfiguration:    {http.StatusInternalServerError, false},
	ErrCodeInternal:         {http.StatusInternalServerError, false},
}

// StatusOf returns the HTTP status for code; unknown codes map to 500.
func StatusOf(code ErrorCode) int {
	if info, ok := codeTable[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsRetryableCode reports whether a caller may repeat the failed operation.
// Nothing in this service retries; the flag is only reported.
func IsRetryableCode(code ErrorCode) bool {
	return codeTable[code].retryable
}
