package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	apperrors "github.com/kbukum/order-service/errors"
)

// Cause classifies why a remote call failed.
type Cause string

const (
	// CauseConnectTimeout means no connection was established within the
	// connect timeout.
	CauseConnectTimeout Cause = "connect_timeout"
	// CauseResponseTimeout means the connection was established but the
	// response did not arrive within the response timeout.
	CauseResponseTimeout Cause = "response_timeout"
	// CauseConnectionRefused means the remote host actively refused the connection.
	CauseConnectionRefused Cause = "connection_refused"
	// CauseConnection covers other connection failures (DNS, reset, unreachable).
	CauseConnection Cause = "connection"
	// CauseProtocol means the exchange failed after connecting for a reason
	// other than a timeout, or the body could not be decoded.
	CauseProtocol Cause = "protocol"
	// CauseStatus means the remote answered with a non-2xx status.
	CauseStatus Cause = "status"
	// CauseCanceled means the caller ended the call, by cancellation or by
	// its own context deadline, before the client's timeouts fired.
	CauseCanceled Cause = "canceled"
)

// IsTimeout reports whether the cause is one of the two timeouts.
func (c Cause) IsTimeout() bool {
	return c == CauseConnectTimeout || c == CauseResponseTimeout
}

// Error is the failure of a single remote call.
type Error struct {
	// Method and URL identify the call.
	Method string
	URL    string
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	// Cause classifies the failure.
	Cause Cause
	// Elapsed is the time from sending the request to the failure.
	Elapsed time.Duration
	// Body is the response body for status failures (may be nil).
	Body []byte
	// Err is the underlying transport or decode error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s %s: %s (HTTP %d) after %s",
			e.Method, e.URL, e.Cause, e.StatusCode, e.Elapsed.Round(time.Millisecond))
	}
	if e.Err != nil {
		return fmt.Sprintf("httpclient: %s %s: %s after %s: %v",
			e.Method, e.URL, e.Cause, e.Elapsed.Round(time.Millisecond), e.Err)
	}
	return fmt.Sprintf("httpclient: %s %s: %s after %s",
		e.Method, e.URL, e.Cause, e.Elapsed.Round(time.Millisecond))
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps a transport error to a cause. connected reports whether a
// connection was obtained before the failure.
func classify(ctx context.Context, err error, connected bool) Cause {
	if ctx.Err() != nil {
		return CauseCanceled
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		if connected {
			return CauseResponseTimeout
		}
		return CauseConnectTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return CauseConnectionRefused
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return CauseConnection
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CauseConnection
	}

	if connected {
		return CauseProtocol
	}
	return CauseConnection
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

func causeOf(err error) (Cause, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause, true
	}
	return "", false
}

// IsTimeout checks if an error is a connect or response timeout.
func IsTimeout(err error) bool {
	c, ok := causeOf(err)
	return ok && c.IsTimeout()
}

// IsConnectTimeout checks if an error is a connect timeout.
func IsConnectTimeout(err error) bool {
	c, ok := causeOf(err)
	return ok && c == CauseConnectTimeout
}

// IsResponseTimeout checks if an error is a response timeout.
func IsResponseTimeout(err error) bool {
	c, ok := causeOf(err)
	return ok && c == CauseResponseTimeout
}

// IsConnectionRefused checks if the remote refused the connection.
func IsConnectionRefused(err error) bool {
	c, ok := causeOf(err)
	return ok && c == CauseConnectionRefused
}

// IsConnection checks if an error is any connection-level failure,
// including refusals.
func IsConnection(err error) bool {
	c, ok := causeOf(err)
	return ok && (c == CauseConnection || c == CauseConnectionRefused)
}

// IsStatus checks if an error is a non-2xx response.
func IsStatus(err error) bool {
	c, ok := causeOf(err)
	return ok && c == CauseStatus
}

// IsNotFound checks if an error is a 404 response.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Cause == CauseStatus && e.StatusCode == http.StatusNotFound
}

// IsServerError checks if an error is a 5xx response.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Cause == CauseStatus && e.StatusCode >= http.StatusInternalServerError
}

// IsCanceled checks if the caller canceled the call.
func IsCanceled(err error) bool {
	c, ok := causeOf(err)
	return ok && c == CauseCanceled
}

// IsConfigurationError checks if an error came from client construction.
func IsConfigurationError(err error) bool {
	return apperrors.IsCode(err, apperrors.ErrCodeConfiguration)
}
