package httpclient

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestOption configures a single typed request.
type RequestOption func(*Request)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// WithHeaders adds headers to the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// TypedResponse is a response whose JSON body was decoded into T.
type TypedResponse[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the decoded response body.
	Data T
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*TypedResponse[T], error) {
	return do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and decodes the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	return do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// do executes a request and decodes the JSON response. An empty or
// undecodable 2xx body is a CauseProtocol failure; only 204 No Content may
// carry no body, and then Data is the zero value.
func do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*TypedResponse[T], error) {
	req := Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var data T
	switch {
	case resp.StatusCode == http.StatusNoContent:
	case len(bytes.TrimSpace(resp.Body)) == 0:
		return nil, protocolError(c, method, path, resp, errors.New("empty response body"))
	default:
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, protocolError(c, method, path, resp, fmt.Errorf("decode response: %w", err))
		}
	}

	return &TypedResponse[T]{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Data:       data,
	}, nil
}

func protocolError(c *Client, method, path string, resp *Response, err error) *Error {
	return &Error{
		Method:     method,
		URL:        c.BaseURL() + path,
		StatusCode: resp.StatusCode,
		Cause:      CauseProtocol,
		Elapsed:    resp.Elapsed,
		Body:       resp.Body,
		Err:        err,
	}
}
