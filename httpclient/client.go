package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/order-service/logger"
	"github.com/kbukum/order-service/observability"
)

const instrumentationName = "github.com/kbukum/order-service/httpclient"

// Client is an HTTP client bound to one remote service. It is immutable
// after New and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	transport  *http.Transport
	dialer     *net.Dialer
	config     Config
	baseURL    *url.URL

	log     *logger.Logger
	tracer  trace.Tracer
	metrics *observability.ClientMetrics
}

// New validates cfg and creates a client. On any configuration problem it
// returns an *errors.AppError with code CONFIGURATION_ERROR and no client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, _ := url.Parse(cfg.BaseURL)

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.WithComponent("httpclient")
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(instrumentationName)
	}
	if o.meter == nil {
		o.meter = otel.Meter(instrumentationName)
	}

	metrics, err := observability.NewClientMetrics(o.meter)
	if err != nil {
		return nil, fmt.Errorf("httpclient %s: %w", cfg.Name, err)
	}

	dialer := &net.Dialer{
		Timeout:   cfg.Timeouts.Connect,
		KeepAlive: 30 * time.Second,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = cfg.Timeouts.Connect
	transport.ResponseHeaderTimeout = cfg.Timeouts.Response
	transport.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeouts.Total(),
		},
		transport: transport,
		dialer:    dialer,
		config:    cfg,
		baseURL:   base,
		log:       o.log.WithFields(logger.Fields(logger.FieldRemote, cfg.Name)),
		tracer:    o.tracer,
		metrics:   metrics,
	}, nil
}

// Name returns the configured remote service name.
func (c *Client) Name() string { return c.config.Name }

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.config.BaseURL }

// Timeouts returns the timeout policy applied to every call.
func (c *Client) Timeouts() TimeoutPolicy { return c.config.Timeouts }

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.transport.CloseIdleConnections()
}

// Do executes a single attempt of req. Non-2xx responses are returned
// together with an *Error whose Cause is CauseStatus; every other failure
// returns a nil response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "HTTP "+httpReq.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrClientName, c.config.Name),
			attribute.String(observability.AttrHTTPMethod, httpReq.Method),
			attribute.String(observability.AttrHTTPURL, httpReq.URL.String()),
		),
	)
	defer span.End()
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	var connected atomic.Bool
	ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(httptrace.GotConnInfo) { connected.Store(true) },
	})
	httpReq = httpReq.WithContext(ctx)

	c.metrics.RecordStart(ctx, c.config.Name)
	start := time.Now()
	resp, err := c.roundTrip(ctx, httpReq, &connected, start)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		e := err.(*Error)
		outcome = string(e.Cause)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(e.Cause))
		if e.StatusCode > 0 {
			span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, e.StatusCode))
		}
		c.log.WithContext(ctx).Warn("remote call failed", logger.Fields(
			logger.FieldMethod, httpReq.Method,
			logger.FieldURL, httpReq.URL.String(),
			logger.FieldCause, string(e.Cause),
			logger.FieldStatus, e.StatusCode,
			logger.FieldDuration, elapsed.Milliseconds(),
			logger.FieldError, err.Error(),
		))
	} else {
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, resp.StatusCode))
		c.log.WithContext(ctx).Debug("remote call completed", logger.Fields(
			logger.FieldMethod, httpReq.Method,
			logger.FieldURL, httpReq.URL.String(),
			logger.FieldStatus, resp.StatusCode,
			logger.FieldDuration, elapsed.Milliseconds(),
		))
	}
	c.metrics.RecordCall(ctx, c.config.Name, httpReq.Method, outcome, elapsed)

	return resp, err
}

// roundTrip sends the request and reads the whole body. Errors are always *Error.
func (c *Client) roundTrip(ctx context.Context, httpReq *http.Request, connected *atomic.Bool, start time.Time) (*Response, error) {
	fail := func(cause Cause, statusCode int, body []byte, err error) *Error {
		return &Error{
			Method:     httpReq.Method,
			URL:        httpReq.URL.String(),
			StatusCode: statusCode,
			Cause:      cause,
			Elapsed:    time.Since(start),
			Body:       body,
			Err:        err,
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fail(classify(ctx, err, connected.Load()), 0, nil, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(classify(ctx, err, true), resp.StatusCode, nil, fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
		Elapsed:    time.Since(start),
	}
	if !isSuccess(resp.StatusCode) {
		return result, fail(CauseStatus, resp.StatusCode, body, nil)
	}
	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		q := u.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, &Error{Method: method, URL: u.String(), Cause: CauseProtocol, Err: fmt.Errorf("encode body: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &Error{Method: method, URL: u.String(), Cause: CauseProtocol, Err: fmt.Errorf("create request: %w", err)}
	}

	// Apply default headers
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
