package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/order-service/logger"
	"github.com/kbukum/order-service/observability"
)

func newTestClient(t *testing.T, baseURL string, policy TimeoutPolicy, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithLogger(logger.Nop())}, opts...)
	c, err := New(Config{Name: "test", BaseURL: baseURL, Timeouts: policy}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func TestNew_ValidConfig(t *testing.T) {
	c, err := New(Config{Name: "inventory", BaseURL: "http://localhost:8082", Timeouts: DefaultTimeoutPolicy()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected client")
	}
	if c.httpClient.Timeout != 6*time.Second {
		t.Errorf("expected overall bound of 6s, got %s", c.httpClient.Timeout)
	}
	if c.transport.ResponseHeaderTimeout != 3*time.Second {
		t.Errorf("expected response header timeout 3s, got %s", c.transport.ResponseHeaderTimeout)
	}
	if c.dialer.Timeout != 3*time.Second {
		t.Errorf("expected dial timeout 3s, got %s", c.dialer.Timeout)
	}
	if c.transport.TLSHandshakeTimeout != 3*time.Second {
		t.Errorf("expected TLS handshake timeout 3s, got %s", c.transport.TLSHandshakeTimeout)
	}
}

func TestNew_InvalidTimeouts(t *testing.T) {
	for _, p := range []TimeoutPolicy{NewTimeoutPolicy(0, 3000), NewTimeoutPolicy(3000, 0), NewTimeoutPolicy(-5, -5)} {
		c, err := New(Config{BaseURL: "http://localhost:8082", Timeouts: p})
		if err == nil {
			t.Fatalf("expected error for %s", p)
		}
		if c != nil {
			t.Errorf("expected nil client for %s", p)
		}
		if !IsConfigurationError(err) {
			t.Errorf("expected configuration error, got %v", err)
		}
	}
}

func TestClient_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/inventory" {
			t.Errorf("expected /api/inventory, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("skuCode"); got != "iphone_15" {
			t.Errorf("expected skuCode=iphone_15, got %s", got)
		}
		if got := r.Header.Get("X-Client"); got != "order-service" {
			t.Errorf("expected default header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("true"))
	}))
	defer srv.Close()

	c, err := New(Config{
		Name:     "inventory",
		BaseURL:  srv.URL + "/",
		Timeouts: DefaultTimeoutPolicy(),
		Headers:  map[string]string{"X-Client": "order-service"},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/api/inventory",
		Query:  map[string]string{"skuCode": "iphone_15"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "true" {
		t.Errorf("expected body true, got %s", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("expected flattened content type, got %v", resp.Headers)
	}
}

func TestClient_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())
	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/echo",
		Body:   map[string]string{"skuCode": "pixel_8"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "pixel_8") {
		t.Errorf("expected echoed body, got %s", resp.Body)
	}
}

func TestClient_Do_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"down"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())
	resp, err := c.Do(context.Background(), Request{Path: "/api/inventory"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsStatus(err) || !IsServerError(err) {
		t.Errorf("expected status failure, got %v", err)
	}
	e := err.(*Error)
	if e.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", e.StatusCode)
	}
	if !bytes.Contains(e.Body, []byte("down")) {
		t.Errorf("expected body on error, got %s", e.Body)
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Error("expected response alongside status error")
	}
}

func TestClient_Do_ResponseTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	const response = 200 * time.Millisecond
	c := newTestClient(t, srv.URL, TimeoutPolicy{Connect: time.Second, Response: response})

	start := time.Now()
	_, err := c.Do(context.Background(), Request{Path: "/api/inventory"})
	elapsed := time.Since(start)

	if !IsResponseTimeout(err) {
		t.Fatalf("expected response timeout, got %v", err)
	}
	if elapsed < response {
		t.Errorf("returned before the response timeout: %s", elapsed)
	}
	if elapsed > response+time.Second {
		t.Errorf("response timeout not enforced promptly: %s", elapsed)
	}
	if e := err.(*Error); e.StatusCode != 0 || e.Elapsed < response {
		t.Errorf("unexpected failure details: status=%d elapsed=%s", e.StatusCode, e.Elapsed)
	}
}

func TestClient_Do_ConnectionRefused(t *testing.T) {
	c := newTestClient(t, "http://"+closedAddr(t), DefaultTimeoutPolicy())

	start := time.Now()
	resp, err := c.Do(context.Background(), Request{Path: "/api/inventory"})
	elapsed := time.Since(start)

	if resp != nil {
		t.Error("expected nil response")
	}
	if !IsConnectionRefused(err) {
		t.Fatalf("expected connection refused, got %v", err)
	}
	if elapsed >= DefaultConnectTimeout {
		t.Errorf("refusal should not wait for the connect timeout: %s", elapsed)
	}
}

func TestClient_Do_Canceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := c.Do(ctx, Request{Path: "/slow"})
	if !IsCanceled(err) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Errorf("cancellation should abort promptly, took %s", time.Since(start))
	}
}

func TestClient_Do_CallerDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Do(ctx, Request{Path: "/slow"})
	elapsed := time.Since(start)

	if !IsCanceled(err) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if IsTimeout(err) {
		t.Errorf("caller deadline must not be reported as a client timeout: %v", err)
	}
	if elapsed >= DefaultResponseTimeout {
		t.Errorf("expected the caller deadline to end the call, took %s", elapsed)
	}
}

func TestClient_Do_ConnectTimeout(t *testing.T) {
	// 10.255.255.1 is unassigned; where it is routed the SYN is dropped.
	c := newTestClient(t, "http://10.255.255.1:81", NewTimeoutPolicy(200, 3000))

	start := time.Now()
	_, err := c.Do(context.Background(), Request{Path: "/api/inventory"})
	elapsed := time.Since(start)

	if !IsConnectTimeout(err) {
		t.Skipf("network does not blackhole 10.255.255.1: %v", err)
	}
	if elapsed > 200*time.Millisecond+time.Second {
		t.Errorf("expected the connect timeout to fire near 200ms, took %s", elapsed)
	}
	if IsResponseTimeout(err) {
		t.Errorf("connect timeout reported as response timeout: %v", err)
	}
}

func TestClient_Do_Instrumented(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("true"))
	}))
	defer srv.Close()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy(),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)

	if _, err := c.Do(context.Background(), Request{Path: "/ok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Do(context.Background(), Request{Path: "/missing"}); !IsNotFound(err) {
		t.Fatalf("expected 404, got %v", err)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != "HTTP GET" {
		t.Errorf("unexpected span name %s", spans[0].Name())
	}
	if spans[1].Status().Description != string(CauseStatus) {
		t.Errorf("expected error status on failed span, got %+v", spans[1].Status())
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	outcomes := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.calls" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value(attribute.Key(observability.AttrOutcome))
				outcomes[v.AsString()] += dp.Value
			}
		}
	}
	if outcomes["ok"] != 1 || outcomes[string(CauseStatus)] != 1 {
		t.Errorf("unexpected outcomes %v", outcomes)
	}
}

func TestGet_Typed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bool":
			_, _ = w.Write([]byte("false"))
		case "/garbage":
			_, _ = w.Write([]byte("<html>"))
		case "/empty":
			w.WriteHeader(http.StatusOK)
		case "/nocontent":
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())

	resp, err := Get[bool](context.Background(), c, "/bool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Data {
		t.Error("expected false")
	}

	_, err = Get[bool](context.Background(), c, "/garbage")
	var e *Error
	if err == nil {
		t.Fatal("expected decode error")
	}
	e = err.(*Error)
	if e.Cause != CauseProtocol || e.StatusCode != http.StatusOK {
		t.Errorf("expected protocol failure with status 200, got %+v", e)
	}

	_, err = Get[bool](context.Background(), c, "/empty")
	if err == nil {
		t.Fatal("expected an empty 200 body to fail")
	}
	if e, ok := err.(*Error); !ok || e.Cause != CauseProtocol {
		t.Errorf("expected protocol failure for empty body, got %v", err)
	}

	resp, err = Get[bool](context.Background(), c, "/nocontent")
	if err != nil {
		t.Fatalf("204 should decode to the zero value: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent || resp.Data {
		t.Errorf("unexpected 204 response %+v", resp)
	}
}

func TestPost_Typed(t *testing.T) {
	type order struct {
		SkuCode  string `json:"skuCode"`
		Quantity int    `json:"quantity"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var o order
		_ = json.NewDecoder(r.Body).Decode(&o)
		o.Quantity *= 2
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(o)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, DefaultTimeoutPolicy())
	resp, err := Post[order](context.Background(), c, "/orders", order{SkuCode: "a", Quantity: 2},
		WithHeaders(map[string]string{"X-Request-ID": "r1"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated || resp.Data.Quantity != 4 {
		t.Errorf("unexpected response %+v", resp)
	}
}
