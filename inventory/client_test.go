package inventory

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/kbukum/order-service/errors"
	"github.com/kbukum/order-service/httpclient"
	"github.com/kbukum/order-service/logger"
	"github.com/kbukum/order-service/testutil"
)

func newTestClient(t *testing.T, baseURL string, policy httpclient.TimeoutPolicy) *Client {
	t.Helper()
	c, err := NewClient(baseURL, policy, httpclient.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("http://localhost:8082", httpclient.NewTimeoutPolicy(3000, 3000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.HTTP().Name() != ServiceName {
		t.Errorf("expected client named %s, got %s", ServiceName, c.HTTP().Name())
	}
}

func TestNewClient_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		policy  httpclient.TimeoutPolicy
	}{
		{"zero connect", "http://localhost:8082", httpclient.NewTimeoutPolicy(0, 3000)},
		{"negative response", "http://localhost:8082", httpclient.NewTimeoutPolicy(3000, -1)},
		{"empty url", "", httpclient.DefaultTimeoutPolicy()},
		{"not a url", "inventory-service", httpclient.DefaultTimeoutPolicy()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL, tt.policy)
			if c != nil {
				t.Error("expected nil handle")
			}
			if !apperrors.IsCode(err, apperrors.ErrCodeConfiguration) {
				t.Errorf("expected CONFIGURATION_ERROR, got %v", err)
			}
		})
	}
}

func TestIsInStock(t *testing.T) {
	stub := testutil.NewInventoryStub(map[string]int{"iphone_15": 2})
	testutil.T(t).Setup(stub)

	c := newTestClient(t, stub.URL(), httpclient.DefaultTimeoutPolicy())

	ok, err := c.IsInStock(context.Background(), "iphone_15", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected in stock")
	}

	ok, err = c.IsInStock(context.Background(), "pixel_8", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected out of stock")
	}
}

func TestIsInStock_InvalidArgumentsSkipNetwork(t *testing.T) {
	stub := testutil.NewInventoryStub(nil)
	testutil.T(t).Setup(stub)

	c := newTestClient(t, stub.URL(), httpclient.DefaultTimeoutPolicy())

	for _, tc := range []struct {
		sku string
		qty int
	}{{"", 1}, {"  ", 1}, {"iphone_15", 0}, {"iphone_15", -3}} {
		_, err := c.IsInStock(context.Background(), tc.sku, tc.qty)
		if !apperrors.IsCode(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("(%q, %d): expected INVALID_INPUT, got %v", tc.sku, tc.qty, err)
		}
	}
	if stub.Calls() != 0 {
		t.Errorf("expected no remote calls, got %d", stub.Calls())
	}
}

func TestIsInStock_SilentServerTimesOut(t *testing.T) {
	c := newTestClient(t, testutil.SilentURL(t), httpclient.NewTimeoutPolicy(1000, 150))

	start := time.Now()
	_, err := c.IsInStock(context.Background(), "iphone_15", 1)
	if !httpclient.IsResponseTimeout(err) {
		t.Fatalf("expected response timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond+time.Second {
		t.Errorf("call blocked too long: %s", elapsed)
	}
}

func TestIsInStock_ConnectionRefused(t *testing.T) {
	c := newTestClient(t, testutil.ClosedURL(t), httpclient.DefaultTimeoutPolicy())
	_, err := c.IsInStock(context.Background(), "iphone_15", 1)
	if !httpclient.IsConnectionRefused(err) {
		t.Fatalf("expected connection refused, got %v", err)
	}
}

func TestIsInStock_StatusFailure(t *testing.T) {
	stub := testutil.NewInventoryStub(nil)
	testutil.T(t).Setup(stub)
	stub.FailWith(http.StatusInternalServerError)

	c := newTestClient(t, stub.URL(), httpclient.DefaultTimeoutPolicy())
	_, err := c.IsInStock(context.Background(), "iphone_15", 1)
	if !httpclient.IsServerError(err) {
		t.Fatalf("expected 5xx failure, got %v", err)
	}
}

func TestIsInStock_EmptyBodyIsProtocolFailure(t *testing.T) {
	stub := testutil.NewInventoryStub(map[string]int{"iphone_15": 5})
	testutil.T(t).Setup(stub)
	stub.RespondWith("")

	c := newTestClient(t, stub.URL(), httpclient.DefaultTimeoutPolicy())
	ok, err := c.IsInStock(context.Background(), "iphone_15", 1)
	if err == nil {
		t.Fatalf("expected failure for an empty 200 body, got %v", ok)
	}
	var e *httpclient.Error
	if !errors.As(err, &e) || e.Cause != httpclient.CauseProtocol {
		t.Errorf("expected protocol failure, got %v", err)
	}
}

func TestIsInStock_UndecodableBody(t *testing.T) {
	stub := testutil.NewInventoryStub(nil)
	testutil.T(t).Setup(stub)
	stub.RespondWith(`{"inStock":true}`)

	c := newTestClient(t, stub.URL(), httpclient.DefaultTimeoutPolicy())
	_, err := c.IsInStock(context.Background(), "iphone_15", 1)
	var e *httpclient.Error
	if !errors.As(err, &e) || e.Cause != httpclient.CauseProtocol {
		t.Errorf("expected protocol failure, got %v", err)
	}
}
