package httpclient

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/order-service/component"
	"github.com/kbukum/order-service/logger"
)

func TestComponent_Lifecycle(t *testing.T) {
	c, err := New(Config{Name: "inventory", BaseURL: "http://localhost:8082", Timeouts: DefaultTimeoutPolicy()},
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	comp := NewComponent(c)

	if comp.Name() != "httpclient:inventory" {
		t.Errorf("unexpected name %s", comp.Name())
	}
	if comp.Client() != c {
		t.Error("expected wrapped client")
	}

	ctx := context.Background()
	if err := comp.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if h := comp.Health(ctx); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s", h.Status)
	}
	if err := comp.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	d := comp.Describe()
	if d.Type != "http-client" {
		t.Errorf("unexpected type %s", d.Type)
	}
	if !strings.Contains(d.Details, "http://localhost:8082") || !strings.Contains(d.Details, "connect=3s") {
		t.Errorf("unexpected details %q", d.Details)
	}
}

func TestComponent_RegistryStopsClient(t *testing.T) {
	c, err := New(Config{Name: "inventory", BaseURL: "http://localhost:8082", Timeouts: DefaultTimeoutPolicy()},
		WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	reg := component.NewRegistry()
	if err := reg.Register(NewComponent(c)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := reg.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
}
