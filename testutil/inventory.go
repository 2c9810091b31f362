package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/kbukum/order-service/component"
)

const inventoryStubName = "inventory-stub"

var _ TestComponent = (*InventoryStub)(nil)

// InventoryStub serves GET /api/inventory from an in-memory stock table.
// The answer is true when the stocked quantity covers the requested one.
type InventoryStub struct {
	initial map[string]int

	mu     sync.Mutex
	stock  map[string]int
	delay  time.Duration
	status int
	body   *string
	calls  int
	srv    *httptest.Server
}

// NewInventoryStub creates a stub seeded with stock. Start must be called
// before URL.
func NewInventoryStub(stock map[string]int) *InventoryStub {
	s := &InventoryStub{initial: maps.Clone(stock)}
	s.reset()
	return s
}

// Name returns the component name.
func (s *InventoryStub) Name() string { return inventoryStubName }

// Start begins serving on a loopback port.
func (s *InventoryStub) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return fmt.Errorf("%s already started", inventoryStubName)
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	return nil
}

// Stop closes the server and any in-flight connections.
func (s *InventoryStub) Stop(_ context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv != nil {
		srv.CloseClientConnections()
		srv.Close()
	}
	return nil
}

// Health reports healthy while serving.
func (s *InventoryStub) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return component.Health{Name: inventoryStubName, Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: inventoryStubName, Status: component.StatusHealthy}
}

// Reset restores the seeded stock and clears every override and the call count.
func (s *InventoryStub) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *InventoryStub) reset() {
	s.stock = maps.Clone(s.initial)
	if s.stock == nil {
		s.stock = map[string]int{}
	}
	s.delay = 0
	s.status = 0
	s.body = nil
	s.calls = 0
}

// URL returns the base URL, empty before Start.
func (s *InventoryStub) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// SetStock sets the quantity available for sku.
func (s *InventoryStub) SetStock(sku string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[sku] = qty
}

// SetDelay holds every response for d, or until the caller gives up.
func (s *InventoryStub) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// FailWith answers every request with status. Zero restores normal answers.
func (s *InventoryStub) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// RespondWith answers every request with 200 and body verbatim, which may
// be empty.
func (s *InventoryStub) RespondWith(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = &body
}

// Calls returns the number of requests received.
func (s *InventoryStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *InventoryStub) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls++
	delay, status, body := s.delay, s.status, s.body
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if body != nil {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(*body))
		return
	}
	if r.Method != http.MethodGet || r.URL.Path != "/api/inventory" {
		http.NotFound(w, r)
		return
	}

	sku := r.URL.Query().Get("skuCode")
	qty, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if sku == "" || err != nil {
		http.Error(w, "skuCode and quantity are required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	available := s.stock[sku]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(available >= qty)
}
