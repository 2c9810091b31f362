package testutil

import (
	"context"

	"github.com/kbukum/order-service/component"
)

// TestComponent is a component.Component that can be returned to its
// initial state between test cases.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error
}
