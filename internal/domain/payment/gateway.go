// internal/domain/payment/gateway.go
package payment

import (
	"context"
)

// BillingAddress mirrors the processor's billing address shape
type BillingAddress struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingDetails accompany a card confirmation, derived from the shipping
// address at checkout
type BillingDetails struct {
	Name    string         `json:"name"`
	Address BillingAddress `json:"address"`
}

// ConfirmedIntent is the processor's view of a successfully confirmed
// payment intent
type ConfirmedIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Gateway isolates all interaction with the payment processor. The checkout
// orchestrator depends only on this capability, any processor client can sit
// behind it.
type Gateway interface {
	// Initialize fetches the publishable key and verifies the processor is
	// reachable within a bounded wait. Safe to call repeatedly, the second
	// call is a no-op once initialization succeeded.
	Initialize(ctx context.Context) error

	// Ready reports whether Initialize has succeeded
	Ready() bool

	// MountCardInput creates the tokenizing input bound to a page element.
	// Only one input may be mounted at a time; it becomes mountable again
	// after Unmount.
	MountCardInput(containerID string) (*CardInput, error)

	// CardInput returns the currently mounted input, if any
	CardInput() (*CardInput, bool)

	// ConfirmCardPayment tokenizes the mounted card and confirms the intent
	// identified by clientSecret. Every failure is normalized into
	// *GatewayError.
	ConfirmCardPayment(ctx context.Context, clientSecret string, billing BillingDetails) (*ConfirmedIntent, error)

	// Unmount tears down the mounted input. Idempotent.
	Unmount()
}
