// internal/domain/checkout/result.go
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-gateway/internal/domain/order"
)

// PaymentMethod identifies how an order is paid
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCOD  PaymentMethod = "cod"
)

// FailureKind classifies a failed checkout attempt for the failure view
type FailureKind string

const (
	FailureGatewayUnavailable FailureKind = "gateway_unavailable"
	FailureCardDeclined       FailureKind = "card_declined"
	FailureProcessingError    FailureKind = "processing_error"
)

// AttemptStatus is the terminal state of one checkout attempt
type AttemptStatus string

const (
	AttemptSucceeded AttemptStatus = "succeeded"
	AttemptFailed    AttemptStatus = "failed"
)

// AttemptResult is the single terminal outcome of a checkout attempt. It is
// transient: it routes the caller to the confirmation or failure view and is
// never persisted.
type AttemptResult struct {
	AttemptID   string        `json:"attemptId"`
	Status      AttemptStatus `json:"status"`
	OrderID     uint          `json:"orderId,omitempty"`
	OrderNumber string        `json:"orderNumber,omitempty"`
	Kind        FailureKind   `json:"kind,omitempty"`
	Message     string        `json:"message,omitempty"`
}

func succeeded(attemptID string, orderID uint, orderNumber string) *AttemptResult {
	return &AttemptResult{
		AttemptID:   attemptID,
		Status:      AttemptSucceeded,
		OrderID:     orderID,
		OrderNumber: orderNumber,
	}
}

func failed(attemptID string, kind FailureKind, message string) *AttemptResult {
	return &AttemptResult{
		AttemptID: attemptID,
		Status:    AttemptFailed,
		Kind:      kind,
		Message:   message,
	}
}

// ErrInProgress is returned when an attempt is submitted while another one
// is still outstanding for the same user. The second submission is a no-op.
var ErrInProgress = errors.New("checkout already in progress")

// ValidationError reports precondition failures. These are resolved at the
// form, they never reach the network or the failure view.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid checkout request"
	}
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// PlaceOrderRequest is one checkout submission
type PlaceOrderRequest struct {
	ShippingInfo  order.ShippingInfo `json:"shippingInfo"`
	PaymentMethod PaymentMethod      `json:"paymentMethod"`
	CustomerNotes string             `json:"customerNotes,omitempty"`
}

// PaymentIntentResponse is the commerce API's payment intent. Single-use: a
// failed attempt requests a fresh one rather than reusing the client secret.
type PaymentIntentResponse struct {
	ClientSecret    string          `json:"clientSecret"`
	PaymentIntentID string          `json:"paymentIntentId"`
	Amount          decimal.Decimal `json:"amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Shipping        decimal.Decimal `json:"shipping"`
}

type createIntentRequest struct {
	ShippingCost decimal.Decimal `json:"shippingCost"`
}

type confirmPaymentRequest struct {
	PaymentIntentID string             `json:"paymentIntentId"`
	ShippingCost    decimal.Decimal    `json:"shippingCost"`
	ShippingAddress order.ShippingInfo `json:"shippingAddress"`
}

type orderConfirmation struct {
	OrderID     uint   `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Message     string `json:"message"`
}

// Estimate is the checkout page's pricing preview. The commerce API remains
// authoritative, these numbers only render the summary.
type Estimate struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	ShippingCost decimal.Decimal `json:"shippingCost"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
}
