// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
)

// Service is the checkout orchestrator. One submission produces exactly one
// terminal outcome: a created order, or a classified failure. Money captured
// without an order, or an order without its payment, must never happen from
// this side.
type Service struct {
	api      *backend.Client
	carts    *cart.Service
	orders   *order.Service
	gateways *payment.Manager
	guard    Guard
	local    *localGuard
	config   *config.Config
	logger   *logrus.Logger
	validate *validator.Validate
}

// NewService creates a new checkout service
func NewService(api *backend.Client, carts *cart.Service, orders *order.Service, gateways *payment.Manager, guard Guard, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		api:      api,
		carts:    carts,
		orders:   orders,
		gateways: gateways,
		guard:    guard,
		local:    newLocalGuard(),
		config:   cfg,
		logger:   logger,
		validate: validator.New(),
	}
}

// Gateway returns the user's payment gateway session
func (s *Service) Gateway(userID uint) payment.Gateway {
	return s.gateways.ForUser(userID)
}

// Teardown releases the user's payment gateway session and its mounted
// input. Called on every checkout exit path.
func (s *Service) Teardown(userID uint) {
	s.gateways.Drop(userID)
}

// Estimate previews the checkout totals from the observed cart. Tax applies
// to the merchandise subtotal only, then the result is rounded to cents.
func (s *Service) Estimate(userID uint) Estimate {
	subtotal := s.carts.State(userID).Get().SubTotal
	tax := subtotal.Mul(s.config.Checkout.TaxRate).Round(2)

	return Estimate{
		Subtotal:     subtotal,
		ShippingCost: s.config.Checkout.ShippingCost,
		Tax:          tax,
		Total:        subtotal.Add(s.config.Checkout.ShippingCost).Add(tax).Round(2),
		Currency:     s.config.Checkout.Currency,
	}
}

// PlaceOrder runs one checkout attempt. Validation failures return
// *ValidationError before any network call; a submission while another
// attempt is outstanding returns ErrInProgress; everything past the
// preconditions terminates in an AttemptResult.
func (s *Service) PlaceOrder(ctx context.Context, token string, userID uint, req PlaceOrderRequest) (*AttemptResult, error) {
	attemptID := uuid.New().String()

	if err := s.checkPreconditions(userID, req); err != nil {
		return nil, err
	}

	// Card payment is blocked outright while the gateway is unavailable
	gateway := s.gateways.ForUser(userID)
	if req.PaymentMethod == PaymentMethodCard && !gateway.Ready() {
		return failed(attemptID, FailureGatewayUnavailable,
			"Payment service is unavailable. Please refresh the page or choose another payment method."), nil
	}

	// The local slot always guards; the distributed guard extends cover
	// across replicas. A guard-store outage degrades to this instance's
	// coverage, it never lets concurrent submissions through.
	if !s.local.acquire(userID, attemptID) {
		return nil, ErrInProgress
	}
	defer s.local.release(userID, attemptID)

	acquired, err := s.guard.Acquire(ctx, userID, attemptID)
	if err != nil {
		s.logger.WithError(err).Warn("Checkout guard unavailable, proceeding with local guard only")
	} else if !acquired {
		return nil, ErrInProgress
	}
	defer s.guard.Release(context.WithoutCancel(ctx), userID, attemptID)

	log := s.logger.WithFields(logrus.Fields{
		"attempt_id":     attemptID,
		"user_id":        userID,
		"payment_method": req.PaymentMethod,
	})

	var result *AttemptResult
	if req.PaymentMethod == PaymentMethodCard {
		result = s.placeCardOrder(ctx, token, userID, attemptID, gateway, req)
	} else {
		result = s.placeCashOrder(ctx, token, userID, attemptID, req)
	}

	if result.Status == AttemptSucceeded {
		log.WithField("order_id", result.OrderID).Info("Checkout attempt succeeded")
	} else {
		log.WithFields(logrus.Fields{
			"kind":    result.Kind,
			"message": result.Message,
		}).Warn("Checkout attempt failed")
	}

	return result, nil
}

// checkPreconditions rejects a submission before any network traffic
func (s *Service) checkPreconditions(userID uint, req PlaceOrderRequest) error {
	if req.PaymentMethod != PaymentMethodCard && req.PaymentMethod != PaymentMethodCOD {
		return &ValidationError{Fields: []string{"paymentMethod"}}
	}

	if s.carts.State(userID).Get().IsEmpty() {
		return &ValidationError{Fields: []string{"cart"}}
	}

	if err := s.validate.Struct(req.ShippingInfo); err != nil {
		var invalid validator.ValidationErrors
		fields := []string{"shippingInfo"}
		if errors.As(err, &invalid) {
			fields = fields[:0]
			for _, fe := range invalid {
				fields = append(fields, "shippingInfo."+lowerFirst(fe.Field()))
			}
		}
		return &ValidationError{Fields: fields}
	}

	if req.PaymentMethod == PaymentMethodCard {
		gateway := s.gateways.ForUser(userID)
		if gateway.Ready() {
			input, mounted := gateway.CardInput()
			if !mounted {
				return &ValidationError{Fields: []string{"card"}}
			}
			if advisory := input.Err(); advisory != nil || !input.Complete() {
				return &ValidationError{Fields: []string{"card"}}
			}
		}
	}

	return nil
}

// placeCardOrder runs the three-phase card protocol. Each phase starts only
// after the previous one succeeded.
func (s *Service) placeCardOrder(ctx context.Context, token string, userID uint, attemptID string, gateway payment.Gateway, req PlaceOrderRequest) *AttemptResult {
	// Phase 1: intent creation. Nothing has been charged yet, so a failure
	// here simply ends the attempt. Intents are single-use; every attempt
	// requests a fresh one.
	var intent PaymentIntentResponse
	err := s.api.DoIdempotent(ctx, http.MethodPost, "/payment/create-payment-intent", token, attemptID,
		createIntentRequest{ShippingCost: s.config.Checkout.ShippingCost}, &intent)
	if err != nil {
		return failed(attemptID, FailureProcessingError,
			messageOr(err, "Failed to initialize payment. Please try again."))
	}

	// Phase 2: client-side confirmation with the processor. On failure the
	// intent is left to expire on the processor's side: no order exists, no
	// retry, no cancellation from here.
	billing := billingFromShipping(req.ShippingInfo)
	if _, err := gateway.ConfirmCardPayment(ctx, intent.ClientSecret, billing); err != nil {
		return failed(attemptID, FailureCardDeclined, gatewayMessage(err))
	}

	// Phase 3: server-side verification and order creation. Payment has
	// been captured; a failure here must send the user to support, a client
	// retry would risk a double charge.
	confirm := confirmPaymentRequest{
		PaymentIntentID: intent.PaymentIntentID,
		ShippingCost:    s.config.Checkout.ShippingCost,
		ShippingAddress: req.ShippingInfo,
	}
	var confirmation orderConfirmation
	if err := s.api.Do(ctx, http.MethodPost, "/payment/confirm-payment", token, nil, confirm, &confirmation); err != nil {
		return failed(attemptID, FailureProcessingError,
			messageOr(err, "Your payment was processed but we could not complete the order. Please contact support."))
	}

	s.clearCart(ctx, token, userID)
	return succeeded(attemptID, confirmation.OrderID, confirmation.OrderNumber)
}

// placeCashOrder creates the order directly, payment status stays unpaid
func (s *Service) placeCashOrder(ctx context.Context, token string, userID uint, attemptID string, req PlaceOrderRequest) *AttemptResult {
	ord, err := s.orders.Create(ctx, token, order.CreateOrderRequest{
		ShippingInfo:  req.ShippingInfo,
		PaymentMethod: string(req.PaymentMethod),
		CustomerNotes: req.CustomerNotes,
	})
	if err != nil {
		return failed(attemptID, FailureProcessingError,
			messageOr(err, "Failed to place order. Please try again."))
	}

	s.clearCart(ctx, token, userID)
	return succeeded(attemptID, ord.ID, ord.OrderNumber)
}

// clearCart empties the cart after the terminal success, never before. A
// clear failure is logged but does not fail the attempt: the order exists.
func (s *Service) clearCart(ctx context.Context, token string, userID uint) {
	if err := s.carts.Clear(ctx, token, userID); err != nil {
		s.logger.WithField("user_id", userID).WithError(err).Warn("Failed to clear cart after order")
	}
}

func billingFromShipping(info order.ShippingInfo) payment.BillingDetails {
	return payment.BillingDetails{
		Name: info.Name,
		Address: payment.BillingAddress{
			Line1:      info.Address,
			City:       info.City,
			State:      info.State,
			PostalCode: info.ZipCode,
			Country:    info.Country,
		},
	}
}

// messageOr prefers the upstream API's own error message, falling back to a
// caller-supplied one for transport failures
func messageOr(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// gatewayMessage carries the processor's message through verbatim so the
// user sees exactly what the card network reported
func gatewayMessage(err error) string {
	var gwErr *payment.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	return "Card payment failed"
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
