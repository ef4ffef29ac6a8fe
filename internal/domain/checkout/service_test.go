// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// stubGateway is a controllable payment.Gateway
type stubGateway struct {
	mu         sync.Mutex
	ready      bool
	input      *payment.CardInput
	confirmErr error
	confirms   int
	unmounts   int
}

func (g *stubGateway) Initialize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ready = true
	return nil
}

func (g *stubGateway) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

func (g *stubGateway) MountCardInput(containerID string) (*payment.CardInput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.input != nil {
		return nil, payment.ErrAlreadyMounted
	}
	g.input = &payment.CardInput{}
	return g.input, nil
}

func (g *stubGateway) CardInput() (*payment.CardInput, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.input, g.input != nil
}

func (g *stubGateway) ConfirmCardPayment(ctx context.Context, clientSecret string, billing payment.BillingDetails) (*payment.ConfirmedIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.confirms++
	if g.confirmErr != nil {
		return nil, g.confirmErr
	}
	return &payment.ConfirmedIntent{ID: "pi_123", Status: "succeeded"}, nil
}

func (g *stubGateway) Unmount() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.input = nil
	g.unmounts++
}

// stubGuard is a controllable Guard
type stubGuard struct {
	mu       sync.Mutex
	acquired bool
	err      error
	acquires int
	releases int
}

func (g *stubGuard) Acquire(ctx context.Context, userID uint, attemptID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.acquires++
	return g.acquired, g.err
}

func (g *stubGuard) Release(ctx context.Context, userID uint, attemptID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.releases++
}

// fakeCommerce is an httptest commerce API recording every request
type fakeCommerce struct {
	mu            sync.Mutex
	requests      []string
	intentKeys    []string
	confirmStatus int
	confirmError  string
	clearStatus   int
	intentGate    chan struct{}
	intentEntered chan struct{}
	server        *httptest.Server
}

// holdIntents makes create-payment-intent block until the gate closes,
// signalling entered once a request is inside
func (f *fakeCommerce) holdIntents(gate, entered chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.intentGate = gate
	f.intentEntered = entered
}

func newFakeCommerce(t *testing.T) *fakeCommerce {
	t.Helper()
	f := &fakeCommerce{
		confirmStatus: http.StatusOK,
		clearStatus:   http.StatusOK,
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/payment/create-payment-intent" {
			f.intentKeys = append(f.intentKeys, r.Header.Get("Idempotency-Key"))
		}
		confirmStatus, confirmError, clearStatus := f.confirmStatus, f.confirmError, f.clearStatus
		gate, entered := f.intentGate, f.intentEntered
		f.mu.Unlock()

		switch {
		case r.URL.Path == "/payment/create-payment-intent":
			if gate != nil {
				entered <- struct{}{}
				<-gate
			}
			json.NewEncoder(w).Encode(PaymentIntentResponse{
				ClientSecret:    "pi_123_secret_abc",
				PaymentIntentID: "pi_123",
				Amount:          decimal.RequireFromString("59.98"),
			})
		case r.URL.Path == "/payment/confirm-payment":
			if confirmStatus != http.StatusOK {
				w.WriteHeader(confirmStatus)
				json.NewEncoder(w).Encode(map[string]string{"error": confirmError})
				return
			}
			json.NewEncoder(w).Encode(orderConfirmation{OrderID: 11, OrderNumber: "ORD-1001"})
		case r.URL.Path == "/orders" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(order.Order{ID: 12, OrderNumber: "ORD-1002"})
		case r.URL.Path == "/cart" && r.Method == http.MethodDelete:
			w.WriteHeader(clearStatus)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCommerce) count(req string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == req {
			n++
		}
	}
	return n
}

func (f *fakeCommerce) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeCommerce) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.intentKeys...)
}

type fixture struct {
	service  *Service
	commerce *fakeCommerce
	carts    *cart.Service
	gateway  *stubGateway
	guard    *stubGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	commerce := newFakeCommerce(t)
	api := backend.NewClient(commerce.server.URL, time.Second, testLogger())

	cfg := &config.Config{}
	cfg.Checkout.TaxRate = decimal.RequireFromString("0.10")
	cfg.Checkout.ShippingCost = decimal.RequireFromString("5.00")
	cfg.Checkout.Currency = "USD"
	cfg.Checkout.LockTTL = 2 * time.Minute

	gateway := &stubGateway{}
	guard := &stubGuard{acquired: true}
	carts := cart.NewService(api, testLogger())
	orders := order.NewService(api, testLogger())
	gateways := payment.NewManager(func() payment.Gateway { return gateway })

	return &fixture{
		service:  NewService(api, carts, orders, gateways, guard, cfg, testLogger()),
		commerce: commerce,
		carts:    carts,
		gateway:  gateway,
		guard:    guard,
	}
}

const testUserID = uint(42)

func seedCart(f *fixture, subtotal string) {
	f.carts.State(testUserID).Set(cart.Cart{
		Items: []cart.CartItem{
			{ID: 1, ProductID: 3, ProductName: "Walnut Desk Organizer", Quantity: 2,
				UnitPrice:  decimal.RequireFromString("24.99"),
				TotalPrice: decimal.RequireFromString(subtotal), StockQuantity: 5},
		},
		SubTotal:   decimal.RequireFromString(subtotal),
		TotalItems: 2,
	})
}

func validShipping() order.ShippingInfo {
	return order.ShippingInfo{
		Name:    gofakeit.Name(),
		Address: gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.StateAbr(),
		ZipCode: gofakeit.Zip(),
		Country: "USA",
		Phone:   gofakeit.Phone(),
	}
}

func readyCardGateway(t *testing.T, f *fixture) {
	t.Helper()
	require.NoError(t, f.gateway.Initialize(context.Background()))
	input, err := f.gateway.MountCardInput("card-element")
	require.NoError(t, err)
	input.Change(payment.CardDetails{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  time.Now().UTC().Year() + 2,
		CVC:      "123",
	})
	require.True(t, input.Complete())
}

func cardRequest() PlaceOrderRequest {
	return PlaceOrderRequest{ShippingInfo: validShipping(), PaymentMethod: PaymentMethodCard}
}

func codRequest() PlaceOrderRequest {
	return PlaceOrderRequest{ShippingInfo: validShipping(), PaymentMethod: PaymentMethodCOD}
}

func TestPlaceOrder_MissingShippingFieldNeverHitsNetwork(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)

	req := cardRequest()
	req.ShippingInfo.City = ""

	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, req)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Fields, "shippingInfo.city")
	assert.Equal(t, 0, f.commerce.total())
	assert.Equal(t, 0, f.guard.acquires)
}

func TestPlaceOrder_EmptyCartRejected(t *testing.T) {
	f := newFixture(t)
	readyCardGateway(t, f)

	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"cart"}, invalid.Fields)
	assert.Equal(t, 0, f.commerce.total())
}

func TestPlaceOrder_UnknownPaymentMethodRejected(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")

	req := PlaceOrderRequest{ShippingInfo: validShipping(), PaymentMethod: "wire"}
	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, req)
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"paymentMethod"}, invalid.Fields)
}

func TestPlaceOrder_GatewayNotReadyFailsWithoutNetwork(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)
	assert.Equal(t, AttemptFailed, result.Status)
	assert.Equal(t, FailureGatewayUnavailable, result.Kind)
	assert.Equal(t, 0, f.commerce.total())
}

func TestPlaceOrder_UnmountedCardInputRejected(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	require.NoError(t, f.gateway.Initialize(context.Background()))

	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"card"}, invalid.Fields)
	assert.Equal(t, 0, f.commerce.total())
}

func TestPlaceOrder_IncompleteCardRejected(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	require.NoError(t, f.gateway.Initialize(context.Background()))
	input, err := f.gateway.MountCardInput("card-element")
	require.NoError(t, err)
	input.Change(payment.CardDetails{Number: "4242424242424241"})

	_, err = f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"card"}, invalid.Fields)
	assert.Equal(t, 0, f.commerce.total())
}

func TestPlaceOrder_SecondSubmissionWhileInFlight(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)
	f.guard.acquired = false

	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.ErrorIs(t, err, ErrInProgress)
	assert.Equal(t, 0, f.commerce.total())
	assert.Equal(t, 0, f.gateway.confirms)
}

func TestPlaceOrder_GuardOutageDoesNotBlockCheckout(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)
	f.guard.err = errors.New("redis down")

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)
	assert.Equal(t, AttemptSucceeded, result.Status)
}

func TestPlaceOrder_GuardOutageStillBlocksConcurrentSubmission(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)
	f.guard.err = errors.New("redis down")

	gate := make(chan struct{})
	entered := make(chan struct{}, 1)
	f.commerce.holdIntents(gate, entered)

	type outcome struct {
		result *AttemptResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
		first <- outcome{result, err}
	}()

	// The first attempt is mid-flight inside intent creation
	<-entered

	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.ErrorIs(t, err, ErrInProgress)

	close(gate)
	got := <-first
	require.NoError(t, got.err)
	assert.Equal(t, AttemptSucceeded, got.result.Status)

	// Exactly one intent was ever created
	assert.Equal(t, 1, f.commerce.count("POST /payment/create-payment-intent"))
	assert.Equal(t, 1, f.gateway.confirms)
}

func TestPlaceOrder_CardSuccess(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)

	assert.Equal(t, AttemptSucceeded, result.Status)
	assert.Equal(t, uint(11), result.OrderID)
	assert.Equal(t, "ORD-1001", result.OrderNumber)
	assert.NotEmpty(t, result.AttemptID)

	assert.Equal(t, 1, f.commerce.count("POST /payment/create-payment-intent"))
	assert.Equal(t, 1, f.gateway.confirms)
	assert.Equal(t, 1, f.commerce.count("POST /payment/confirm-payment"))

	// Cart cleared only after the terminal success
	assert.Equal(t, 1, f.commerce.count("DELETE /cart"))
	assert.True(t, f.carts.State(testUserID).Get().IsEmpty())

	require.Len(t, f.commerce.keys(), 1)
	assert.NotEmpty(t, f.commerce.keys()[0])
	assert.Equal(t, 1, f.guard.releases)
}

func TestPlaceOrder_FreshIntentPerAttempt(t *testing.T) {
	f := newFixture(t)
	readyCardGateway(t, f)

	seedCart(f, "49.98")
	_, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)

	seedCart(f, "49.98")
	_, err = f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)

	keys := f.commerce.keys()
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestPlaceOrder_DeclineCarriesExactGatewayMessage(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)
	f.gateway.confirmErr = &payment.GatewayError{
		Code:    payment.ErrCodeCardDeclined,
		Message: "Your card was declined.",
	}

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)

	assert.Equal(t, AttemptFailed, result.Status)
	assert.Equal(t, FailureCardDeclined, result.Kind)
	assert.Equal(t, "Your card was declined.", result.Message)

	// No order, no verification call, cart untouched
	assert.Equal(t, 0, f.commerce.count("POST /payment/confirm-payment"))
	assert.Equal(t, 0, f.commerce.count("DELETE /cart"))
	assert.False(t, f.carts.State(testUserID).Get().IsEmpty())
	assert.Equal(t, 1, f.guard.releases)
}

func TestPlaceOrder_VerificationFailureDirectsToSupport(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	readyCardGateway(t, f)
	f.commerce.confirmStatus = http.StatusInternalServerError
	f.commerce.confirmError = "Payment received but order creation failed. Please contact support."

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, cardRequest())
	require.NoError(t, err)

	assert.Equal(t, AttemptFailed, result.Status)
	assert.Equal(t, FailureProcessingError, result.Kind)
	assert.Contains(t, result.Message, "contact support")

	// Payment phase ran, but the cart stays intact
	assert.Equal(t, 1, f.gateway.confirms)
	assert.Equal(t, 0, f.commerce.count("DELETE /cart"))
	assert.False(t, f.carts.State(testUserID).Get().IsEmpty())
}

func TestPlaceOrder_CashOnDelivery(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, codRequest())
	require.NoError(t, err)

	assert.Equal(t, AttemptSucceeded, result.Status)
	assert.Equal(t, uint(12), result.OrderID)
	assert.Equal(t, "ORD-1002", result.OrderNumber)

	// No payment traffic at all on the cash path
	assert.Equal(t, 1, f.commerce.count("POST /orders"))
	assert.Equal(t, 0, f.commerce.count("POST /payment/create-payment-intent"))
	assert.Equal(t, 0, f.gateway.confirms)
	assert.True(t, f.carts.State(testUserID).Get().IsEmpty())
}

func TestPlaceOrder_CartClearFailureDoesNotFailTheOrder(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")
	f.commerce.clearStatus = http.StatusInternalServerError

	result, err := f.service.PlaceOrder(context.Background(), "tok", testUserID, codRequest())
	require.NoError(t, err)
	assert.Equal(t, AttemptSucceeded, result.Status)
}

func TestEstimate_TaxOnSubtotalOnly(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.98")

	estimate := f.service.Estimate(testUserID)
	assert.True(t, estimate.Subtotal.Equal(decimal.RequireFromString("49.98")), "subtotal %s", estimate.Subtotal)
	assert.True(t, estimate.ShippingCost.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, estimate.Tax.Equal(decimal.RequireFromString("5.00")), "tax %s", estimate.Tax)
	assert.True(t, estimate.Total.Equal(decimal.RequireFromString("59.98")), "total %s", estimate.Total)
	assert.Equal(t, "USD", estimate.Currency)
}

func TestEstimate_RoundsToCents(t *testing.T) {
	f := newFixture(t)
	seedCart(f, "49.99")

	estimate := f.service.Estimate(testUserID)
	assert.True(t, estimate.Tax.Equal(decimal.RequireFromString("5.00")), "tax %s", estimate.Tax)
	assert.True(t, estimate.Total.Equal(decimal.RequireFromString("59.99")), "total %s", estimate.Total)
}

func TestEstimate_EmptyCart(t *testing.T) {
	f := newFixture(t)

	estimate := f.service.Estimate(testUserID)
	assert.True(t, estimate.Subtotal.IsZero())
	assert.True(t, estimate.Tax.IsZero())
	assert.True(t, estimate.Total.Equal(decimal.RequireFromString("5.00")))
}
