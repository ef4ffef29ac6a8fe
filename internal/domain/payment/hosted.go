// internal/domain/payment/hosted.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/pkg/waitfor"
)

// configResponse is the commerce API's payment configuration
type configResponse struct {
	PublishableKey string `json:"publishableKey"`
}

// HostedGateway drives a hosted-checkout payment processor over its REST
// API using the storefront's publishable key. Card data enters through the
// mounted CardInput and leaves only toward the processor.
type HostedGateway struct {
	commerce   *backend.Client
	apiURL     string
	sdkWait    time.Duration
	sdkPoll    time.Duration
	httpClient *http.Client
	logger     *logrus.Logger

	mu             sync.Mutex
	publishableKey string
	initialized    bool
	input          *CardInput
}

// NewHostedGateway creates a gateway client for the configured processor
func NewHostedGateway(commerce *backend.Client, cfg *config.Config, logger *logrus.Logger) *HostedGateway {
	return &HostedGateway{
		commerce: commerce,
		apiURL:   strings.TrimRight(cfg.Payment.APIURL, "/"),
		sdkWait:  cfg.Payment.SDKWait,
		sdkPoll:  cfg.Payment.SDKPollEvery,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Initialize fetches the publishable key and waits for the processor API
// within the bounded window. Idempotent.
func (g *HostedGateway) Initialize(ctx context.Context) error {
	g.mu.Lock()
	if g.initialized {
		g.mu.Unlock()
		return nil
	}
	g.mu.Unlock()

	var cfg configResponse
	if err := g.commerce.Do(ctx, http.MethodGet, "/payment/config", "", nil, nil, &cfg); err != nil {
		return &GatewayError{
			Code:    ErrCodeGatewayUnavailable,
			Message: "Payment configuration is unavailable. Please try again later.",
		}
	}
	if cfg.PublishableKey == "" {
		return &GatewayError{
			Code:    ErrCodeGatewayUnavailable,
			Message: "Payment publishable key not configured",
		}
	}

	// Bounded wait for the processor, fail fast instead of hanging
	waitCtx, cancel := context.WithTimeout(ctx, g.sdkWait)
	defer cancel()

	if err := waitfor.Until(waitCtx, g.sdkPoll, g.reachable); err != nil {
		g.logger.WithError(err).Error("Payment processor did not become reachable")
		return &GatewayError{
			Code:    ErrCodeGatewayUnavailable,
			Message: "Payment service failed to load. Please refresh the page.",
		}
	}

	g.mu.Lock()
	g.publishableKey = cfg.PublishableKey
	g.initialized = true
	g.mu.Unlock()

	g.logger.Info("Payment gateway initialized")
	return nil
}

// Ready reports whether Initialize has succeeded
func (g *HostedGateway) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.initialized
}

// MountCardInput creates and attaches the tokenizing input
func (g *HostedGateway) MountCardInput(containerID string) (*CardInput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.initialized {
		return nil, ErrNotInitialized
	}
	if g.input != nil {
		return nil, ErrAlreadyMounted
	}

	g.input = newCardInput(containerID)
	return g.input, nil
}

// CardInput returns the mounted input, if any
func (g *HostedGateway) CardInput() (*CardInput, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.input, g.input != nil
}

// Unmount tears down the mounted input. Idempotent.
func (g *HostedGateway) Unmount() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.input = nil
}

// ConfirmCardPayment tokenizes the mounted card and confirms the intent
func (g *HostedGateway) ConfirmCardPayment(ctx context.Context, clientSecret string, billing BillingDetails) (*ConfirmedIntent, error) {
	g.mu.Lock()
	key := g.publishableKey
	initialized := g.initialized
	input := g.input
	g.mu.Unlock()

	if !initialized {
		return nil, ErrNotInitialized
	}
	if input == nil {
		return nil, ErrNoCardInput
	}

	details, complete := input.snapshot()
	if !complete {
		if advisory := input.Err(); advisory != nil {
			return nil, advisory
		}
		return nil, &GatewayError{Code: ErrCodeIncompleteCard, Message: "Your card details are incomplete."}
	}

	methodID, err := g.createPaymentMethod(ctx, key, details, billing)
	if err != nil {
		return nil, err
	}

	intentID, ok := intentIDFromClientSecret(clientSecret)
	if !ok {
		return nil, &GatewayError{Code: ErrCodeProcessingError, Message: "Invalid payment client secret"}
	}

	confirmReq := map[string]interface{}{
		"client_secret":  clientSecret,
		"payment_method": methodID,
	}

	var intent ConfirmedIntent
	path := fmt.Sprintf("/payment_intents/%s/confirm", intentID)
	if err := g.call(ctx, key, path, confirmReq, &intent); err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"intent_id": intent.ID,
		"status":    intent.Status,
		"card":      details.Redacted(),
	}).Info("Card payment confirmed")

	return &intent, nil
}

func (g *HostedGateway) createPaymentMethod(ctx context.Context, key string, details CardDetails, billing BillingDetails) (string, error) {
	req := map[string]interface{}{
		"type": "card",
		"card": map[string]interface{}{
			"number":    strings.ReplaceAll(details.Number, " ", ""),
			"exp_month": details.ExpMonth,
			"exp_year":  details.ExpYear,
			"cvc":       details.CVC,
		},
		"billing_details": billing,
	}

	var method struct {
		ID string `json:"id"`
	}
	if err := g.call(ctx, key, "/payment_methods", req, &method); err != nil {
		return "", err
	}
	return method.ID, nil
}

// call posts to the processor API and normalizes every failure into
// *GatewayError
func (g *HostedGateway) call(ctx context.Context, key, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &GatewayError{Code: ErrCodeProcessingError, Message: "Failed to encode payment request"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return &GatewayError{Code: ErrCodeProcessingError, Message: "Failed to build payment request"}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Code: ErrCodeProcessingError, Message: "Payment request failed. Please try again."}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &GatewayError{Code: ErrCodeProcessingError, Message: "Payment request failed. Please try again."}
	}

	if resp.StatusCode >= 400 {
		return normalizeProcessorError(respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return &GatewayError{Code: ErrCodeProcessingError, Message: "Unexpected response from payment service"}
		}
	}
	return nil
}

// processorError is the error envelope the processor API answers with
type processorError struct {
	Error struct {
		Type        string `json:"type"`
		Code        string `json:"code"`
		DeclineCode string `json:"decline_code"`
		Message     string `json:"message"`
	} `json:"error"`
}

func normalizeProcessorError(body []byte) *GatewayError {
	var parsed processorError
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		return &GatewayError{Code: ErrCodeProcessingError, Message: "Payment failed. Please try again."}
	}

	code := ErrCodeProcessingError
	switch {
	case parsed.Error.Code == "expired_card":
		code = ErrCodeExpiredCard
	case parsed.Error.Code == "incorrect_cvc":
		code = ErrCodeIncorrectCVC
	case parsed.Error.Code == "card_declined", parsed.Error.DeclineCode != "":
		code = ErrCodeCardDeclined
	case parsed.Error.Type == "card_error":
		code = ErrCodeCardDeclined
	}

	return &GatewayError{Code: code, Message: parsed.Error.Message}
}

func (g *HostedGateway) reachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL, nil)
	if err != nil {
		return false
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// intentIDFromClientSecret extracts the intent id from a client secret of
// the form <intent-id>_secret_<nonce>
func intentIDFromClientSecret(clientSecret string) (string, bool) {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return "", false
	}
	return clientSecret[:idx], true
}
