// internal/domain/payment/card_input.go
package payment

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// CardDetails carries the raw card data entered into the tokenizing input.
// It exists only inside this package and in transit to the processor.
type CardDetails struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	CVC      string `json:"cvc"`
}

// CardInput is the tokenizing input element. The storefront hands it card
// data as the user types and reads back advisory validation state; the card
// itself is only ever read by the gateway during confirmation.
type CardInput struct {
	mu          sync.Mutex
	containerID string
	details     CardDetails
	advisory    *GatewayError
	complete    bool
}

func newCardInput(containerID string) *CardInput {
	return &CardInput{containerID: containerID}
}

// ContainerID returns the page element this input is bound to
func (c *CardInput) ContainerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.containerID
}

// Change updates the entered card data and revalidates. Validation errors
// are advisory: they gate submission but never clear what was entered.
func (c *CardInput) Change(details CardDetails) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.details = details
	c.advisory = validateCard(details)
	c.complete = c.advisory == nil && details.Number != "" && details.CVC != "" && details.ExpMonth != 0 && details.ExpYear != 0
}

// Complete reports whether the entered card is ready to submit
func (c *CardInput) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.complete
}

// Err returns the current advisory validation error, if any
func (c *CardInput) Err() *GatewayError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advisory
}

func (c *CardInput) snapshot() (CardDetails, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.details, c.complete
}

func validateCard(details CardDetails) *GatewayError {
	digits := strings.ReplaceAll(details.Number, " ", "")
	if digits == "" {
		return &GatewayError{Code: ErrCodeIncompleteCard, Message: "Your card number is incomplete."}
	}
	if len(digits) < 13 || len(digits) > 19 || !luhnValid(digits) {
		return &GatewayError{Code: ErrCodeInvalidNumber, Message: "Your card number is invalid."}
	}

	if details.ExpMonth != 0 || details.ExpYear != 0 {
		if details.ExpMonth < 1 || details.ExpMonth > 12 {
			return &GatewayError{Code: ErrCodeExpiredCard, Message: "Your card's expiration date is invalid."}
		}
		now := time.Now().UTC()
		if details.ExpYear < now.Year() || (details.ExpYear == now.Year() && time.Month(details.ExpMonth) < now.Month()) {
			return &GatewayError{Code: ErrCodeExpiredCard, Message: "Your card's expiration year is in the past."}
		}
	}

	if details.CVC != "" {
		if len(details.CVC) < 3 || len(details.CVC) > 4 || !allDigits(details.CVC) {
			return &GatewayError{Code: ErrCodeIncorrectCVC, Message: "Your card's security code is incomplete."}
		}
	}

	return nil
}

func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}
		d := int(ch - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func allDigits(s string) bool {
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// Redacted returns a log-safe form of the card number
func (d CardDetails) Redacted() string {
	digits := strings.ReplaceAll(d.Number, " ", "")
	if len(digits) < 4 {
		return "****"
	}
	return fmt.Sprintf("****%s", digits[len(digits)-4:])
}
