// internal/domain/payment/errors.go
package payment

import "errors"

// ErrorCode classifies processor failures
type ErrorCode string

const (
	ErrCodeCardDeclined       ErrorCode = "card_declined"
	ErrCodeExpiredCard        ErrorCode = "expired_card"
	ErrCodeIncorrectCVC       ErrorCode = "incorrect_cvc"
	ErrCodeInvalidNumber      ErrorCode = "invalid_number"
	ErrCodeIncompleteCard     ErrorCode = "incomplete_card"
	ErrCodeProcessingError    ErrorCode = "processing_error"
	ErrCodeGatewayUnavailable ErrorCode = "gateway_unavailable"
)

// GatewayError is the single error shape every processor failure is
// normalized into, regardless of the SDK behind the gateway
type GatewayError struct {
	Code    ErrorCode
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}

// CardError reports whether the failure came from the card itself rather
// than from the gateway or the transport
func (e *GatewayError) CardError() bool {
	switch e.Code {
	case ErrCodeCardDeclined, ErrCodeExpiredCard, ErrCodeIncorrectCVC, ErrCodeInvalidNumber, ErrCodeIncompleteCard:
		return true
	}
	return false
}

var (
	// ErrNotInitialized is returned when a gateway operation runs before a
	// successful Initialize
	ErrNotInitialized = errors.New("payment gateway not initialized")

	// ErrNoCardInput is returned when confirmation runs without a mounted
	// card input
	ErrNoCardInput = errors.New("no card input mounted")

	// ErrAlreadyMounted is returned when a second card input is mounted
	// before the first is unmounted
	ErrAlreadyMounted = errors.New("card input already mounted")
)
