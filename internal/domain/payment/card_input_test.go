// internal/domain/payment/card_input_test.go
package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 4242424242424242 passes Luhn, 4242424242424241 does not
const (
	validNumber   = "4242 4242 4242 4242"
	invalidNumber = "4242424242424241"
)

func futureYear() int {
	return time.Now().UTC().Year() + 2
}

func TestCardInput_CompleteCard(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{
		Number:   validNumber,
		ExpMonth: 12,
		ExpYear:  futureYear(),
		CVC:      "123",
	})

	assert.True(t, input.Complete())
	assert.Nil(t, input.Err())
}

func TestCardInput_InvalidNumber(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{
		Number:   invalidNumber,
		ExpMonth: 12,
		ExpYear:  futureYear(),
		CVC:      "123",
	})

	assert.False(t, input.Complete())
	require.NotNil(t, input.Err())
	assert.Equal(t, ErrCodeInvalidNumber, input.Err().Code)
	assert.Equal(t, "Your card number is invalid.", input.Err().Message)
}

func TestCardInput_ExpiredCard(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{
		Number:   validNumber,
		ExpMonth: 1,
		ExpYear:  2020,
		CVC:      "123",
	})

	assert.False(t, input.Complete())
	require.NotNil(t, input.Err())
	assert.Equal(t, ErrCodeExpiredCard, input.Err().Code)
}

func TestCardInput_ShortCVC(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{
		Number:   validNumber,
		ExpMonth: 12,
		ExpYear:  futureYear(),
		CVC:      "12",
	})

	assert.False(t, input.Complete())
	require.NotNil(t, input.Err())
	assert.Equal(t, ErrCodeIncorrectCVC, input.Err().Code)
}

func TestCardInput_AdvisoryErrorKeepsEnteredData(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{
		Number:   invalidNumber,
		ExpMonth: 12,
		ExpYear:  futureYear(),
		CVC:      "123",
	})
	require.NotNil(t, input.Err())

	// The entered data survives the validation error
	details, _ := input.snapshot()
	assert.Equal(t, invalidNumber, details.Number)
	assert.Equal(t, "123", details.CVC)

	// Correcting the number clears the advisory error
	input.Change(CardDetails{
		Number:   validNumber,
		ExpMonth: 12,
		ExpYear:  futureYear(),
		CVC:      "123",
	})
	assert.Nil(t, input.Err())
	assert.True(t, input.Complete())
}

func TestCardInput_EmptyNumberIsIncomplete(t *testing.T) {
	input := newCardInput("card-element")
	input.Change(CardDetails{})

	assert.False(t, input.Complete())
	require.NotNil(t, input.Err())
	assert.Equal(t, ErrCodeIncompleteCard, input.Err().Code)
}

func TestCardDetails_Redacted(t *testing.T) {
	details := CardDetails{Number: validNumber}
	assert.Equal(t, "****4242", details.Redacted())

	assert.Equal(t, "****", CardDetails{Number: "42"}.Redacted())
}
