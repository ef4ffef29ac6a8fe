// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5022/api", cfg.Backend.CommerceURL)
	assert.Equal(t, "http://localhost:3000/api", cfg.Backend.EngagementURL)
	assert.Equal(t, "https://api.stripe.com/v1", cfg.Payment.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Payment.SDKWait)
	assert.Equal(t, 100*time.Millisecond, cfg.Payment.SDKPollEvery)
	assert.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, cfg.Checkout.ShippingCost.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, "USD", cfg.Checkout.Currency)
	assert.Equal(t, 2*time.Minute, cfg.Checkout.LockTTL)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHECKOUT_TAX_RATE", "0.08")
	t.Setenv("CHECKOUT_SHIPPING_COST", "7.50")
	t.Setenv("PAYMENT_SDK_WAIT", "2s")
	t.Setenv("COMMERCE_API_URL", "http://commerce.internal/api")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.True(t, cfg.Checkout.ShippingCost.Equal(decimal.RequireFromString("7.50")))
	assert.Equal(t, 2*time.Second, cfg.Payment.SDKWait)
	assert.Equal(t, "http://commerce.internal/api", cfg.Backend.CommerceURL)
	assert.True(t, cfg.IsProduction())
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_NegativeTaxRate(t *testing.T) {
	t.Setenv("CHECKOUT_TAX_RATE", "-0.1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECKOUT_TAX_RATE")
}

func TestValidate_ZeroSDKWait(t *testing.T) {
	t.Setenv("PAYMENT_SDK_WAIT", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAYMENT_SDK_WAIT")
}

func TestGetRedisAddr(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
}
