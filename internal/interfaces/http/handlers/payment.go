// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// PaymentHandler handles payment configuration endpoints
type PaymentHandler struct {
	commerce *backend.Client
	config   *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(commerce *backend.Client, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		commerce: commerce,
		config:   cfg,
	}
}

// GetConfig handles GET /payment/config. The publishable key is public by
// definition; the secret key never passes through this service.
func (h *PaymentHandler) GetConfig(c *gin.Context) {
	token := middleware.GetTokenFromContext(c)

	var cfg struct {
		PublishableKey string `json:"publishableKey"`
	}
	if err := h.commerce.Do(c.Request.Context(), http.MethodGet, "/payment/config", token, nil, nil, &cfg); err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment configuration retrieved successfully",
		"data":    cfg,
	})
}
