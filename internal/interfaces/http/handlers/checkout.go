// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// MountCardRequest binds the card element to a page container
type MountCardRequest struct {
	ContainerID string `json:"containerId" binding:"required"`
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token := middleware.GetTokenFromContext(c)

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), token, userID, req)
	if err != nil {
		var invalid *checkout.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Checkout validation failed",
				"fields": invalid.Fields,
			})
			return
		}
		if errors.Is(err, checkout.ErrInProgress) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A checkout is already in progress",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	// A successful order releases the gateway session
	if result.Status == checkout.AttemptSucceeded {
		h.checkoutService.Teardown(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout attempt completed",
		"data":    result,
	})
}

// GetEstimate handles GET /checkout/estimate
func (h *CheckoutHandler) GetEstimate(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Estimate calculated successfully",
		"data":    h.checkoutService.Estimate(userID),
	})
}

// MountCard handles POST /checkout/card. It brings up the user's gateway
// session and mounts the tokenizing card input.
func (h *CheckoutHandler) MountCard(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req MountCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	gateway := h.checkoutService.Gateway(userID)
	if err := gateway.Initialize(c.Request.Context()); err != nil {
		var gwErr *payment.GatewayError
		if errors.As(err, &gwErr) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": gwErr.Message,
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment service failed to load. Please refresh the page.",
		})
		return
	}

	if _, err := gateway.MountCardInput(req.ContainerID); err != nil {
		if errors.Is(err, payment.ErrAlreadyMounted) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "A card input is already mounted",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card input mounted successfully",
		"data": gin.H{
			"containerId": req.ContainerID,
			"complete":    false,
		},
	})
}

// ChangeCard handles PUT /checkout/card. Validation errors are advisory and
// never clear what the user has entered.
func (h *CheckoutHandler) ChangeCard(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var details payment.CardDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	gateway := h.checkoutService.Gateway(userID)
	input, mounted := gateway.CardInput()
	if !mounted {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No card input is mounted",
		})
		return
	}

	input.Change(details)

	data := gin.H{
		"complete": input.Complete(),
	}
	if advisory := input.Err(); advisory != nil {
		data["error"] = gin.H{
			"code":    advisory.Code,
			"message": advisory.Message,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card input updated",
		"data":    data,
	})
}

// UnmountCard handles DELETE /checkout/card. Leaving checkout always comes
// through here; the gateway session is dropped with the input.
func (h *CheckoutHandler) UnmountCard(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	h.checkoutService.Teardown(userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Card input unmounted",
	})
}
