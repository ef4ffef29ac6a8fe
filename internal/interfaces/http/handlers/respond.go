// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/backend"
)

// respondUpstreamError maps a backend call failure onto the gateway's own
// response: upstream API errors pass through with their status and message,
// transport failures become 502
func respondUpstreamError(c *gin.Context, err error) {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{
			"error": apiErr.Message,
		})
		return
	}

	if errors.Is(err, backend.ErrNetwork) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Upstream service unavailable",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
