// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// ProfileHandler handles the signed-in user's profile endpoints
type ProfileHandler struct {
	sessionService *session.Service
	config         *config.Config
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(sessionService *session.Service, cfg *config.Config) *ProfileHandler {
	return &ProfileHandler{
		sessionService: sessionService,
		config:         cfg,
	}
}

// GetProfile handles GET /auth/me
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	token := middleware.GetTokenFromContext(c)

	profile, err := h.sessionService.Profile(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// GetIdentity handles GET /auth/identity, serving the token claims without
// an upstream call
func (h *ProfileHandler) GetIdentity(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Identity retrieved successfully",
		"data":    identity,
	})
}
