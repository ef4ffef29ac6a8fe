// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *notification.Service
	config              *config.Config
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notification.Service, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		config:              cfg,
	}
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token := middleware.GetTokenFromContext(c)

	feed, err := h.notificationService.Load(c.Request.Context(), token, userID)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data":    feed,
	})
}

// MarkRead handles PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token := middleware.GetTokenFromContext(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid notification ID",
		})
		return
	}

	feed, err := h.notificationService.MarkRead(c.Request.Context(), token, userID, uint(notificationID))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
		"data":    feed,
	})
}

// MarkAllRead handles PUT /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token := middleware.GetTokenFromContext(c)

	feed, err := h.notificationService.MarkAllRead(c.Request.Context(), token, userID)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"data":    feed,
	})
}

// DeleteNotification handles DELETE /notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	token := middleware.GetTokenFromContext(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid notification ID",
		})
		return
	}

	feed, err := h.notificationService.Delete(c.Request.Context(), token, userID, uint(notificationID))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification deleted successfully",
		"data":    feed,
	})
}

// StreamNotifications handles GET /notifications/stream. The feed is pushed
// over SSE: the current value first, then every update until the client
// disconnects.
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	ctx := c.Request.Context()

	state := h.notificationService.State(userID)
	updates := state.Subscribe(ctx)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("feed", state.Get())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case feed, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("feed", feed)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
