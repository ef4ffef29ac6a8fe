// internal/interfaces/http/handlers/search.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/search"
)

// SearchHandler handles catalog search endpoints
type SearchHandler struct {
	searchService *search.Service
	config        *config.Config
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *search.Service, cfg *config.Config) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		config:        cfg,
	}
}

// Search handles GET /search
func (h *SearchHandler) Search(c *gin.Context) {
	var q search.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Search term is required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), q)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"data":    result,
	})
}

// GetSuggestions handles GET /search/suggestions
func (h *SearchHandler) GetSuggestions(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search term is required",
		})
		return
	}

	suggestions, err := h.searchService.Suggestions(c.Request.Context(), term)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Suggestions retrieved successfully",
		"data":    suggestions,
	})
}

// GetTrending handles GET /search/trending
func (h *SearchHandler) GetTrending(c *gin.Context) {
	terms, err := h.searchService.Trending(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Trending searches retrieved successfully",
		"data":    terms,
	})
}
