// internal/domain/search/service.go
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/product"
)

// Query narrows a catalog search
type Query struct {
	Term       string `form:"q" binding:"required"`
	CategoryID uint   `form:"categoryId"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	SortBy     string `form:"sortBy"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// Result is one page of search hits
type Result struct {
	Products   []product.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// Service serves catalog search from the engagement API
type Service struct {
	api    *backend.Client
	logger *logrus.Logger
}

// NewService creates a new search service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Search runs a full catalog search
func (s *Service) Search(ctx context.Context, q Query) (*Result, error) {
	query := url.Values{}
	query.Set("q", q.Term)
	if q.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatUint(uint64(q.CategoryID), 10))
	}
	if q.MinPrice != "" {
		query.Set("minPrice", q.MinPrice)
	}
	if q.MaxPrice != "" {
		query.Set("maxPrice", q.MaxPrice)
	}
	if q.SortBy != "" {
		query.Set("sortBy", q.SortBy)
	}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var result Result
	if err := s.api.Do(ctx, http.MethodGet, "/search", "", query, nil, &result); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return &result, nil
}

// Suggestions returns type-ahead completions for a partial term
func (s *Service) Suggestions(ctx context.Context, term string) ([]string, error) {
	query := url.Values{}
	query.Set("q", term)

	var suggestions []string
	if err := s.api.Do(ctx, http.MethodGet, "/search/suggestions", "", query, nil, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to load suggestions: %w", err)
	}
	return suggestions, nil
}

// Trending returns the currently popular search terms
func (s *Service) Trending(ctx context.Context) ([]string, error) {
	var terms []string
	if err := s.api.Do(ctx, http.MethodGet, "/search/trending", "", nil, nil, &terms); err != nil {
		return nil, fmt.Errorf("failed to load trending searches: %w", err)
	}
	return terms, nil
}
