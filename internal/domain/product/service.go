// internal/domain/product/service.go
package product

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
)

// Service serves the catalog from the commerce API. Catalog reads are
// public; no token is forwarded.
type Service struct {
	api    *backend.Client
	logger *logrus.Logger
}

// NewService creates a new product service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// List returns one page of products matching the filter
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	query := url.Values{}
	if filter.CategoryID != 0 {
		query.Set("categoryId", strconv.FormatUint(uint64(filter.CategoryID), 10))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MinPrice != "" {
		query.Set("minPrice", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query.Set("maxPrice", filter.MaxPrice)
	}
	if filter.SortBy != "" {
		query.Set("sortBy", filter.SortBy)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	var result ListResult
	if err := s.api.Do(ctx, http.MethodGet, "/products", "", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get returns a single product by id
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), "", nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Featured returns the products flagged for the landing page
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := s.api.Do(ctx, http.MethodGet, "/products/featured", "", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories returns the catalog categories
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.api.Do(ctx, http.MethodGet, "/categories", "", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
