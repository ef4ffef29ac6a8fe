// internal/domain/review/service.go
package review

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
)

// Service serves product reviews from the engagement API
type Service struct {
	api    *backend.Client
	logger *logrus.Logger
}

// NewService creates a new review service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// ListForProduct returns every review of one product, newest first
func (s *Service) ListForProduct(ctx context.Context, productID uint) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/reviews/product/%d", productID)
	if err := s.api.Do(ctx, http.MethodGet, path, "", nil, nil, &reviews); err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

// StatsForProduct returns the rating aggregate of one product
func (s *Service) StatsForProduct(ctx context.Context, productID uint) (*Stats, error) {
	var stats Stats
	path := fmt.Sprintf("/reviews/product/%d/stats", productID)
	if err := s.api.Do(ctx, http.MethodGet, path, "", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}
	return &stats, nil
}

// Mine returns the signed-in user's reviews
func (s *Service) Mine(ctx context.Context, token string) ([]Review, error) {
	var reviews []Review
	if err := s.api.Do(ctx, http.MethodGet, "/reviews/mine", token, nil, nil, &reviews); err != nil {
		return nil, fmt.Errorf("failed to load own reviews: %w", err)
	}
	return reviews, nil
}

// Create submits a new review; the API rejects duplicates per product
func (s *Service) Create(ctx context.Context, token string, req CreateRequest) (*Review, error) {
	var created Review
	if err := s.api.Do(ctx, http.MethodPost, "/reviews", token, nil, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &created, nil
}

// Update edits the user's existing review
func (s *Service) Update(ctx context.Context, token string, reviewID uint, req UpdateRequest) (*Review, error) {
	var updated Review
	path := fmt.Sprintf("/reviews/%d", reviewID)
	if err := s.api.Do(ctx, http.MethodPut, path, token, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &updated, nil
}

// Delete removes the user's review
func (s *Service) Delete(ctx context.Context, token string, reviewID uint) error {
	path := fmt.Sprintf("/reviews/%d", reviewID)
	if err := s.api.Do(ctx, http.MethodDelete, path, token, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
