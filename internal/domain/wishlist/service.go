// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/observable"
)

// AddRequest represents an add-to-wishlist request
type AddRequest struct {
	ProductID uint `json:"productId" binding:"required"`
}

// Service mirrors the engagement API wishlist per user, with a live
// observable value like the cart
type Service struct {
	api    *backend.Client
	logger *logrus.Logger

	mu     sync.Mutex
	states map[uint]*observable.Value[Wishlist]
}

// NewService creates a new wishlist service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
		states: make(map[uint]*observable.Value[Wishlist]),
	}
}

// State returns the observable wishlist for the given user
func (s *Service) State(userID uint) *observable.Value[Wishlist] {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		state = observable.NewValue(Empty())
		s.states[userID] = state
	}
	return state
}

// Load fetches the wishlist from the engagement API
func (s *Service) Load(ctx context.Context, token string, userID uint) (Wishlist, error) {
	var current Wishlist
	if err := s.api.Do(ctx, http.MethodGet, "/wishlist", token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to load wishlist: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// Add puts a product on the wishlist; adding a product already on the list
// is a no-op on the API side
func (s *Service) Add(ctx context.Context, token string, userID uint, req AddRequest) (Wishlist, error) {
	var current Wishlist
	if err := s.api.Do(ctx, http.MethodPost, "/wishlist", token, nil, req, &current); err != nil {
		return Empty(), fmt.Errorf("failed to add to wishlist: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// Remove takes a product off the wishlist
func (s *Service) Remove(ctx context.Context, token string, userID, productID uint) (Wishlist, error) {
	var current Wishlist
	path := fmt.Sprintf("/wishlist/%d", productID)
	if err := s.api.Do(ctx, http.MethodDelete, path, token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}
