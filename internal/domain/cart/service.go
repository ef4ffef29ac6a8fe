// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/observable"
)

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateItemRequest represents a quantity change for one cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Service mirrors the commerce API cart for each user. Every mutation goes
// to the API and the authoritative response replaces the whole observed
// value, so the gateway never holds locally derived totals.
type Service struct {
	api    *backend.Client
	logger *logrus.Logger

	mu     sync.Mutex
	states map[uint]*observable.Value[Cart]
}

// NewService creates a new cart service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
		states: make(map[uint]*observable.Value[Cart]),
	}
}

// State returns the observable cart for the given user
func (s *Service) State(userID uint) *observable.Value[Cart] {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		state = observable.NewValue(Empty())
		s.states[userID] = state
	}
	return state
}

// Load fetches the current cart from the commerce API
func (s *Service) Load(ctx context.Context, token string, userID uint) (Cart, error) {
	var current Cart
	if err := s.api.Do(ctx, http.MethodGet, "/cart", token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to load cart: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// AddItem adds a product to the cart and returns the new authoritative cart
func (s *Service) AddItem(ctx context.Context, token string, userID uint, req AddItemRequest) (Cart, error) {
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		return Empty(), fmt.Errorf("quantity must be at least 1")
	}

	// Reject what the last known stock level already rules out. The API
	// performs the authoritative check on top of this.
	if item, ok := s.State(userID).Get().ItemByProductID(req.ProductID); ok {
		if item.Quantity+req.Quantity > item.StockQuantity {
			return Empty(), fmt.Errorf("insufficient stock. Available: %d", item.StockQuantity)
		}
	}

	var current Cart
	if err := s.api.Do(ctx, http.MethodPost, "/cart/items", token, nil, req, &current); err != nil {
		return Empty(), fmt.Errorf("failed to add item to cart: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// UpdateQuantity changes the quantity of one cart line
func (s *Service) UpdateQuantity(ctx context.Context, token string, userID, itemID uint, quantity int) (Cart, error) {
	if quantity < 1 {
		return Empty(), fmt.Errorf("quantity must be at least 1")
	}

	if item, ok := s.State(userID).Get().ItemByID(itemID); ok {
		if quantity > item.StockQuantity {
			return Empty(), fmt.Errorf("insufficient stock. Available: %d", item.StockQuantity)
		}
	}

	var current Cart
	path := fmt.Sprintf("/cart/items/%d", itemID)
	if err := s.api.Do(ctx, http.MethodPut, path, token, nil, UpdateItemRequest{Quantity: quantity}, &current); err != nil {
		return Empty(), fmt.Errorf("failed to update cart item: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// RemoveItem removes a cart line
func (s *Service) RemoveItem(ctx context.Context, token string, userID, itemID uint) (Cart, error) {
	var current Cart
	path := fmt.Sprintf("/cart/items/%d", itemID)
	if err := s.api.Do(ctx, http.MethodDelete, path, token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to remove cart item: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// Clear removes every line from the cart
func (s *Service) Clear(ctx context.Context, token string, userID uint) error {
	if err := s.api.Do(ctx, http.MethodDelete, "/cart", token, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.State(userID).Set(Empty())
	return nil
}
