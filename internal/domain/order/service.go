// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
)

// Service wraps the commerce API order endpoints
type Service struct {
	api    *backend.Client
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// List returns the current user's order history
func (s *Service) List(ctx context.Context, token string) ([]OrderListItem, error) {
	var orders []OrderListItem
	if err := s.api.Do(ctx, http.MethodGet, "/orders", token, nil, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

// Get returns one order with its item snapshots
func (s *Service) Get(ctx context.Context, token string, orderID uint) (*Order, error) {
	var ord Order
	path := fmt.Sprintf("/orders/%d", orderID)
	if err := s.api.Do(ctx, http.MethodGet, path, token, nil, nil, &ord); err != nil {
		return nil, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	return &ord, nil
}

// Create places an order without an upfront payment. The commerce API
// creates it synchronously with payment status unpaid.
func (s *Service) Create(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	var ord Order
	if err := s.api.Do(ctx, http.MethodPost, "/orders", token, nil, req, &ord); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     ord.ID,
		"order_number": ord.OrderNumber,
	}).Info("Order created")

	return &ord, nil
}

// Cancel cancels a pending order
func (s *Service) Cancel(ctx context.Context, token string, orderID uint) error {
	path := fmt.Sprintf("/orders/%d/cancel", orderID)
	if err := s.api.Do(ctx, http.MethodPut, path, token, nil, struct{}{}, nil); err != nil {
		return fmt.Errorf("failed to cancel order %d: %w", orderID, err)
	}
	return nil
}
