// internal/domain/notification/service.go
package notification

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/observable"
)

// Service mirrors the engagement API notification feed per user. The
// observable value feeds the SSE stream endpoint.
type Service struct {
	api    *backend.Client
	logger *logrus.Logger

	mu     sync.Mutex
	states map[uint]*observable.Value[Feed]
}

// NewService creates a new notification service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
		states: make(map[uint]*observable.Value[Feed]),
	}
}

// State returns the observable feed for the given user
func (s *Service) State(userID uint) *observable.Value[Feed] {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[userID]
	if !ok {
		state = observable.NewValue(Empty())
		s.states[userID] = state
	}
	return state
}

// Load fetches the feed from the engagement API
func (s *Service) Load(ctx context.Context, token string, userID uint) (Feed, error) {
	var current Feed
	if err := s.api.Do(ctx, http.MethodGet, "/notifications", token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to load notifications: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// MarkRead marks one notification as read
func (s *Service) MarkRead(ctx context.Context, token string, userID, notificationID uint) (Feed, error) {
	var current Feed
	path := fmt.Sprintf("/notifications/%d/read", notificationID)
	if err := s.api.Do(ctx, http.MethodPut, path, token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// MarkAllRead marks the whole feed as read
func (s *Service) MarkAllRead(ctx context.Context, token string, userID uint) (Feed, error) {
	var current Feed
	if err := s.api.Do(ctx, http.MethodPut, "/notifications/read-all", token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}

// Delete removes one notification from the feed
func (s *Service) Delete(ctx context.Context, token string, userID, notificationID uint) (Feed, error) {
	var current Feed
	path := fmt.Sprintf("/notifications/%d", notificationID)
	if err := s.api.Do(ctx, http.MethodDelete, path, token, nil, nil, &current); err != nil {
		return Empty(), fmt.Errorf("failed to delete notification: %w", err)
	}

	s.State(userID).Set(current)
	return current, nil
}
