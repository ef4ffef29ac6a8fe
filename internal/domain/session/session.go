// internal/domain/session/session.go
package session

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/pkg/auth"
)

// Identity is the signed-in user as seen by every handler. It comes from the
// validated token, not from a lookup, so reading it is free.
type Identity struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// FromClaims builds the identity carried through the request context
func FromClaims(claims *auth.Claims) Identity {
	return Identity{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// IsAdmin checks whether the identity carries the admin role
func (i Identity) IsAdmin() bool {
	return i.Role == "Admin"
}

// Profile is the account record from the commerce API. The shipping form is
// pre-filled from it.
type Profile struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service resolves the full profile for an identity
type Service struct {
	api    *backend.Client
	logger *logrus.Logger
}

// NewService creates a new session service
func NewService(api *backend.Client, logger *logrus.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Profile fetches the signed-in user's account from the commerce API
func (s *Service) Profile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := s.api.Do(ctx, http.MethodGet, "/auth/me", token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
