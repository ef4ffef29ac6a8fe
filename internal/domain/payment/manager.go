// internal/domain/payment/manager.go
package payment

import (
	"context"
	"sync"
	"time"
)

// Manager hands out one Gateway per user checkout session and tears idle
// ones down, so a card input left mounted by an abandoned checkout does not
// live forever.
type Manager struct {
	factory func() Gateway

	mu       sync.Mutex
	sessions map[uint]*managedGateway
}

type managedGateway struct {
	gateway  Gateway
	lastUsed time.Time
}

// NewManager creates a manager building gateways with factory
func NewManager(factory func() Gateway) *Manager {
	return &Manager{
		factory:  factory,
		sessions: make(map[uint]*managedGateway),
	}
}

// ForUser returns the user's gateway, creating it on first use
func (m *Manager) ForUser(userID uint) Gateway {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[userID]
	if !ok {
		session = &managedGateway{gateway: m.factory()}
		m.sessions[userID] = session
	}
	session.lastUsed = time.Now().UTC()
	return session.gateway
}

// Drop unmounts and discards the user's gateway session. Idempotent.
func (m *Manager) Drop(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		session.gateway.Unmount()
		delete(m.sessions, userID)
	}
}

// Sweep drops sessions idle for longer than maxIdle and returns how many
// were dropped
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for userID, session := range m.sessions {
		if session.lastUsed.Before(cutoff) {
			session.gateway.Unmount()
			delete(m.sessions, userID)
			dropped++
		}
	}
	return dropped
}

// Run sweeps idle sessions until ctx is cancelled
func (m *Manager) Run(ctx context.Context, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxIdle)
		}
	}
}
