// internal/domain/payment/manager_test.go
package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway records unmounts; everything else is inert
type fakeGateway struct {
	unmounted int
}

func (f *fakeGateway) Initialize(ctx context.Context) error { return nil }
func (f *fakeGateway) Ready() bool                          { return true }
func (f *fakeGateway) MountCardInput(containerID string) (*CardInput, error) {
	return newCardInput(containerID), nil
}
func (f *fakeGateway) CardInput() (*CardInput, bool) { return nil, false }
func (f *fakeGateway) ConfirmCardPayment(ctx context.Context, clientSecret string, billing BillingDetails) (*ConfirmedIntent, error) {
	return &ConfirmedIntent{ID: "pi_fake", Status: "succeeded"}, nil
}
func (f *fakeGateway) Unmount() { f.unmounted++ }

func TestManager_ForUserReusesSession(t *testing.T) {
	manager := NewManager(func() Gateway { return &fakeGateway{} })

	a := manager.ForUser(1)
	b := manager.ForUser(1)
	assert.Same(t, a, b)

	other := manager.ForUser(2)
	assert.NotSame(t, a, other)
}

func TestManager_DropUnmountsAndDiscards(t *testing.T) {
	manager := NewManager(func() Gateway { return &fakeGateway{} })

	gw := manager.ForUser(1).(*fakeGateway)
	manager.Drop(1)
	assert.Equal(t, 1, gw.unmounted)

	// Idempotent
	manager.Drop(1)
	assert.Equal(t, 1, gw.unmounted)

	// Next use builds a fresh session
	assert.NotSame(t, gw, manager.ForUser(1))
}

func TestManager_SweepDropsIdleSessions(t *testing.T) {
	manager := NewManager(func() Gateway { return &fakeGateway{} })

	gw := manager.ForUser(1).(*fakeGateway)
	manager.ForUser(2)

	time.Sleep(20 * time.Millisecond)
	manager.ForUser(2) // keep user 2 fresh

	dropped := manager.Sweep(10 * time.Millisecond)
	require.Equal(t, 1, dropped)
	assert.Equal(t, 1, gw.unmounted)

	assert.Equal(t, 0, manager.Sweep(time.Minute))
}
