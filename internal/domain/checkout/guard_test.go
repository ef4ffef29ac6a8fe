// internal/domain/checkout/guard_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGuard_BlocksWhileHeld(t *testing.T) {
	g := newLocalGuard()

	require.True(t, g.acquire(7, "attempt-a"))
	assert.False(t, g.acquire(7, "attempt-b"))

	// Other users are unaffected
	assert.True(t, g.acquire(8, "attempt-c"))

	g.release(7, "attempt-a")
	assert.True(t, g.acquire(7, "attempt-b"))
}

func TestLocalGuard_ReleaseRequiresOwnership(t *testing.T) {
	g := newLocalGuard()

	require.True(t, g.acquire(7, "attempt-a"))

	// A stale attempt cannot free the current holder's slot
	g.release(7, "attempt-stale")
	assert.False(t, g.acquire(7, "attempt-b"))

	g.release(7, "attempt-a")
	assert.True(t, g.acquire(7, "attempt-b"))
}

func TestLocalGuard_ReleaseUnheldIsNoop(t *testing.T) {
	g := newLocalGuard()

	g.release(7, "attempt-a")
	assert.True(t, g.acquire(7, "attempt-a"))
}
