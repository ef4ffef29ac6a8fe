// internal/pkg/waitfor/waitfor.go
package waitfor

import (
	"context"
	"fmt"
	"time"
)

// ErrTimedOut is returned when the wait window closes before the probe succeeds
var ErrTimedOut = fmt.Errorf("wait timed out")

// Until polls probe at the given interval until it returns true or ctx is
// done. The caller bounds the wait through the context deadline, so a dead
// dependency fails fast instead of hanging.
func Until(ctx context.Context, every time.Duration, probe func(ctx context.Context) bool) error {
	if probe(ctx) {
		return nil
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return ErrTimedOut
			}
			return ctx.Err()
		case <-ticker.C:
			if probe(ctx) {
				return nil
			}
		}
	}
}
