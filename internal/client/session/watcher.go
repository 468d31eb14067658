package session

import (
	"context"
	"time"
)

const refreshTimeout = 5 * time.Second

// Watch re-reads the session every interval until ctx is done, so a session
// that ends on the server is noticed without user action.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			_, _ = s.Refresh(rctx)
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
