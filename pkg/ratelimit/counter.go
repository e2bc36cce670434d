package ratelimit

import (
	"context"
	"time"
)

// Counter is an injected increment-and-count capability. The in-memory
// implementation is accurate per process only; swap in the redis one when
// running more than one instance.
type Counter interface {
	// Increment bumps the counter for key within the window and returns the
	// new count.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
