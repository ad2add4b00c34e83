package ports

import (
	"context"
	"time"
)

// Optional cache for serialized planning results keyed by an input fingerprint.
type PlanCache interface {
	// Return the cached payload and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}
