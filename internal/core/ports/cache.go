package ports

import (
	"context"
	"time"
)

// Cache is a key-value store with TTL used as a read-through cache over the
// credential store. Get reports absence via the boolean, not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
