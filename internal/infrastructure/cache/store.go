package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Store is a byte-value cache with per-key TTLs. It backs read-heavy
// aggregations such as the payment dashboard, where a short TTL bounds
// staleness and writes invalidate eagerly.
type Store interface {
	// Get returns the stored value, or ErrCacheMiss when absent or expired
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL, replacing any existing entry
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store
	Close() error
}
