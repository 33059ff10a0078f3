// Package cache defines the key-value store used as a read-through
// accelerator for notes list queries. The store is advisory only: callers
// must treat every error as a miss and keep serving from the database.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a key-value store with per-entry expiry and prefix deletion.
// Redis backs it in production; an in-memory implementation serves tests
// and deployments without Redis.
type Store interface {
	// Get returns the value stored under key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetEx stores value under key for the given lifetime.
	SetEx(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeleteByPrefix removes every key that starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
