// Package cache stores rendered buffers so that repeated renders of the same
// viewport are served without recomputation.
//
// # Backends
//
//   - [FileCache]: one file per entry under a cache directory (CLI default)
//   - [RedisCache]: a shared redis server (API deployments)
//   - [NullCache]: stores nothing, used when caching is disabled
//
// # Keys
//
// Keys are produced by a [Keyer] from the parameters that determine the
// pixels of a render. The worker count is deliberately not part of the key:
// a render is byte-identical for any number of workers.
//
// Cache errors are never fatal to callers. A failed read is treated as a
// miss and a failed write is logged and dropped.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as a miss (false) with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl stores the entry
	// without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default time-to-live values.
const (
	// TTLRender applies to rendered buffers. Renders are deterministic, so
	// the TTL only bounds disk and memory usage.
	TTLRender = 7 * 24 * time.Hour
)
