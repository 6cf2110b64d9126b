// Package cache stores rendered pages and other derived artifacts.
//
// The [Cache] interface is a byte-oriented key/value store with TTLs. Three
// backends are provided:
//   - [FileCache]: files under a directory, for the CLI
//   - [RedisCache]: a Redis server, for multi-instance servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are built by a [Keyer] so every caller agrees on the layout, and
// [ScopedKeyer] namespaces them per tenant or per site.
//
// The package also carries the retry helpers ([Retryable], [Retry]) used
// for transient persistence failures.
package cache

import (
	"context"
	"fmt"
	"time"
)

// TTLs for cached artifacts.
const (
	// TTLPage is how long a rendered page stays cached. Pages are keyed by
	// document hash, so a stale entry is never served for changed content.
	TTLPage = 24 * time.Hour

	// TTLSite is how long the slug -> published hash pointer is kept.
	TTLSite = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Backend names accepted by New.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend  string
	Dir      string
	RedisURL string
}

// New returns the backend named by cfg.Backend. An empty backend is "none".
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{URL: cfg.RedisURL})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
