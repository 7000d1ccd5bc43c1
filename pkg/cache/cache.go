// Package cache provides pluggable backends for caching PyPI metadata.
//
// Three backends are available:
//
//   - [FileCache]: entries stored as files under a directory, suited to
//     CLI usage (default, survives between runs)
//   - [RedisCache]: entries stored in Redis, suited to shared environments
//     where several machines mirror the same package set
//   - [NullCache]: a no-op backend that disables caching
//
// Keys are hashed with SHA-256 before storage, so arbitrary strings
// (including URLs) are safe to use as keys.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Backend failures are reported through the error; callers typically treat
// them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
