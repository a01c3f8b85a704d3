// Package cache provides the byte caches used by the render pipeline.
//
// Four backends implement [Cache]:
//
//   - [FileCache] stores entries as JSON files under the XDG cache directory
//   - [NullCache] never stores anything
//   - [RedisCache] stores entries in Redis with native expiry
//   - [MongoCache] stores entries in a MongoDB collection with a TTL index
//
// Keys are produced by a [Keyer] so CLI and API runs share entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is reported with
// hit=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Programs and artifacts are pure functions of their
// inputs, so they only expire to bound storage.
const (
	TTLProgram  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
