// Package cachestore provides backends for caching site-wide API responses
// (website info, group listings) so several processes can share them.
package cachestore

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

const keyPrefix = "nameless:"

// Store is a byte-oriented cache. A miss is reported with ok=false and a nil
// error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key builds a fixed-length key from arbitrary parts, suitable for backends
// with key length or charset limits.
func Key(parts ...string) string {
	sum := xxh3.HashString128(strings.Join(parts, "\x00")).Bytes()
	return keyPrefix + hex.EncodeToString(sum[:])
}
