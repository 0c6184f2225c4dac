package cachestore

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Sharded is an in-process Store that bounds its size and evicts the oldest
// entries when full.
type Sharded struct {
	client *sturdyc.Client[[]byte]
}

// NewSharded creates a store holding at most capacity entries. Every entry
// lives for ttl; the ttl passed to Set is ignored.
func NewSharded(capacity, shards int, ttl time.Duration) *Sharded {
	if shards <= 0 {
		shards = 10
	}
	return &Sharded{client: sturdyc.New[[]byte](capacity, shards, ttl, 10)}
}

func (s *Sharded) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.client.Get(key)
	return v, ok, nil
}

func (s *Sharded) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.client.Set(key, value)
	return nil
}

func (s *Sharded) Delete(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}
