package cachestore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-process Store.
type Memory struct {
	cache *cache.Cache
}

func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{cache: cache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	x, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return x.([]byte), true, nil
}

// Set stores value; a zero ttl uses the store default.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *Memory) Flush() {
	m.cache.Flush()
}
