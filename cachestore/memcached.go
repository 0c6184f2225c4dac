package cachestore

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	pkgerrors "github.com/pkg/errors"
)

// memcached reads expirations above this many seconds as a unix timestamp.
const maxRelativeExpiration = 30 * 24 * time.Hour

type Memcached struct {
	mc  *memcache.Client
	now func() time.Time
}

func NewMemcached(server ...string) *Memcached {
	return &Memcached{mc: memcache.New(server...), now: time.Now}
}

func (m *Memcached) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, err := m.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.Wrap(err, "memcached get")
	}
	return item.Value, true, nil
}

func (m *Memcached) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	err := m.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expiration(ttl, m.now()),
	})
	if err != nil {
		return pkgerrors.Wrap(err, "memcached set")
	}
	return nil
}

func (m *Memcached) Delete(_ context.Context, key string) error {
	err := m.mc.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return pkgerrors.Wrap(err, "memcached delete")
	}
	return nil
}

// expiration converts ttl to memcached's expiration field. Zero keeps the item
// until evicted; partial seconds round up so a short ttl never means forever.
func expiration(ttl time.Duration, now time.Time) int32 {
	switch {
	case ttl <= 0:
		return 0
	case ttl > maxRelativeExpiration:
		return int32(now.Add(ttl).Unix())
	default:
		return int32((ttl + time.Second - 1) / time.Second)
	}
}
