package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
)

// Store is a byte-value key store with per-entry TTL. Get returns
// pkgredis.ErrNotFound for a missing key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) (int64, error)
}

type localEntry struct {
	data    []byte
	expires time.Time
}

// LocalStore is an in-process LRU Store.
type LocalStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, localEntry]
	now   func() time.Time
}

func NewLocalStore(size int) *LocalStore {
	if size <= 0 {
		size = 256
	}
	c, _ := lru.New[string, localEntry](size)
	return &LocalStore{cache: c, now: time.Now}
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	entry, ok := s.cache.Get(key)
	if !ok {
		return nil, pkgredis.ErrNotFound
	}
	if !entry.expires.IsZero() && !s.now().Before(entry.expires) {
		s.cache.Remove(key)
		return nil, pkgredis.ErrNotFound
	}
	return entry.data, nil
}

func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := localEntry{data: value}
	if ttl > 0 {
		entry.expires = s.now().Add(ttl)
	}
	s.cache.Add(key, entry)
	return nil
}

func (s *LocalStore) DeletePrefix(_ context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, key := range s.cache.Keys() {
		if strings.HasPrefix(key, prefix) && s.cache.Remove(key) {
			n++
		}
	}
	return n, nil
}

func (s *LocalStore) Len() int {
	return s.cache.Len()
}
