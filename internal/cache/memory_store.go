package cache

import (
	"context"

	"github.com/coocood/freecache"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a bounded in-process store, used when no redis is
// configured (and in tests). Entries are evicted under memory pressure;
// an evicted entry simply looks like a miss.
type MemoryStore struct {
	fc *freecache.Cache
}

func NewMemoryStore(sizeBytes int) *MemoryStore {
	return &MemoryStore{
		fc: freecache.NewCache(sizeBytes),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	val, err := s.fc.Get([]byte(key))
	if err != nil {
		return "", ErrNotFound
	}
	return string(val), nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	return s.fc.Set([]byte(key), []byte(value), 0)
}

func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.fc.Del([]byte(key))
	return nil
}
