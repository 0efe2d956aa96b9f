package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when the key has no value.
var ErrNotFound = errors.New("cache: key not found")

// Store is a narrow key-value interface. Staleness is not the store's
// concern; the Manager tracks write timestamps on top of it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}
