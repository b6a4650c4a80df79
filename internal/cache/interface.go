package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCorrupt marks a stored value that exists but does not decode. Get wraps
// it so callers can tell bad data apart from an unreachable store.
var ErrCorrupt = errors.New("corrupt cache value")

// Cache is the shopper-scoped durable key/value store. Values are JSON.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix     = "sayur-yunur-cart"
	OrdersKeyPrefix   = "sayur-yunur-orders"
	CustomerKeyPrefix = "sayur-yunur-customer"
	PageKeyPrefix     = "sayur-yunur-current-page"
	LocationKeyPrefix = "sayur-yunur-location"
)
