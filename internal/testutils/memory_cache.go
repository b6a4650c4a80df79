package testutils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sayuryunur/storefront/internal/cache"
)

var ErrCacheUnavailable = errors.New("cache unavailable")

// MemoryCache is an in-process cache.Cache that stores JSON like the Redis
// implementation does. FailWrites makes every Set fail.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string][]byte
	ttls       map[string]time.Duration
	FailWrites bool
	FailReads  bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *MemoryCache) Get(_ context.Context, key string, value any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailReads {
		return false, ErrCacheUnavailable
	}

	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return false, fmt.Errorf("%w: %w", cache.ErrCorrupt, err)
	}

	return true, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return ErrCacheUnavailable
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.data[key] = raw
	m.ttls[key] = ttl

	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	delete(m.ttls, key)

	return nil
}

func (m *MemoryCache) Close() error {
	return nil
}

// Raw returns the stored bytes for key.
func (m *MemoryCache) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[key]

	return raw, ok
}

// Put stores raw bytes, bypassing encoding.
func (m *MemoryCache) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = raw
}

func (m *MemoryCache) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.ttls[key]
}
