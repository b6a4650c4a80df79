package cart

import (
	"context"
	"sync"
	"time"

	"github.com/sayuryunur/storefront/internal/cache"
)

// Registry keeps the live cart stores, one per shopper.
type Registry struct {
	mu     sync.Mutex
	cache  cache.Cache
	stores map[string]*Store
	onLoad func(ctx context.Context, s *Store)
}

func NewRegistry(c cache.Cache) *Registry {
	return &Registry{cache: c, stores: make(map[string]*Store)}
}

// Get returns the shopper's store, loading it from the cache on first use.
func (r *Registry) Get(ctx context.Context, shopperID string) *Store {
	r.mu.Lock()
	s, ok := r.stores[shopperID]
	if ok {
		// refreshed under r.mu so a concurrent Sweep cannot evict a store
		// that has just been handed out
		s.touch()
	} else {
		s = Load(ctx, r.cache, shopperID)
		r.stores[shopperID] = s
	}
	onLoad := r.onLoad
	r.mu.Unlock()

	if !ok && onLoad != nil {
		onLoad(ctx, s)
	}

	return s
}

// Each calls fn for every live store.
func (r *Registry) Each(fn func(shopperID string, s *Store)) {
	r.mu.Lock()
	snapshot := make(map[string]*Store, len(r.stores))
	for id, s := range r.stores {
		snapshot[id] = s
	}
	r.mu.Unlock()

	for id, s := range snapshot {
		fn(id, s)
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}

// Sweep drops stores idle for longer than maxIdle that no request is using.
// Their carts stay in the cache and are reloaded on the next Get.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for id, s := range r.stores {
		if !s.idleSince().Before(cutoff) {
			continue
		}

		// a held lock means a request is still working on this cart
		if !s.mu.TryLock() {
			continue
		}
		s.mu.Unlock()

		delete(r.stores, id)
		removed++
	}

	return removed
}

func (r *Registry) setOnLoad(fn func(ctx context.Context, s *Store)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onLoad = fn
}
