package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cache"
	"github.com/sayuryunur/storefront/internal/models"
)

var ErrNothingSelected = errors.New("no cart lines selected")

// Store owns one shopper's cart. Dispatch is the only way to mutate it; every
// mutation is written through to the cache before Dispatch returns.
type Store struct {
	mu    sync.Mutex
	key   string
	cache cache.Cache
	lines []models.CartLine
	// unix nanoseconds, readable without mu
	lastUsed atomic.Int64
}

// Load reads the persisted cart. Missing or unreadable data yields an empty
// cart; the failure is logged and never returned.
func Load(ctx context.Context, c cache.Cache, shopperID string) *Store {

	s := &Store{
		key:   cache.Key(cache.CartKeyPrefix, shopperID),
		cache: c,
		lines: []models.CartLine{},
	}
	s.touch()

	var lines []models.CartLine

	found, err := c.Get(ctx, s.key, &lines)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart snapshot unreadable, starting empty",
			slog.String("key", s.key), slog.Any("error", err))
		return s
	}

	if found {
		s.lines = sanitize(lines)
	}

	return s
}

// sanitize drops lines a valid snapshot can never hold.
func sanitize(lines []models.CartLine) []models.CartLine {
	return filter(clone(lines), func(l models.CartLine) bool { return l.ID != "" && l.Quantity > 0 })
}

// Dispatch applies action and persists the result. A failed write is logged;
// the in-memory cart still advances.
func (s *Store) Dispatch(ctx context.Context, action Action) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatchLocked(ctx, action)

	return clone(s.lines)
}

func (s *Store) dispatchLocked(ctx context.Context, action Action) {
	s.lines = Reduce(s.lines, action)
	s.touch()

	if err := s.cache.Set(ctx, s.key, s.lines, 0); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Cart write-through failed",
			slog.String("key", s.key), slog.String("action", action.Name()), slog.Any("error", err))
	}
}

// ToggleAll selects every line, or clears the selection when all are selected.
func (s *Store) ToggleAll(ctx context.Context) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatchLocked(ctx, SetAllSelected{Selected: !AllSelected(s.lines)})

	return clone(s.lines)
}

// Clamp lowers every line whose quantity exceeds stock (a missing id counts
// as zero stock) and reports what changed. With selectedOnly, unselected
// lines are left alone.
func (s *Store) Clamp(ctx context.Context, stock map[string]int, selectedOnly bool) []models.Adjustment {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := s.lines
	if selectedOnly {
		candidates = Selected(s.lines)
	}

	return s.clampLocked(ctx, candidates, stock)
}

func (s *Store) clampLocked(ctx context.Context, candidates []models.CartLine, stock map[string]int) []models.Adjustment {
	adjustments := Reconcile(candidates, stock)

	for _, adj := range adjustments {
		s.dispatchLocked(ctx, UpdateQuantity{ID: adj.ProductID, Quantity: adj.NewQuantity})
	}

	return adjustments
}

// Checkout runs one checkout against the selection with the cart locked, so
// no other mutation can interleave. When stock is non-nil the selected lines
// are clamped first; any clamp ends the checkout and the adjustments are
// returned. Otherwise place receives the selection and, once it succeeds,
// exactly those lines leave the cart. A failed place leaves the cart as it was.
func (s *Store) Checkout(
	ctx context.Context,
	stock map[string]int,
	place func(selected []models.CartLine) error,
) ([]models.Adjustment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := Selected(s.lines)
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}

	if stock != nil {
		if adjustments := s.clampLocked(ctx, selected, stock); len(adjustments) > 0 {
			return adjustments, nil
		}
	}

	if err := place(clone(selected)); err != nil {
		return nil, err
	}

	ordered := make([]string, 0, len(selected))
	for _, l := range selected {
		ordered = append(ordered, l.ID)
	}

	s.dispatchLocked(ctx, RemoveItems{IDs: ordered})

	return nil, nil
}

func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.lines)
}

func (s *Store) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

func (s *Store) idleSince() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}
