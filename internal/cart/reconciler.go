package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sayuryunur/storefront/internal/metrics"
	"github.com/sayuryunur/storefront/internal/models"
)

// Reconcile lists the clamps needed so that no line exceeds stock. A product
// absent from stock has zero available. Quantities are never raised.
func Reconcile(lines []models.CartLine, stock map[string]int) []models.Adjustment {
	var adjustments []models.Adjustment

	for _, l := range lines {
		available := max(stock[l.ID], 0)

		if l.Quantity <= available {
			continue
		}

		adjustments = append(adjustments, models.Adjustment{
			ProductID:        l.ID,
			Name:             l.Name,
			PreviousQuantity: l.Quantity,
			NewQuantity:      available,
			Available:        available,
			Removed:          available == 0,
		})
	}

	return adjustments
}

// StockIndex maps product id to stock.
func StockIndex(products []*models.Product) map[string]int {
	stock := make(map[string]int, len(products))

	for _, p := range products {
		stock[p.ID] = p.Stock
	}

	return stock
}

// Reconciler applies catalog snapshots to every live cart, in arrival order,
// and remembers the latest stock for checkout.
type Reconciler struct {
	registry *Registry

	mu    sync.RWMutex
	stock map[string]int
	known bool
}

func NewReconciler(registry *Registry) *Reconciler {
	r := &Reconciler{registry: registry}

	// carts loaded after a snapshot are clamped against it right away
	registry.setOnLoad(func(ctx context.Context, s *Store) {
		if stock, ok := r.Snapshot(); ok {
			s.Clamp(ctx, stock, false)
		}
	})

	return r
}

// Apply records the snapshot and clamps every live cart against it. It
// returns the number of adjusted lines.
func (r *Reconciler) Apply(ctx context.Context, products []*models.Product) int {
	stock := StockIndex(products)

	r.mu.Lock()
	r.stock = stock
	r.known = true
	r.mu.Unlock()

	metrics.CatalogSnapshotsTotal.Inc()

	adjusted := 0

	r.registry.Each(func(shopperID string, s *Store) {
		adjustments := s.Clamp(ctx, stock, false)
		if len(adjustments) == 0 {
			return
		}

		adjusted += len(adjustments)

		slog.Info("Cart clamped to live stock",
			slog.String("shopperId", shopperID), slog.Int("adjustments", len(adjustments)))
	})

	metrics.CartAdjustmentsTotal.Add(float64(adjusted))

	return adjusted
}

// Run consumes snapshots until the channel closes or ctx ends.
func (r *Reconciler) Run(ctx context.Context, snapshots <-chan []*models.Product) {
	for {
		select {
		case <-ctx.Done():
			return
		case products, ok := <-snapshots:
			if !ok {
				return
			}

			r.Apply(ctx, products)
		}
	}
}

// Stock returns the latest known stock for id.
func (r *Reconciler) Stock(id string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.known {
		return 0, false
	}

	return r.stock[id], true
}

// Snapshot returns a copy of the latest known stock, if any snapshot arrived.
func (r *Reconciler) Snapshot() (map[string]int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.known {
		return nil, false
	}

	out := make(map[string]int, len(r.stock))
	for id, n := range r.stock {
		out[id] = n
	}

	return out, true
}
