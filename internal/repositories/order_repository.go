package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cache"
	"github.com/sayuryunur/storefront/internal/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderRepository keeps each shopper's order history and last used customer
// details in the shopper key/value store.
type OrderRepository interface {
	Append(ctx context.Context, shopperID string, order *models.Order) error
	List(ctx context.Context, shopperID string) ([]models.Order, error)
	Delete(ctx context.Context, shopperID string, id int64) error
	SaveCustomer(ctx context.Context, shopperID string, customer models.Customer) error
	LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error)
}

type orderRepository struct {
	// serializes read-modify-write of a history list
	mu    sync.Mutex
	cache cache.Cache
	ttl   time.Duration
}

func NewOrderRepository(c cache.Cache, ttl time.Duration) OrderRepository {
	return &orderRepository{cache: c, ttl: ttl}
}

func (r *orderRepository) Append(ctx context.Context, shopperID string, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx, shopperID)
	if err != nil {
		return err
	}

	orders = append(orders, *order)

	if err := r.cache.Set(ctx, cache.Key(cache.OrdersKeyPrefix, shopperID), orders, r.ttl); err != nil {
		return fmt.Errorf("failed to save order history: %w", err)
	}

	return nil
}

// List returns the stored history in insertion order.
func (r *orderRepository) List(ctx context.Context, shopperID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx, shopperID)
}

func (r *orderRepository) Delete(ctx context.Context, shopperID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx, shopperID)
	if err != nil {
		return err
	}

	before := len(orders)

	orders = slices.DeleteFunc(orders, func(o models.Order) bool { return o.ID == id })
	if len(orders) == before {
		return ErrOrderNotFound
	}

	if err := r.cache.Set(ctx, cache.Key(cache.OrdersKeyPrefix, shopperID), orders, r.ttl); err != nil {
		return fmt.Errorf("failed to save order history: %w", err)
	}

	return nil
}

func (r *orderRepository) SaveCustomer(ctx context.Context, shopperID string, customer models.Customer) error {
	if err := r.cache.Set(ctx, cache.Key(cache.CustomerKeyPrefix, shopperID), customer, r.ttl); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return nil
}

func (r *orderRepository) LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error) {
	var customer models.Customer

	found, err := r.cache.Get(ctx, cache.Key(cache.CustomerKeyPrefix, shopperID), &customer)
	if errors.Is(err, cache.ErrCorrupt) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read customer: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &customer, nil
}

// load treats an undecodable history as empty so the next Append replaces
// it. Store errors are returned.
func (r *orderRepository) load(ctx context.Context, shopperID string) ([]models.Order, error) {
	var orders []models.Order

	key := cache.Key(cache.OrdersKeyPrefix, shopperID)

	_, err := r.cache.Get(ctx, key, &orders)
	if errors.Is(err, cache.ErrCorrupt) {
		middleware.LoggerFromContext(ctx).Warn("Order history unreadable, starting empty",
			slog.String("key", key), slog.Any("error", err))
		return []models.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order history: %w", err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}
