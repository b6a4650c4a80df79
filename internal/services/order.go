package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"slices"
	"time"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
)

type OrderService interface {
	List(ctx context.Context, shopperID string) ([]models.Order, error)
	Get(ctx context.Context, shopperID string, id int64) (*models.Order, error)
	Delete(ctx context.Context, shopperID string, id int64) error
	LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error)
}

type orderService struct {
	repo      repository.OrderRepository
	retention time.Duration
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, retention time.Duration) OrderService {
	return &orderService{repo: repo, retention: retention, now: time.Now}
}

// List returns orders younger than the retention window, newest first.
func (s *orderService) List(ctx context.Context, shopperID string) ([]models.Order, error) {

	orders, err := s.repo.List(ctx, shopperID)
	if err != nil {
		return nil, errors.InternalError("Failed to read order history").WithError(err)
	}

	cutoff := s.now().Add(-s.retention)

	recent := slices.DeleteFunc(orders, func(o models.Order) bool { return o.CreatedAt.Before(cutoff) })

	slices.SortStableFunc(recent, func(a, b models.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return recent, nil
}

func (s *orderService) Get(ctx context.Context, shopperID string, id int64) (*models.Order, error) {

	orders, err := s.List(ctx, shopperID)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, errors.NotFoundError("Order not found")
}

func (s *orderService) Delete(ctx context.Context, shopperID string, id int64) error {

	if err := s.repo.Delete(ctx, shopperID, id); err != nil {
		if stdErrors.Is(err, repository.ErrOrderNotFound) {
			return errors.NotFoundError("Order not found").WithError(err)
		}
		return errors.PersistenceFailed("Failed to delete order").WithError(err)
	}

	return nil
}

// LastCustomer prefills the checkout form. An unreadable record counts as none.
func (s *orderService) LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error) {

	customer, err := s.repo.LastCustomer(ctx, shopperID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Last customer unreadable", slog.Any("error", err))
		return nil, nil
	}

	return customer, nil
}
