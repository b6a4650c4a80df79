package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListAll(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) UpdateStock(ctx context.Context, id string, delta int) (int, error) {
	args := m.Called(ctx, id, delta)
	return args.Int(0), args.Error(1)
}

type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) GetStoreHours(ctx context.Context) (*models.StoreHours, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.StoreHours), args.Error(1)
}

func (m *SettingsRepository) SaveStoreHours(ctx context.Context, hours *models.StoreHours) error {
	return m.Called(ctx, hours).Error(0)
}

type FeedbackRepository struct {
	mock.Mock
}

func (m *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *FeedbackRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.FeedbackStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

func (m *FeedbackRepository) List(ctx context.Context, page, size int) ([]*models.Feedback, int, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Feedback), args.Int(1), args.Error(2)
}

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) Allow(ctx context.Context, email string) (repository.LoginAllowance, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(repository.LoginAllowance), args.Error(1)
}

func (m *RateLimitRepository) Reset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Append(ctx context.Context, shopperID string, order *models.Order) error {
	return m.Called(ctx, shopperID, order).Error(0)
}

func (m *OrderRepository) List(ctx context.Context, shopperID string) ([]models.Order, error) {
	args := m.Called(ctx, shopperID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) Delete(ctx context.Context, shopperID string, id int64) error {
	return m.Called(ctx, shopperID, id).Error(0)
}

func (m *OrderRepository) SaveCustomer(ctx context.Context, shopperID string, customer models.Customer) error {
	return m.Called(ctx, shopperID, customer).Error(0)
}

func (m *OrderRepository) LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error) {
	args := m.Called(ctx, shopperID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Customer), args.Error(1)
}
