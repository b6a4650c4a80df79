package mocks

import (
	"context"
	"time"

	"github.com/sayuryunur/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type CatalogService struct {
	mock.Mock
}

func (m *CatalogService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *CatalogService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *CatalogService) Summary(ctx context.Context) (*models.CatalogSummary, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CatalogSummary), args.Error(1)
}

type AdminCatalogService struct {
	mock.Mock
}

func (m *AdminCatalogService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *AdminCatalogService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *AdminCatalogService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AdminCatalogService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {
	args := m.Called(ctx, id, delta)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *AdminCatalogService) LowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *AdminCatalogService) CategoryStats(ctx context.Context) (*models.CatalogStats, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CatalogStats), args.Error(1)
}

func (m *AdminCatalogService) Search(ctx context.Context, term string) ([]*models.Product, error) {
	args := m.Called(ctx, term)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func (m *OrderService) List(ctx context.Context, shopperID string) ([]models.Order, error) {
	args := m.Called(ctx, shopperID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderService) Get(ctx context.Context, shopperID string, id int64) (*models.Order, error) {
	args := m.Called(ctx, shopperID, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *OrderService) Delete(ctx context.Context, shopperID string, id int64) error {
	return m.Called(ctx, shopperID, id).Error(0)
}

func (m *OrderService) LastCustomer(ctx context.Context, shopperID string) (*models.Customer, error) {
	args := m.Called(ctx, shopperID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Customer), args.Error(1)
}

type StoreHoursService struct {
	mock.Mock
}

func (m *StoreHoursService) Hours(ctx context.Context) *models.StoreHours {
	return m.Called(ctx).Get(0).(*models.StoreHours)
}

func (m *StoreHoursService) Save(ctx context.Context, hours *models.StoreHours) error {
	return m.Called(ctx, hours).Error(0)
}

func (m *StoreHoursService) Status(ctx context.Context, now time.Time) *models.StoreStatus {
	return m.Called(ctx, now).Get(0).(*models.StoreStatus)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.LoginResponse), args.Error(1)
}

type SessionService struct {
	mock.Mock
}

func (m *SessionService) Page(ctx context.Context, shopperID string) string {
	return m.Called(ctx, shopperID).String(0)
}

func (m *SessionService) SetPage(ctx context.Context, shopperID, page string) error {
	return m.Called(ctx, shopperID, page).Error(0)
}

type FeedbackService struct {
	mock.Mock
}

func (m *FeedbackService) Send(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *FeedbackService) List(ctx context.Context, page, size int) (*models.FeedbackPage, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.FeedbackPage), args.Error(1)
}

type ImageRemover struct {
	mock.Mock
}

func (m *ImageRemover) Remove(ctx context.Context, imageURL string) error {
	return m.Called(ctx, imageURL).Error(0)
}
