package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/metrics"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/utils"
)

// AllCategories disables the category filter.
const AllCategories = "all"

type CatalogService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Summary(ctx context.Context) (*models.CatalogSummary, error)
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

// List returns the catalog narrowed by a case-insensitive name search and an
// exact (case-insensitive) category match.
func (s *catalogService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch products").WithError(err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)

	filtered := make([]*models.Product, 0, len(products))

	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}

		if category != "" && !strings.EqualFold(category, AllCategories) && !strings.EqualFold(p.Category, category) {
			continue
		}

		filtered = append(filtered, p)
	}

	return filtered, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch categories").WithError(err)
	}

	categories := []string{}

	for _, p := range products {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}

	return categories, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}
		return nil, errors.RemoteUnavailable("Failed to fetch product").WithError(err)
	}

	return product, nil
}

func (s *catalogService) Summary(ctx context.Context) (*models.CatalogSummary, error) {

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch products").WithError(err)
	}

	summary := &models.CatalogSummary{Total: len(products)}

	for _, p := range products {
		if p.InStock() {
			summary.Available++
		}
	}

	return summary, nil
}

// ImageRemover deletes a product image from wherever it is hosted.
type ImageRemover interface {
	Remove(ctx context.Context, imageURL string) error
}

type AdminCatalogService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]*models.Product, error)
	CategoryStats(ctx context.Context) (*models.CatalogStats, error)
	Search(ctx context.Context, term string) ([]*models.Product, error)
}

type adminCatalogService struct {
	repo          repository.ProductRepository
	images        ImageRemover
	policy        *bluemonday.Policy
	lowStockLimit int
}

func NewAdminCatalogService(repo repository.ProductRepository, images ImageRemover, lowStockLimit int) AdminCatalogService {
	return &adminCatalogService{
		repo:          repo,
		images:        images,
		policy:        bluemonday.StrictPolicy(),
		lowStockLimit: lowStockLimit,
	}
}

func (s *adminCatalogService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	product := &models.Product{
		Name:        s.clean(req.Name),
		Description: s.clean(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    s.clean(req.Category),
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *adminCatalogService) Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Failed to fetch product")
	}

	if req.Name != nil {
		product.Name = s.clean(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.clean(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = s.clean(*req.Category)
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, notFoundOr(err, "Failed to update product")
	}

	return product, nil
}

// Delete removes the product. Removing its image afterwards is best effort.
func (s *adminCatalogService) Delete(ctx context.Context, id string) error {

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "Failed to fetch product")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Failed to delete product")
	}

	if product.ImageURL != "" && s.images != nil {
		if err := s.images.Remove(ctx, product.ImageURL); err != nil {
			metrics.BackgroundFailuresTotal.WithLabelValues("image_remove").Inc()
			middleware.LoggerFromContext(ctx).Warn("Product image not removed",
				slog.String("productID", id), slog.String("imageUrl", product.ImageURL), slog.Any("error", err))
		}
	}

	return nil
}

// AdjustStock adds delta to the stock, never going below zero.
func (s *adminCatalogService) AdjustStock(ctx context.Context, id string, delta int) (*models.Product, error) {

	if _, err := s.repo.UpdateStock(ctx, id, delta); err != nil {
		return nil, notFoundOr(err, "Failed to update stock")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Failed to fetch product")
	}

	return product, nil
}

// LowStock lists products with stock at or below threshold, lowest first.
// A non-positive threshold uses the configured limit.
func (s *adminCatalogService) LowStock(ctx context.Context, threshold int) ([]*models.Product, error) {

	if threshold <= 0 {
		threshold = s.lowStockLimit
	}

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch products").WithError(err)
	}

	low := []*models.Product{}

	for _, p := range products {
		if p.Stock <= threshold {
			low = append(low, p)
		}
	}

	slices.SortStableFunc(low, func(a, b *models.Product) int { return a.Stock - b.Stock })

	return low, nil
}

func (s *adminCatalogService) CategoryStats(ctx context.Context) (*models.CatalogStats, error) {

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch products").WithError(err)
	}

	stats := &models.CatalogStats{Categories: []models.CategoryStat{}, TotalProducts: len(products)}
	index := map[string]int{}

	for _, p := range products {
		value := p.Price * int64(p.Stock)

		stats.TotalStock += p.Stock
		stats.TotalValue += value

		switch {
		case p.Stock == 0:
			stats.OutOfStock++
		case p.Stock <= s.lowStockLimit:
			stats.LowStock++
		}

		i, ok := index[p.Category]
		if !ok {
			i = len(stats.Categories)
			index[p.Category] = i
			stats.Categories = append(stats.Categories, models.CategoryStat{Category: p.Category})
		}

		stats.Categories[i].Count++
		stats.Categories[i].TotalStock += p.Stock
		stats.Categories[i].TotalValue += value
	}

	return stats, nil
}

// Search matches term against name, description and category.
func (s *adminCatalogService) Search(ctx context.Context, term string) ([]*models.Product, error) {

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, errors.RemoteUnavailable("Failed to fetch products").WithError(err)
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return products, nil
	}

	found := []*models.Product{}

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			found = append(found, p)
		}
	}

	return found, nil
}

func (s *adminCatalogService) clean(v string) string {
	return utils.PlainText(s.policy, v)
}

func validateProduct(p *models.Product) error {
	fields := map[string]string{}

	if p.Name == "" {
		fields["name"] = "Nama produk harus diisi"
	}
	if p.Category == "" {
		fields["category"] = "Kategori harus diisi"
	}
	if p.Price <= 0 {
		fields["price"] = "Harga harus berupa angka lebih dari 0"
	}
	if p.Stock < 0 {
		fields["stock"] = "Stok harus berupa angka tidak negatif"
	}

	if len(fields) > 0 {
		return errors.ValidationFailed(fields)
	}

	return nil
}

func notFoundOr(err error, message string) error {
	if stdErrors.Is(err, repository.ErrProductNotFound) {
		return errors.NotFoundError("Product not found").WithError(err)
	}

	return errors.DatabaseError(message).WithError(err)
}
