package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type AdminHandler struct {
	authService service.AuthService
	catalog     service.AdminCatalogService
	validator   *validator.Validate
}

func NewAdminHandler(authService service.AuthService, catalog service.AdminCatalogService) *AdminHandler {
	return &AdminHandler{authService: authService, catalog: catalog, validator: utils.NewValidator()}
}

func (h *AdminHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid login input")
			return
		}

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
				response.Error(w, errors.TooManyRequestsError(resp.Message).WithMeta(resp))
				return
			}

			response.Error(w, errors.UnauthorizedError(resp.Message).WithMeta(resp))
			return
		}

		logger.Info("Admin logged in")
		response.Success(w, http.StatusOK, resp)
	}
}

// ListProducts serves the admin table, optionally narrowed by ?search=.
func (h *AdminHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *AdminHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product input")
			return
		}

		product, err := h.catalog.Create(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created", slog.String("productId", product.ID))
		response.Success(w, http.StatusCreated, product)
	}
}

func (h *AdminHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid product update input")
			return
		}

		product, err := h.catalog.Update(r.Context(), id, &req)
		if err != nil {
			logger.Error("Failed to update product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated", slog.String("productId", id))
		response.Success(w, http.StatusOK, product)
	}
}

func (h *AdminHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalog.Delete(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted", slog.String("productId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AdminHandler) AdjustStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.AdjustStockRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid stock adjustment input")
			return
		}

		product, err := h.catalog.AdjustStock(r.Context(), id, req.Delta)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Stock adjusted", slog.String("productId", id), slog.Int("delta", req.Delta), slog.Int("stock", product.Stock))
		response.Success(w, http.StatusOK, product)
	}
}

// LowStock serves ?threshold=; missing or invalid falls back to the default.
func (h *AdminHandler) LowStock() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))

		products, err := h.catalog.LowStock(r.Context(), threshold)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *AdminHandler) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.catalog.CategoryStats(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
