package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/cart"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type CartHandler struct {
	carts     *cart.Registry
	catalog   service.CatalogService
	validator *validator.Validate
}

func NewCartHandler(carts *cart.Registry, catalog service.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, validator: utils.NewValidator()}
}

func cartResponse(lines []models.CartLine) *models.CartResponse {
	return &models.CartResponse{
		Items:         lines,
		Count:         cart.Count(lines),
		SelectedCount: len(cart.Selected(lines)),
		Subtotal:      cart.Subtotal(lines),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, _, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		lines := h.carts.Get(r.Context(), shopperID).Lines()

		response.Success(w, http.StatusOK, cartResponse(lines))
	}
}

// AddItem adds one unit of a product. Out-of-stock products are refused here;
// the cart itself never checks stock on add.
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		var req models.AddCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		product, err := h.catalog.Get(r.Context(), req.ProductID)
		if err != nil {
			logger.Warn("Product lookup failed", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !product.InStock() {
			logger.Info("Rejected out of stock product", slog.String("productId", product.ID))
			response.Error(w, errors.OutOfStockError("Stok habis"))
			return
		}

		lines := h.carts.Get(r.Context(), shopperID).Dispatch(r.Context(), cart.AddItem{Product: *product})

		logger.Info("Item added to cart", slog.String("productId", product.ID))
		response.Success(w, http.StatusOK, cartResponse(lines))
	}
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateCartItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart quantity input")
			return
		}

		lines := h.carts.Get(r.Context(), shopperID).Dispatch(r.Context(), cart.UpdateQuantity{ID: id, Quantity: *req.Quantity})

		response.Success(w, http.StatusOK, cartResponse(lines))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return h.dispatch(func(r *http.Request) (cart.Action, error) {
		id, err := pathID(r, "id")
		return cart.RemoveItem{ID: id}, err
	})
}

func (h *CartHandler) ToggleItem() http.HandlerFunc {
	return h.dispatch(func(r *http.Request) (cart.Action, error) {
		id, err := pathID(r, "id")
		return cart.ToggleSelect{ID: id}, err
	})
}

func (h *CartHandler) ClearSelected() http.HandlerFunc {
	return h.dispatch(func(*http.Request) (cart.Action, error) {
		return cart.ClearSelected{}, nil
	})
}

func (h *CartHandler) ToggleAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, _, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		lines := h.carts.Get(r.Context(), shopperID).ToggleAll(r.Context())

		response.Success(w, http.StatusOK, cartResponse(lines))
	}
}

// dispatch serves body-less cart mutations.
func (h *CartHandler) dispatch(build func(r *http.Request) (cart.Action, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		action, err := build(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		lines := h.carts.Get(r.Context(), shopperID).Dispatch(r.Context(), action)

		logger.Debug("Cart updated", slog.String("action", action.Name()))
		response.Success(w, http.StatusOK, cartResponse(lines))
	}
}
