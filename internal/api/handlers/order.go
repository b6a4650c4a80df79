package handlers

import (
	"log/slog"
	"net/http"

	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		orders, err := h.orderService.List(r.Context(), shopperID)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, &models.OrderHistoryResponse{Orders: orders, Total: len(orders)})
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		id, err := orderID(r)
		if err != nil {
			logger.Warn("Invalid order id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		order, err := h.orderService.Get(r.Context(), shopperID, id)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		id, err := orderID(r)
		if err != nil {
			logger.Warn("Invalid order id", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if err := h.orderService.Delete(r.Context(), shopperID, id); err != nil {
			logger.Warn("Failed to delete order", slog.Int64("orderId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order deleted", slog.Int64("orderId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// LastCustomer prefills the checkout form. Data is null when nothing was saved.
func (h *OrderHandler) LastCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, _, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		customer, err := h.orderService.LastCustomer(r.Context(), shopperID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, customer)
	}
}
