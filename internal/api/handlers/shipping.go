package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

// ShippingQuoter is satisfied by *shipping.Quoter.
type ShippingQuoter interface {
	Quote(ctx context.Context, shopperID string, loc models.Location) (*models.ShippingQuote, error)
	Resolved(ctx context.Context, shopperID string) (*models.ShippingQuote, error)
	Clear(ctx context.Context, shopperID string) error
	Options() models.GeolocationOptions
	StoreLocation() models.Location
}

type ShippingHandler struct {
	quoter    ShippingQuoter
	validator *validator.Validate
}

func NewShippingHandler(quoter ShippingQuoter) *ShippingHandler {
	return &ShippingHandler{quoter: quoter, validator: utils.NewValidator()}
}

// Quote resolves the shopper's position into a fee. Posting again is how a
// shopper retries after a failed or expired location.
func (h *ShippingHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		var req models.Location
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid shipping location input")
			return
		}

		quote, err := h.quoter.Quote(r.Context(), shopperID, req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *ShippingHandler) GetQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, _, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		quote, err := h.quoter.Resolved(r.Context(), shopperID)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *ShippingHandler) ClearQuote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		if err := h.quoter.Clear(r.Context(), shopperID); err != nil {
			logger.Warn("Failed to clear shipping quote", slog.Any("error", err))
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
