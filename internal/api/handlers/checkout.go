package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

// CheckoutSubmitter is satisfied by *checkout.Composer.
type CheckoutSubmitter interface {
	Submit(ctx context.Context, shopperID string, req *models.CheckoutRequest) (*models.CheckoutResult, error)
}

type CheckoutHandler struct {
	composer CheckoutSubmitter
}

func NewCheckoutHandler(composer CheckoutSubmitter) *CheckoutHandler {
	return &CheckoutHandler{composer: composer}
}

// Submit records the order and returns the WhatsApp deep link. Field
// validation is left to the composer so every problem is reported at once.
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		result, err := h.composer.Submit(r.Context(), shopperID, &req)
		if err != nil {
			logger.Warn("Checkout not submitted", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout submitted", slog.Int64("orderId", result.Order.ID))
		response.Success(w, http.StatusCreated, result)
	}
}
