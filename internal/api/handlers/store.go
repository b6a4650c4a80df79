package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type StoreHandler struct {
	hours     service.StoreHoursService
	quoter    ShippingQuoter
	name      string
	whatsApp  string
	validator *validator.Validate
	now       func() time.Time
}

func NewStoreHandler(hours service.StoreHoursService, quoter ShippingQuoter, name, whatsApp string) *StoreHandler {
	return &StoreHandler{
		hours:     hours,
		quoter:    quoter,
		name:      name,
		whatsApp:  whatsApp,
		validator: utils.NewValidator(),
		now:       time.Now,
	}
}

// Info returns the store's contact, position and the geolocation options
// clients should use before requesting a shipping quote.
func (h *StoreHandler) Info() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, &models.StoreInfo{
			Name:        h.name,
			WhatsApp:    h.whatsApp,
			Location:    h.quoter.StoreLocation(),
			Geolocation: h.quoter.Options(),
		})
	}
}

func (h *StoreHandler) Hours() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.hours.Hours(r.Context()))
	}
}

func (h *StoreHandler) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.hours.Status(r.Context(), h.now()))
	}
}

func (h *StoreHandler) UpdateHours() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateStoreHoursRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid store hours input")
			return
		}

		if err := h.hours.Save(r.Context(), &req.Hours); err != nil {
			logger.Warn("Store hours not saved", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Store hours updated")
		response.Success(w, http.StatusOK, &req.Hours)
	}
}
