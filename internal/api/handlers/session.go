package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type SessionHandler struct {
	sessions  service.SessionService
	validator *validator.Validate
}

func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions, validator: utils.NewValidator()}
}

func (h *SessionHandler) GetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, _, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, &models.PageRequest{Page: h.sessions.Page(r.Context(), shopperID)})
	}
}

func (h *SessionHandler) SetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		shopperID, logger, ok := shopperFrom(w, r)
		if !ok {
			return
		}

		var req models.PageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid page input")
			return
		}

		if err := h.sessions.SetPage(r.Context(), shopperID, req.Page); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, &req)
	}
}
