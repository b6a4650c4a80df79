package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/models"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

type FeedbackHandler struct {
	feedbackService service.FeedbackService
	validator       *validator.Validate
}

func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService, validator: utils.NewValidator()}
}

func (h *FeedbackHandler) SendFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.FeedbackRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid feedback input")
			return
		}

		feedback, err := h.feedbackService.Send(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to save feedback", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Feedback received", slog.String("feedbackID", feedback.ID.String()), slog.String("status", string(feedback.Status)))
		response.Success(w, http.StatusAccepted, map[string]string{"status": string(feedback.Status)})
	}
}

func (h *FeedbackHandler) ListFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		result, err := h.feedbackService.List(r.Context(), page, size)
		if err != nil {
			logger.Error("Failed to list feedback", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, result)
	}
}
