package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/pkg/sendgrid"
)

const (
	defaultFeedbackPageSize = 20
	maxFeedbackPageSize     = 100
)

type FeedbackService interface {
	Send(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error)
	List(ctx context.Context, page, size int) (*models.FeedbackPage, error)
}

type feedbackService struct {
	repo         repository.FeedbackRepository
	emailService sendgrid.EmailService
	ownerEmail   string
	storeName    string
	policy       *bluemonday.Policy
}

func NewFeedbackService(repo repository.FeedbackRepository, emailService sendgrid.EmailService, ownerEmail, storeName string) FeedbackService {
	return &feedbackService{
		repo:         repo,
		emailService: emailService,
		ownerEmail:   ownerEmail,
		storeName:    storeName,
		policy:       bluemonday.StrictPolicy(),
	}
}

// Send stores shopper feedback and forwards a copy to the store owner when
// mail is configured. A failed email does not fail the request once the
// message is stored.
func (s *feedbackService) Send(ctx context.Context, req *models.FeedbackRequest) (*models.Feedback, error) {

	message := utils.PlainText(s.policy, req.Message)
	if message == "" {
		return nil, errors.ValidationFailed(map[string]string{"message": "Pesan harus diisi"})
	}

	name := utils.PlainText(s.policy, req.Name)
	if name == "" {
		name = "Anonim"
	}

	feedback := &models.Feedback{
		ID:      uuid.New(),
		Name:    name,
		Contact: utils.PlainText(s.policy, req.Contact),
		Message: message,
		Status:  models.FeedbackStored,
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, errors.DatabaseError("Failed to save feedback").WithError(err)
	}

	logger := middleware.LoggerFromContext(ctx).With(slog.String("feedbackID", feedback.ID.String()))

	if !s.emailService.Enabled() || s.ownerEmail == "" {
		logger.Info("Feedback stored without email copy")
		return feedback, nil
	}

	status, errorMsg := models.FeedbackSent, ""
	if err := s.emailService.Send(ctx, s.email(feedback)); err != nil {
		logger.Warn("Feedback email not sent", slog.Any("error", err))
		status, errorMsg = models.FeedbackFailed, err.Error()
	}

	if err := s.repo.UpdateStatus(ctx, feedback.ID, status, errorMsg); err != nil {
		logger.Warn("Feedback status not updated", slog.Any("error", err))
	}

	feedback.Status = status
	feedback.ErrorMessage = errorMsg

	return feedback, nil
}

func (s *feedbackService) List(ctx context.Context, page, size int) (*models.FeedbackPage, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > maxFeedbackPageSize {
		size = defaultFeedbackPageSize
	}

	items, total, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list feedback").WithError(err)
	}

	return &models.FeedbackPage{Items: items, Total: total, Page: page, Size: size}, nil
}

func (s *feedbackService) email(f *models.Feedback) *models.EmailNotificationRequest {

	var body strings.Builder
	body.WriteString("Dari: " + f.Name + "\n")
	if f.Contact != "" {
		body.WriteString("Kontak: " + f.Contact + "\n")
	}
	body.WriteString("\n" + f.Message)

	return &models.EmailNotificationRequest{
		To:      s.ownerEmail,
		Subject: "Masukan untuk " + s.storeName,
		Content: body.String(),
	}
}
