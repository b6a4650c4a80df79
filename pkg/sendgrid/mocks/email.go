package mocks

import (
	"context"

	"github.com/sayuryunur/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *EmailService) Enabled() bool {
	return m.Called().Bool(0)
}
