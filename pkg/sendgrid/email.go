package sendgrid

import (
	"context"
	"fmt"

	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/models"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	Send(ctx context.Context, req *models.EmailNotificationRequest) error
	Enabled() bool
}

type Option func(*emailService)

// WithEndpoint points the client at another mail/send URL.
func WithEndpoint(url string) Option {
	return func(e *emailService) {
		e.client.Request.BaseURL = url
	}
}

type emailService struct {
	client    *sg.Client
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(cfg config.SendGrid, opts ...Option) EmailService {
	e := &emailService{
		client:    sg.NewSendClient(cfg.APIKey),
		apiKey:    cfg.APIKey,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Enabled is false when no API key is configured; Send then does nothing.
func (e *emailService) Enabled() bool {
	return e.apiKey != ""
}

func (e *emailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {

	if !e.Enabled() {
		return nil
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(e.fromName, e.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", req.To))

	for _, cc := range req.CC {
		personalization.AddCCs(mail.NewEmail("", cc))
	}

	for _, bcc := range req.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = req.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", req.Content))

	if req.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", req.HTMLContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
