package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailNotificationRequest struct {
	To          string   `json:"to" validate:"required,email"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC         []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"html_content,omitempty"`
}

type FeedbackRequest struct {
	Name    string `json:"name" validate:"max=100"`
	Contact string `json:"contact,omitempty" validate:"max=100"`
	Message string `json:"message" validate:"required,max=2000"`
}

type FeedbackStatus string

const (
	FeedbackStored FeedbackStatus = "stored"
	FeedbackSent   FeedbackStatus = "sent"
	FeedbackFailed FeedbackStatus = "failed"
)

// Feedback is a shopper message kept for the owner whether or not the
// email copy went out.
type Feedback struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Contact      string         `json:"contact,omitempty"`
	Message      string         `json:"message"`
	Status       FeedbackStatus `json:"status"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type FeedbackPage struct {
	Items []*Feedback `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}
