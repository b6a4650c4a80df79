package sendgrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/pkg/sendgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Cc      []map[string]string `json:"cc,omitempty"`
		Bcc     []map[string]string `json:"bcc,omitempty"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

var senderConfig = config.SendGrid{APIKey: "SG.test-api-key", FromEmail: "noreply@sayuryunur.id", FromName: "Sayur YuNur"}

func TestEmailService_Send(t *testing.T) {
	tests := []struct {
		name          string
		req           *models.EmailNotificationRequest
		status        int
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Order alert",
			req: &models.EmailNotificationRequest{
				To:          "owner@sayuryunur.id",
				Subject:     "Pesanan baru",
				Content:     "Halo, saya ingin pesan",
				HTMLContent: "<p>Halo</p>",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1)
				assert.Equal(t, "owner@sayuryunur.id", pers.To[0]["email"])
				assert.Empty(t, pers.Cc)
				assert.Equal(t, "Pesanan baru", pers.Subject)

				assert.Equal(t, "noreply@sayuryunur.id", p.From["email"])
				assert.Equal(t, "Sayur YuNur", p.From["name"])

				require.Len(t, p.Content, 2)
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "text/html", p.Content[1].Type)
			},
		},
		{
			name: "Success - Plain text only with CC",
			req: &models.EmailNotificationRequest{
				To:      "owner@sayuryunur.id",
				CC:      []string{"admin@sayuryunur.id"},
				Subject: "Masukan",
				Content: "Sayurnya segar",
			},
			status: http.StatusAccepted,
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				pers := p.Personalizations[0]
				require.Len(t, pers.Cc, 1)
				assert.Equal(t, "admin@sayuryunur.id", pers.Cc[0]["email"])
				require.Len(t, p.Content, 1)
				assert.Equal(t, "Sayurnya segar", p.Content[0].Value)
			},
		},
		{
			name:          "Failure - SendGrid API Error (4xx)",
			req:           &models.EmailNotificationRequest{To: "bad@example.com", Subject: "x", Content: "x"},
			status:        http.StatusBadRequest,
			expectedError: "failed to send email, status code: 400",
		},
		{
			name:          "Failure - SendGrid API Error (5xx)",
			req:           &models.EmailNotificationRequest{To: "owner@sayuryunur.id", Subject: "x", Content: "x"},
			status:        http.StatusInternalServerError,
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var payload sendgridV3Payload

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer "+senderConfig.APIKey, r.Header.Get("Authorization"))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.NoError(t, json.Unmarshal(body, &payload))

				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			service := sendgrid.NewEmailService(senderConfig, sendgrid.WithEndpoint(server.URL))

			// Act
			err := service.Send(t.Context(), tc.req)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, payload)
			}
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		service := sendgrid.NewEmailService(senderConfig, sendgrid.WithEndpoint(server.URL))
		server.Close()

		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "owner@sayuryunur.id", Subject: "x", Content: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "sendgrid request")
	})

	t.Run("Disabled without API key", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		service := sendgrid.NewEmailService(config.SendGrid{FromEmail: "noreply@sayuryunur.id"}, sendgrid.WithEndpoint(server.URL))

		err := service.Send(t.Context(), &models.EmailNotificationRequest{To: "owner@sayuryunur.id", Subject: "x", Content: "x"})

		assert.NoError(t, err)
		assert.False(t, service.Enabled())
		assert.False(t, called)
	})
}
