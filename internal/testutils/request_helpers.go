package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/models"
)

// CreateTestRequestWithContext builds a request as it looks after the shopper
// middleware ran.
func CreateTestRequestWithContext(method, target string, body io.Reader, shopperID string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	return req.WithContext(middleware.WithShopperID(req.Context(), shopperID))
}

// CreateAdminRequest builds a request as it looks after admin authentication.
func CreateAdminRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	claims := &models.Claims{Email: "admin@sayuryunur.id", Role: models.RoleAdmin}

	return req.WithContext(context.WithValue(req.Context(), middleware.ClaimsContextKey, claims))
}

func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
