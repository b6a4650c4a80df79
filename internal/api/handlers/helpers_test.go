package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils/response"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const shopperID = "7f1c2a64-5d7e-4c5b-9a51-0f1d2b3c4d5e"

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(b)
}

// decodeData unwraps the success envelope into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.True(t, resp.Success, rr.Body.String())

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, dest))
}

// decodeError returns the error part of the envelope.
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.False(t, resp.Success, rr.Body.String())
	require.NotNil(t, resp.Error)

	return resp.Error
}

type mockQuoter struct {
	mock.Mock
}

func (m *mockQuoter) Quote(ctx context.Context, shopperID string, loc models.Location) (*models.ShippingQuote, error) {
	args := m.Called(ctx, shopperID, loc)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ShippingQuote), args.Error(1)
}

func (m *mockQuoter) Resolved(ctx context.Context, shopperID string) (*models.ShippingQuote, error) {
	args := m.Called(ctx, shopperID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ShippingQuote), args.Error(1)
}

func (m *mockQuoter) Clear(ctx context.Context, shopperID string) error {
	return m.Called(ctx, shopperID).Error(0)
}

func (m *mockQuoter) Options() models.GeolocationOptions {
	return m.Called().Get(0).(models.GeolocationOptions)
}

func (m *mockQuoter) StoreLocation() models.Location {
	return m.Called().Get(0).(models.Location)
}

type mockSubmitter struct {
	mock.Mock
}

func (m *mockSubmitter) Submit(ctx context.Context, shopperID string, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	args := m.Called(ctx, shopperID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CheckoutResult), args.Error(1)
}
