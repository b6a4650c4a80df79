package utils_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/models"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPhone(t *testing.T) {
	valid := []string{"081234567890", "+62 812-3456-7890", "(0274) 123456"}
	invalid := []string{"", "0812abc", "0812#123", "phone"}

	for _, p := range valid {
		assert.True(t, utils.ValidPhone(p), p)
	}

	for _, p := range invalid {
		assert.False(t, utils.ValidPhone(p), p)
	}
}

func TestNewValidator_PhoneTag(t *testing.T) {
	var validate *validator.Validate
	require.NotPanics(t, func() { validate = utils.NewValidator() })

	assert.NoError(t, validate.Var("+62 812-3456-7890", "phone"))
	assert.Error(t, validate.Var("0812abc", "phone"))
}

func TestPlainText(t *testing.T) {
	policy := bluemonday.StrictPolicy()

	tests := []struct {
		in   string
		want string
	}{
		{in: "  Pak O'Neil ", want: "Pak O'Neil"},
		{in: "Jl. Mawar & Melati <5 rumah>", want: "Jl. Mawar & Melati <5 rumah>"},
		{in: `"pedas" & segar`, want: `"pedas" & segar`},
		{in: "<b>Bayam</b> <script>alert(1)</script>segar", want: "Bayam segar"},
		{in: "<i></i>", want: ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, utils.PlainText(policy, tc.in), tc.in)
	}
}

func TestParseAndValidate(t *testing.T) {
	validate := utils.NewValidator()

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(models.CheckoutRequest{Name: "Budi", Address: "Jl. Magelang 1", Phone: "0812 3456"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		var dest models.CheckoutRequest
		ok := utils.ParseAndValidate(req, rr, &dest, validate)

		assert.True(t, ok)
		assert.Equal(t, "Budi", dest.Name)
	})

	t.Run("Failure - Empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", http.NoBody)
		rr := httptest.NewRecorder()

		var dest models.CheckoutRequest
		ok := utils.ParseAndValidate(req, rr, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), appErrors.ErrCodeBadRequest)
	})

	t.Run("Failure - Field errors use json names", func(t *testing.T) {
		body := []byte(`{"name":"","address":"Jl. Magelang","phone":"08abc"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		var dest models.CheckoutRequest
		ok := utils.ParseAndValidate(req, rr, &dest, validate)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, appErrors.ErrCodeValidationFailed, resp.Error.Code)
		assert.Contains(t, resp.Error.Fields, "name")
		assert.Contains(t, resp.Error.Fields, "phone")
		assert.NotContains(t, resp.Error.Fields, "address")
	})
}
