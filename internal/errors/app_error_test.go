package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/sayuryunur/storefront/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Wraps cause", func(t *testing.T) {
		cause := errors.New("redis down")
		err := appErrors.PersistenceFailed("Failed to save order").WithError(cause)

		assert.Equal(t, "Failed to save order", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	})

	t.Run("IsAppError through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("checkout: %w", appErrors.LocationUnavailable("no fix"))

		appErr, ok := appErrors.IsAppError(wrapped)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeLocationUnavailable, appErr.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.StatusCode)
	})

	t.Run("ValidationFailed carries fields", func(t *testing.T) {
		err := appErrors.ValidationFailed(map[string]string{"name": "Nama harus diisi"})

		assert.Equal(t, appErrors.ErrCodeValidationFailed, err.Code)
		assert.Equal(t, "Nama harus diisi", err.Fields["name"])
	})

	t.Run("StockChanged carries meta", func(t *testing.T) {
		err := appErrors.StockChanged([]string{"a"})

		assert.Equal(t, http.StatusConflict, err.StatusCode)
		assert.Equal(t, []string{"a"}, err.Meta)
	})

	t.Run("Plain error is not an AppError", func(t *testing.T) {
		_, ok := appErrors.IsAppError(errors.New("boom"))
		assert.False(t, ok)
	})
}
