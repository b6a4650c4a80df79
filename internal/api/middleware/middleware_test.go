package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Propagates the request id and captures the status", func(t *testing.T) {
		var fromCtx *slog.Logger
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fromCtx = middleware.LoggerFromContext(r.Context())
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rr := httptest.NewRecorder()

		middleware.Logging(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, "req-42", rr.Header().Get("X-Request-ID"))
		assert.NotNil(t, fromCtx)
		assert.NotSame(t, slog.Default(), fromCtx)
	})

	t.Run("Generates a request id", func(t *testing.T) {
		rr := httptest.NewRecorder()

		middleware.Logging(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(rr.Header().Get("X-Request-ID"))
		assert.NoError(t, err)
	})
}

func TestLoggerFromContext_Default(t *testing.T) {
	assert.Same(t, slog.Default(), middleware.LoggerFromContext(context.Background()))
}

func TestShopper(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.ShopperIDFromContext(r.Context())
	})
	known := uuid.NewString()

	t.Run("Header wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.ShopperHeader, known)
		req.AddCookie(&http.Cookie{Name: middleware.ShopperCookie, Value: uuid.NewString()})
		rr := httptest.NewRecorder()

		middleware.Shopper(next).ServeHTTP(rr, req)

		assert.Equal(t, known, seen)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("Cookie is used", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: middleware.ShopperCookie, Value: known})
		rr := httptest.NewRecorder()

		middleware.Shopper(next).ServeHTTP(rr, req)

		assert.Equal(t, known, seen)
		assert.Equal(t, known, rr.Header().Get(middleware.ShopperHeader))
	})

	t.Run("Malformed id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.ShopperHeader, "../../etc")
		rr := httptest.NewRecorder()

		middleware.Shopper(next).ServeHTTP(rr, req)

		_, err := uuid.Parse(seen)
		require.NoError(t, err)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.ShopperCookie, cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})
}

func TestRecover(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	t.Run("Hides the panic in production", func(t *testing.T) {
		rr := httptest.NewRecorder()

		middleware.Recover(false)(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"success": false, "error": {"code": "INTERNAL_ERROR", "message": "An unexpected error occurred"}}`, rr.Body.String())
	})

	t.Run("Shows the panic in development", func(t *testing.T) {
		rr := httptest.NewRecorder()

		middleware.Recover(true)(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"details":["boom"]`)
	})

	t.Run("Passes through", func(t *testing.T) {
		rr := httptest.NewRecorder()

		middleware.Recover(false)(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
