package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/utils/response"
)

// Recover turns a handler panic into a 500 envelope. With exposeDetail the panic
// value is echoed back as the error detail.
func Recover(exposeDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				LoggerFromContext(r.Context()).Error("Panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				appErr := errors.InternalError("An unexpected error occurred")
				if exposeDetail {
					appErr = appErr.WithDetail(fmt.Sprint(rec))
				}

				response.Error(w, appErr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
