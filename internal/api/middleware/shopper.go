package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	ShopperCookie = "shopper_id"
	ShopperHeader = "X-Shopper-ID"

	shopperCookieMaxAge = 365 * 24 * time.Hour
)

const shopperKey = contextKey("shopper")

// Shopper identifies the browser a request comes from. The id replaces the
// per-device storage a shopper's cart and history are keyed on; a missing or
// malformed id is replaced with a fresh one and handed back as a cookie.
func Shopper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		shopperID := r.Header.Get(ShopperHeader)
		if shopperID == "" {
			if c, err := r.Cookie(ShopperCookie); err == nil {
				shopperID = c.Value
			}
		}

		if _, err := uuid.Parse(shopperID); err != nil {
			shopperID = uuid.NewString()

			http.SetCookie(w, &http.Cookie{
				Name:     ShopperCookie,
				Value:    shopperID,
				Path:     "/",
				MaxAge:   int(shopperCookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		w.Header().Set(ShopperHeader, shopperID)

		ctx := context.WithValue(r.Context(), shopperKey, shopperID)
		ctx = ContextWithLogger(ctx, LoggerFromContext(ctx).With(slog.String("shopper_id", shopperID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ShopperIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(shopperKey).(string)
	return id
}

// WithShopperID is used by tests and background jobs acting for a shopper.
func WithShopperID(ctx context.Context, shopperID string) context.Context {
	return context.WithValue(ctx, shopperKey, shopperID)
}
