package shipping

import (
	"context"
	"log/slog"
	"time"

	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cache"
	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/metrics"
	"github.com/sayuryunur/storefront/internal/models"
)

// Quoter turns a shopper's position into a shipping quote and keeps it for
// the location max age. An expired or missing quote must be requested again.
type Quoter struct {
	cache   cache.Cache
	store   models.Location
	tiers   Tiers
	maxAge  time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewQuoter(c cache.Cache, cfg *config.Config) *Quoter {
	return &Quoter{
		cache:   c,
		store:   models.Location{Latitude: cfg.Store.Latitude, Longitude: cfg.Store.Longitude},
		tiers:   TiersFromConfig(cfg.Shipping),
		maxAge:  cfg.Shipping.LocationMaxAge,
		timeout: cfg.Shipping.LocateTimeout,
		now:     time.Now,
	}
}

func (q *Quoter) Quote(ctx context.Context, shopperID string, loc models.Location) (*models.ShippingQuote, error) {

	logger := middleware.LoggerFromContext(ctx)

	if !ValidLocation(loc) {
		logger.Warn("Rejected shipping location", slog.Float64("lat", loc.Latitude), slog.Float64("lng", loc.Longitude))
		return nil, errors.LocationUnavailable("Lokasi tidak valid, silakan coba lagi")
	}

	distance := Distance(loc, q.store)
	fee, label := q.tiers.Fee(distance)

	quote := &models.ShippingQuote{
		DistanceKm: distance,
		Fee:        fee,
		Label:      label,
		Location:   loc,
		ResolvedAt: q.now(),
	}

	if err := q.cache.Set(ctx, cache.Key(cache.LocationKeyPrefix, shopperID), quote, q.maxAge); err != nil {
		logger.Warn("Shipping quote not persisted", slog.Any("error", err))
	}

	metrics.ShippingQuotesTotal.WithLabelValues(label).Inc()
	logger.Info("Shipping quote resolved", slog.Float64("distanceKm", distance), slog.Int64("fee", fee))

	return quote, nil
}

// Resolved returns the shopper's current quote or LocationUnavailable.
func (q *Quoter) Resolved(ctx context.Context, shopperID string) (*models.ShippingQuote, error) {

	var quote models.ShippingQuote

	found, err := q.cache.Get(ctx, cache.Key(cache.LocationKeyPrefix, shopperID), &quote)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Shipping quote unreadable", slog.Any("error", err))
		return nil, errors.LocationUnavailable("Lokasi belum tersedia, silakan coba lagi").WithError(err)
	}

	if !found || q.now().Sub(quote.ResolvedAt) > q.maxAge {
		return nil, errors.LocationUnavailable("Lokasi belum tersedia, silakan coba lagi")
	}

	return &quote, nil
}

func (q *Quoter) Clear(ctx context.Context, shopperID string) error {
	return q.cache.Delete(ctx, cache.Key(cache.LocationKeyPrefix, shopperID))
}

// Options are the position request settings clients should use.
func (q *Quoter) Options() models.GeolocationOptions {
	return models.GeolocationOptions{
		EnableHighAccuracy: true,
		TimeoutMs:          q.timeout.Milliseconds(),
		MaximumAgeMs:       q.maxAge.Milliseconds(),
	}
}

func (q *Quoter) StoreLocation() models.Location {
	return q.store
}
