package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/models"
)

// Listener is the part of *pq.Listener the watcher relies on.
type Listener interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// NewCatalogListener subscribes to the catalog change channel. The returned
// listener reconnects on its own; a nil notification marks a reconnect.
func NewCatalogListener(cfg *config.Config) (*pq.Listener, error) {

	logger := slog.Default().With(slog.String("component", "catalog_listener"))

	listener := pq.NewListener(cfg.Database.GetDSN(), cfg.Catalog.MinReconnectInterval, cfg.Catalog.MaxReconnectInterval,
		func(event pq.ListenerEventType, err error) {
			switch event {
			case pq.ListenerEventConnected:
				logger.Info("Catalog listener connected")
			case pq.ListenerEventReconnected:
				logger.Info("Catalog listener reconnected")
			case pq.ListenerEventDisconnected:
				logger.Warn("Catalog listener disconnected", slog.Any("error", err))
			case pq.ListenerEventConnectionAttemptFailed:
				logger.Warn("Catalog listener connection attempt failed", slog.Any("error", err))
			}
		})

	if err := listener.Listen(cfg.Catalog.Channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.Catalog.Channel, err)
	}

	return listener, nil
}

// CatalogWatcher turns change notifications into full catalog snapshots,
// delivered in the order they were listed.
type CatalogWatcher struct {
	repo     ProductRepository
	listener Listener
	resync   time.Duration
}

func NewCatalogWatcher(repo ProductRepository, listener Listener, resync time.Duration) *CatalogWatcher {
	return &CatalogWatcher{repo: repo, listener: listener, resync: resync}
}

// Run sends one snapshot at start, one per notification and one per resync
// tick. A failed list is skipped; consumers keep their last snapshot. The
// out channel is closed when Run returns.
func (w *CatalogWatcher) Run(ctx context.Context, out chan<- []*models.Product) error {

	defer close(out)

	logger := slog.Default().With(slog.String("component", "catalog_watcher"))

	var tick <-chan time.Time
	if w.resync > 0 {
		ticker := time.NewTicker(w.resync)
		defer ticker.Stop()
		tick = ticker.C
	}

	if !w.publish(ctx, logger, out, "initial") {
		return ctx.Err()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n, ok := <-w.listener.NotificationChannel():
			if !ok {
				logger.Warn("Catalog listener closed")
				return nil
			}

			reason := "notify"
			if n == nil {
				reason = "reconnect"
			}

			if !w.publish(ctx, logger, out, reason) {
				return ctx.Err()
			}

		case <-tick:
			if err := w.listener.Ping(); err != nil {
				logger.Warn("Catalog listener ping failed", slog.Any("error", err))
			}

			if !w.publish(ctx, logger, out, "resync") {
				return ctx.Err()
			}
		}
	}
}

// publish reports false only when ctx ended while handing off the snapshot.
func (w *CatalogWatcher) publish(ctx context.Context, logger *slog.Logger, out chan<- []*models.Product, reason string) bool {

	products, err := w.repo.ListAll(ctx)
	if err != nil {
		logger.Warn("Catalog snapshot unavailable, keeping stale stock", slog.String("reason", reason), slog.Any("error", err))
		return ctx.Err() == nil
	}

	select {
	case out <- products:
		logger.Debug("Catalog snapshot published", slog.String("reason", reason), slog.Int("products", len(products)))
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *CatalogWatcher) Close() error {
	return w.listener.Close()
}
