package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cart"
	"github.com/sayuryunur/storefront/internal/config"
	appErrors "github.com/sayuryunur/storefront/internal/errors"
	"github.com/sayuryunur/storefront/internal/metrics"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	"github.com/sayuryunur/storefront/internal/utils"
	"github.com/sayuryunur/storefront/pkg/sendgrid"
)

const alertTimeout = 10 * time.Second

type CatalogReader interface {
	ListAll(ctx context.Context) ([]*models.Product, error)
}

// StockSnapshot is the last catalog stock the reconciler applied.
type StockSnapshot interface {
	Snapshot() (map[string]int, bool)
}

type QuoteResolver interface {
	Resolved(ctx context.Context, shopperID string) (*models.ShippingQuote, error)
}

type Composer struct {
	carts    *cart.Registry
	quotes   QuoteResolver
	catalog  CatalogReader
	stock    StockSnapshot
	orders   repository.OrderRepository
	mailer   sendgrid.EmailService
	validate *validator.Validate
	policy   *bluemonday.Policy
	store    config.Store
	now      func() time.Time
}

func NewComposer(
	carts *cart.Registry,
	quotes QuoteResolver,
	catalog CatalogReader,
	stock StockSnapshot,
	orders repository.OrderRepository,
	mailer sendgrid.EmailService,
	cfg *config.Config,
) *Composer {
	return &Composer{
		carts:    carts,
		quotes:   quotes,
		catalog:  catalog,
		stock:    stock,
		orders:   orders,
		mailer:   mailer,
		validate: utils.NewValidator(),
		policy:   bluemonday.StrictPolicy(),
		store:    cfg.Store,
		now:      time.Now,
	}
}

// Submit turns the shopper's selected cart lines into an order. Nothing is
// recorded unless every check passes. The stock check, the write and the
// removal of the ordered lines happen under one cart lock.
func (c *Composer) Submit(ctx context.Context, shopperID string, req *models.CheckoutRequest) (*models.CheckoutResult, error) {

	logger := middleware.LoggerFromContext(ctx).With(slog.String("shopperID", shopperID))

	store := c.carts.Get(ctx, shopperID)
	form := c.clean(req)

	fields := c.validateForm(form)

	quote, err := c.quotes.Resolved(ctx, shopperID)
	if err != nil {
		fields["location"] = "Lokasi diperlukan untuk menghitung ongkir"
	}

	if len(cart.Selected(store.Lines())) == 0 {
		fields["items"] = "Tidak ada item yang dipilih"
	}

	if len(fields) > 0 {
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeValidationFailed).Inc()
		logger.Warn("Checkout validation failed", slog.Any("fields", fields))
		return nil, appErrors.ValidationFailed(fields)
	}

	// nil when nothing is known, which skips the clamp
	stock, _ := c.currentStock(ctx)

	var order *models.Order

	applied, err := store.Checkout(ctx, stock, func(selected []models.CartLine) error {
		order = c.newOrder(selected, form, quote)
		return c.orders.Append(ctx, shopperID, order)
	})

	switch {
	case errors.Is(err, cart.ErrNothingSelected):
		// the selection was emptied while the catalog was being read
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeValidationFailed).Inc()
		return nil, appErrors.ValidationFailed(map[string]string{"items": "Tidak ada item yang dipilih"})
	case err != nil:
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomePersistenceFailed).Inc()
		logger.Error("Failed to record order", slog.Any("error", err))
		return nil, appErrors.PersistenceFailed("Pesanan gagal disimpan, silakan coba lagi").WithError(err)
	case len(applied) > 0:
		metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeStockChanged).Inc()
		logger.Info("Stock changed before checkout", slog.Int("adjustments", len(applied)))
		return nil, appErrors.StockChanged(applied)
	}

	if err := c.orders.SaveCustomer(ctx, shopperID, order.Customer); err != nil {
		metrics.BackgroundFailuresTotal.WithLabelValues("save_customer").Inc()
		logger.Warn("Failed to remember customer details", slog.Any("error", err))
	}

	text := Message(order)

	c.alertOwner(ctx, order, text)

	metrics.CheckoutsTotal.WithLabelValues(metrics.OutcomeSubmitted).Inc()
	logger.Info("Order submitted", slog.Int64("orderID", order.ID), slog.Int64("total", order.Total))

	return &models.CheckoutResult{
		Order:       order,
		Message:     text,
		WhatsAppURL: WhatsAppURL(c.store.WhatsAppBase, c.store.WhatsAppNumber, text),
	}, nil
}

func (c *Composer) newOrder(selected []models.CartLine, form *models.CheckoutRequest, quote *models.ShippingQuote) *models.Order {
	subtotal := cart.Subtotal(selected)
	now := c.now()

	return &models.Order{
		ID:         now.UnixMilli(),
		Items:      selected,
		Subtotal:   subtotal,
		Shipping:   quote.Fee,
		Total:      subtotal + quote.Fee,
		DistanceKm: quote.DistanceKm,
		Customer: models.Customer{
			Name:    form.Name,
			Address: form.Address,
			Phone:   form.Phone,
		},
		Notes:     form.Notes,
		Status:    c.store.OrderStatus,
		CreatedAt: now,
	}
}

func (c *Composer) clean(req *models.CheckoutRequest) *models.CheckoutRequest {
	return &models.CheckoutRequest{
		Name:    utils.PlainText(c.policy, req.Name),
		Address: utils.PlainText(c.policy, req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Notes:   utils.PlainText(c.policy, req.Notes),
	}
}

var formMessages = map[string]map[string]string{
	"name":    {"required": "Nama harus diisi"},
	"address": {"required": "Alamat harus diisi"},
	"phone":   {"required": "Nomor HP harus diisi", "phone": "Format nomor HP tidak valid"},
}

func (c *Composer) validateForm(form *models.CheckoutRequest) map[string]string {
	fields := map[string]string{}

	err := c.validate.Struct(form)
	if err == nil {
		return fields
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fields["form"] = "Data tidak valid"
		return fields
	}

	generic := utils.FieldErrors(validationErrs)

	for _, fe := range validationErrs {
		if msg, ok := formMessages[fe.Field()][fe.Tag()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = generic[fe.Field()]
	}

	return fields
}

// currentStock prefers a fresh catalog read and falls back to the last
// snapshot. ok is false when neither is available.
func (c *Composer) currentStock(ctx context.Context) (map[string]int, bool) {

	products, err := c.catalog.ListAll(ctx)
	if err == nil {
		return cart.StockIndex(products), true
	}

	logger := middleware.LoggerFromContext(ctx)

	if stock, ok := c.stock.Snapshot(); ok {
		logger.Warn("Catalog unavailable, checking stock against last snapshot", slog.Any("error", err))
		return stock, true
	}

	logger.Warn("Catalog unavailable and no snapshot yet, skipping stock check",
		slog.Any("error", appErrors.RemoteUnavailable("catalog unavailable").WithError(err)))

	return nil, false
}

func (c *Composer) alertOwner(ctx context.Context, order *models.Order, text string) {

	if c.mailer == nil || !c.mailer.Enabled() || c.store.OwnerEmail == "" {
		return
	}

	logger := middleware.LoggerFromContext(ctx)
	alertCtx := context.WithoutCancel(ctx)

	req := &models.EmailNotificationRequest{
		To:      c.store.OwnerEmail,
		Subject: "Pesanan baru " + FormatRupiah(order.Total),
		Content: text,
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(alertCtx, alertTimeout)
		defer cancel()

		if err := c.mailer.Send(sendCtx, req); err != nil {
			metrics.BackgroundFailuresTotal.WithLabelValues("order_alert").Inc()
			logger.Warn("Order alert email failed", slog.Int64("orderID", order.ID), slog.Any("error", err))
		}
	}()
}
