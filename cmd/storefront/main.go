package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sayuryunur/storefront/internal/api/handlers"
	"github.com/sayuryunur/storefront/internal/api/middleware"
	"github.com/sayuryunur/storefront/internal/cache"
	"github.com/sayuryunur/storefront/internal/cart"
	"github.com/sayuryunur/storefront/internal/checkout"
	"github.com/sayuryunur/storefront/internal/config"
	"github.com/sayuryunur/storefront/internal/health"
	"github.com/sayuryunur/storefront/internal/media"
	"github.com/sayuryunur/storefront/internal/metrics"
	"github.com/sayuryunur/storefront/internal/models"
	repository "github.com/sayuryunur/storefront/internal/repositories"
	service "github.com/sayuryunur/storefront/internal/services"
	"github.com/sayuryunur/storefront/internal/shipping"
	"github.com/sayuryunur/storefront/internal/telemetry"
	"github.com/sayuryunur/storefront/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

const (
	version = "1.0.0"

	// live carts idle this long are dropped from memory; they stay in Redis
	cartIdleTimeout = 30 * time.Minute
	cartSweepEvery  = 5 * time.Minute
)

func main() {

	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", slog.String("error", err.Error()))
	}

	// Load config
	cfg := config.MustLoad()

	// Logger setup
	level := slog.LevelInfo
	if cfg.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.OTel, version)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(ctx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shopperCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	// Carts and live stock
	carts := cart.NewRegistry(shopperCache)
	reconciler := cart.NewReconciler(carts)

	listener, err := repository.NewCatalogListener(cfg)
	if err != nil {
		slog.Error("❌ Error subscribing to catalog changes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	watcher := repository.NewCatalogWatcher(repos.Product, listener, cfg.Catalog.ResyncInterval)
	snapshots := make(chan []*models.Product)

	go func() {
		if err := watcher.Run(ctx, snapshots); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Catalog watcher stopped", slog.String("error", err.Error()))
		}
	}()
	go reconciler.Run(ctx, snapshots)
	go sweepCarts(ctx, carts)

	// Services
	mailer := sendgrid.NewEmailService(cfg.SendGrid)
	images := media.NewClient(cfg.Media)
	quoter := shipping.NewQuoter(shopperCache, cfg)
	orderRepo := repository.NewOrderRepository(shopperCache, cfg.Store.OrderRetention)

	catalogService := service.NewCatalogService(repos.Product)
	adminCatalogService := service.NewAdminCatalogService(repos.Product, images, cfg.Store.LowStockLimit)
	orderService := service.NewOrderService(orderRepo, cfg.Store.OrderRetention)
	sessionService := service.NewSessionService(shopperCache)
	feedbackService := service.NewFeedbackService(repos.Feedback, mailer, cfg.Store.OwnerEmail, cfg.Store.Name)
	authService := service.NewAuthService(repository.NewRateLimitRepo(redisClient, cfg), cfg.Security)

	storeHoursService, err := service.NewStoreHoursService(repos.Settings, cfg.Store.Timezone)
	if err != nil {
		slog.Error("❌ Invalid store timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	composer := checkout.NewComposer(carts, quoter, repos.Product, reconciler, orderRepo, mailer, cfg)

	// Handlers
	productHandler := handlers.NewProductHandler(catalogService)
	cartHandler := handlers.NewCartHandler(carts, catalogService)
	shippingHandler := handlers.NewShippingHandler(quoter)
	checkoutHandler := handlers.NewCheckoutHandler(composer)
	orderHandler := handlers.NewOrderHandler(orderService)
	storeHandler := handlers.NewStoreHandler(storeHoursService, quoter, cfg.Store.Name, cfg.Store.WhatsAppNumber)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	adminHandler := handlers.NewAdminHandler(authService, adminCatalogService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Shopper routes
	shopperMux := http.NewServeMux()
	shopperMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	shopperMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	shopperMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	shopperMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	shopperMux.HandleFunc("POST /api/v1/cart/items/{id}/toggle", cartHandler.ToggleItem())
	shopperMux.HandleFunc("POST /api/v1/cart/toggle-all", cartHandler.ToggleAll())
	shopperMux.HandleFunc("DELETE /api/v1/cart/selected", cartHandler.ClearSelected())
	shopperMux.HandleFunc("POST /api/v1/shipping/quote", shippingHandler.Quote())
	shopperMux.HandleFunc("GET /api/v1/shipping/quote", shippingHandler.GetQuote())
	shopperMux.HandleFunc("DELETE /api/v1/shipping/quote", shippingHandler.ClearQuote())
	shopperMux.HandleFunc("POST /api/v1/checkout", checkoutHandler.Submit())
	shopperMux.HandleFunc("GET /api/v1/orders", orderHandler.ListOrders())
	shopperMux.HandleFunc("GET /api/v1/orders/{id}", orderHandler.GetOrder())
	shopperMux.HandleFunc("DELETE /api/v1/orders/{id}", orderHandler.DeleteOrder())
	shopperMux.HandleFunc("GET /api/v1/customer/last", orderHandler.LastCustomer())
	shopperMux.HandleFunc("GET /api/v1/session/page", sessionHandler.GetPage())
	shopperMux.HandleFunc("PUT /api/v1/session/page", sessionHandler.SetPage())
	shopperMux.HandleFunc("POST /api/v1/feedback", feedbackHandler.SendFeedback())

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.Handle("/api/v1/cart", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/cart/", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/shipping/", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/checkout", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/orders", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/orders/", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/customer/", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/session/", middleware.Shopper(shopperMux))
	routerMux.Handle("/api/v1/feedback", middleware.Shopper(shopperMux))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/categories", productHandler.ListCategories())
	routerMux.HandleFunc("GET /api/v1/store", storeHandler.Info())
	routerMux.HandleFunc("GET /api/v1/store/hours", storeHandler.Hours())
	routerMux.HandleFunc("GET /api/v1/store/status", storeHandler.Status())

	routerMux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login())
	routerMux.HandleFunc("GET /api/v1/admin/products", authMiddleware.Authenticate(adminHandler.ListProducts()))
	routerMux.HandleFunc("POST /api/v1/admin/products", authMiddleware.Authenticate(adminHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", authMiddleware.Authenticate(adminHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", authMiddleware.Authenticate(adminHandler.DeleteProduct()))
	routerMux.HandleFunc("PATCH /api/v1/admin/products/{id}/stock", authMiddleware.Authenticate(adminHandler.AdjustStock()))
	routerMux.HandleFunc("GET /api/v1/admin/products/low-stock", authMiddleware.Authenticate(adminHandler.LowStock()))
	routerMux.HandleFunc("GET /api/v1/admin/stats", authMiddleware.Authenticate(adminHandler.Stats()))
	routerMux.HandleFunc("PUT /api/v1/admin/store/hours", authMiddleware.Authenticate(storeHandler.UpdateHours()))
	routerMux.HandleFunc("GET /api/v1/admin/feedback", authMiddleware.Authenticate(feedbackHandler.ListFeedback()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthChecker.Handler())

	// Middleware chaining, metrics innermost so the mux sets r.Pattern on its request
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Recover(cfg.IsDevelopment())(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	go func() { // Starts the HTTP server in a new goroutine so it doesn't block the main thread.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = multierr.Combine(
		server.Shutdown(shutdownCtx),
		watcher.Close(),
		shopperCache.Close(),
		repos.Close(),
		shutdownTracer(shutdownCtx),
	)

	if err != nil {
		slog.Error("⚠️ Shutdown encountered an issue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("✅ Server shut down gracefully. All connections closed.")
}

// sweepCarts periodically drops idle carts from memory.
func sweepCarts(ctx context.Context, carts *cart.Registry) {

	ticker := time.NewTicker(cartSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := carts.Sweep(cartIdleTimeout); removed > 0 {
				slog.Debug("Idle carts released", slog.Int("removed", removed), slog.Int("live", carts.Len()))
			}
		}
	}
}
