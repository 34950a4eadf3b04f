package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"shopsync-ingestion-layer/internal/application"
	"shopsync-ingestion-layer/internal/application/webhook_handlers"
	"shopsync-ingestion-layer/internal/domain"
	"shopsync-ingestion-layer/internal/infrastructure/cache"
	"shopsync-ingestion-layer/internal/infrastructure/metrics"
	tenantmiddleware "shopsync-ingestion-layer/internal/infrastructure/middleware"
	"shopsync-ingestion-layer/internal/infrastructure/repository"
	"shopsync-ingestion-layer/internal/infrastructure/scheduler"
	shopifyinfra "shopsync-ingestion-layer/internal/infrastructure/shopify"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	databaseURL := getenv("DATABASE_URL", "postgres://localhost:5432/shopsync?sslmode=disable")
	mongoURI := getenv("MONGODB_URI", "mongodb://localhost:27017")
	mongoDatabase := getenv("MONGODB_DATABASE", "shopsync_events")
	redisAddr := getenv("REDIS_ADDR", "localhost:6379")

	webhookSecret := os.Getenv("WEBHOOK_SECRET")
	if webhookSecret == "" {
		logger.Fatal().Msg("WEBHOOK_SECRET environment variable is required")
	}

	syncInterval := getenvDuration(logger, "SYNC_INTERVAL", time.Hour)
	fullSyncHour := getenvInt(logger, "FULL_SYNC_HOUR", 2)
	credentialTTL := getenvDuration(logger, "CREDENTIAL_CACHE_TTL", 5*time.Minute)

	syncCfg := application.DefaultSyncConfig()
	syncCfg.PageSize = getenvInt(logger, "SYNC_PAGE_SIZE", syncCfg.PageSize)
	syncCfg.MaxConcurrentTenants = getenvInt(logger, "SYNC_MAX_CONCURRENT_TENANTS", syncCfg.MaxConcurrentTenants)

	// Connect to Postgres
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Postgres")
	}
	if err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.Tag{},
		&domain.Product{},
		&domain.ProductVariant{},
		&domain.ProductImage{},
		&domain.ProductOption{},
		&domain.Customer{},
		&domain.CustomerAddress{},
		&domain.Order{},
		&domain.OrderLineItem{},
		&domain.SyncRun{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	// Connect to MongoDB for the event log
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	// Connect to Redis for the credential cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer redisClient.Close()

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	syncRunRepo := repository.NewSyncRunRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	eventLogRepo := repository.NewEventLogRepository(mongoClient.Database(mongoDatabase))
	credentialCache := cache.NewCredentialCache(redisClient)

	// Initialize infrastructure
	recorder := metrics.New(prometheus.DefaultRegisterer)
	gateway := shopifyinfra.NewClient(logger)
	verifier := shopifyinfra.NewWebhookVerifier(webhookSecret)

	// Initialize application services
	credentialsService := application.NewCredentialsService(tenantRepo, credentialCache, credentialTTL, logger)
	syncService := application.NewSyncService(
		gateway,
		credentialsService,
		tenantRepo,
		productRepo,
		customerRepo,
		orderRepo,
		syncRunRepo,
		recorder,
		syncCfg,
		logger,
	)
	analyticsService := application.NewAnalyticsService(analyticsRepo, logger)

	// Initialize webhook dispatcher and register handlers
	webhookDispatcher := application.NewWebhookDispatcher(eventLogRepo, recorder, logger)
	webhookDispatcher.Register(webhook_handlers.NewProductHandler(productRepo, logger))
	webhookDispatcher.Register(webhook_handlers.NewCustomerHandler(customerRepo, logger))
	webhookDispatcher.Register(webhook_handlers.NewOrderHandler(orderRepo, logger))
	webhookDispatcher.Register(webhook_handlers.NewEventHandler(eventLogRepo, logger))

	// Start the scheduled sync trigger
	trigger := scheduler.NewSyncTrigger(syncService, syncInterval, fullSyncHour, logger)
	trigger.Start(context.Background())
	defer trigger.Stop()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(tenantmiddleware.TenantID())

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Sync routes
	r.Post("/sync/{tenantID}", syncHandler(syncService, logger))
	r.Get("/sync/{tenantID}/runs", syncRunsHandler(syncRunRepo, logger))

	// Analytics routes
	r.Get("/analytics/overview", analyticsOverviewHandler(analyticsService, logger))
	r.Get("/analytics/customers/top", topCustomersHandler(analyticsService, logger))
	r.Get("/analytics/orders/daily", ordersByDateHandler(analyticsService, logger))
	r.Get("/analytics/revenue", revenueHandler(analyticsService, logger))
	r.Get("/analytics/products/performance", productPerformanceHandler(analyticsService, logger))

	// Webhook endpoints, one per accepted topic
	r.Post("/webhooks/products/update", webhookHandler(domain.TopicProductUpdate, verifier, webhookDispatcher, logger))
	r.Post("/webhooks/customers/update", webhookHandler(domain.TopicCustomerUpdate, verifier, webhookDispatcher, logger))
	r.Post("/webhooks/orders/paid", webhookHandler(domain.TopicOrderPaid, verifier, webhookDispatcher, logger))
	r.Post("/webhooks/carts/abandoned", webhookHandler(domain.TopicCartAbandoned, verifier, webhookDispatcher, logger))
	r.Post("/webhooks/checkouts/created", webhookHandler(domain.TopicCheckoutCreated, verifier, webhookDispatcher, logger))

	port := getenv("PORT", "8080")
	logger.Info().Str("port", port).Msg("Starting API server")
	logger.Info().Msg("Swagger documentation available at http://localhost:" + port + "/swagger/index.html")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// syncHandler triggers an on-demand pass for one tenant and returns its
// report.
func syncHandler(syncService *application.SyncService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		if tenantID == "" {
			http.Error(w, "tenantID is required", http.StatusBadRequest)
			return
		}

		report, err := syncService.SyncTenant(r.Context(), tenantID, domain.SyncModeOnDemand)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("On-demand sync failed")
			writeJSON(w, domain.HTTPStatus(err), map[string]any{
				"error":  err.Error(),
				"report": report,
			})
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// syncRunsHandler returns a tenant's recent sync history.
func syncRunsHandler(runs *repository.SyncRunRepository, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := chi.URLParam(r, "tenantID")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		history, err := runs.ListByTenant(r.Context(), tenantID, limit)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to list sync runs")
			http.Error(w, "Failed to list sync runs", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, history)
	}
}

func analyticsOverviewHandler(analytics *application.AnalyticsService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := domain.TenantIDFromContext(r.Context())
		overview, err := analytics.Overview(r.Context(), tenantID)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to build analytics overview")
			http.Error(w, "Failed to build analytics overview", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func topCustomersHandler(analytics *application.AnalyticsService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := domain.TenantIDFromContext(r.Context())
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		customers, err := analytics.TopCustomers(r.Context(), tenantID, limit)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to rank top customers")
			http.Error(w, "Failed to rank top customers", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, customers)
	}
}

func ordersByDateHandler(analytics *application.AnalyticsService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := domain.TenantIDFromContext(r.Context())

		var from, to time.Time
		if raw := r.URL.Query().Get("from"); raw != "" {
			from, _ = time.Parse("2006-01-02", raw)
		}
		if raw := r.URL.Query().Get("to"); raw != "" {
			to, _ = time.Parse("2006-01-02", raw)
		}

		stats, err := analytics.OrdersByDate(r.Context(), tenantID, from, to)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to aggregate daily orders")
			http.Error(w, "Failed to aggregate daily orders", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func revenueHandler(analytics *application.AnalyticsService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := domain.TenantIDFromContext(r.Context())
		period := application.RevenuePeriod(r.URL.Query().Get("period"))

		points, err := analytics.RevenueByPeriod(r.Context(), tenantID, period)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to build revenue series")
			http.Error(w, "Failed to build revenue series", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, points)
	}
}

func productPerformanceHandler(analytics *application.AnalyticsService, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := domain.TenantIDFromContext(r.Context())
		rows, err := analytics.ProductPerformance(r.Context(), tenantID)
		if err != nil {
			logger.Error().Err(err).Str("tenantId", tenantID).Msg("Failed to rank product performance")
			http.Error(w, "Failed to rank product performance", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

// webhookHandler verifies, logs and dispatches one webhook topic.
func webhookHandler(
	topic string,
	verifier *shopifyinfra.WebhookVerifier,
	dispatcher *application.WebhookDispatcher,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tenantID := domain.TenantIDFromContext(ctx)

		payload, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read webhook payload")
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		// Verify webhook signature over the raw body
		hmacHeader := r.Header.Get("X-Shopify-Hmac-SHA256")
		if err := verifier.Verify(payload, hmacHeader); err != nil {
			logger.Warn().Str("topic", topic).Str("tenantId", tenantID).Msg("Webhook signature verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		event := &domain.WebhookEvent{
			Topic:      topic,
			TenantID:   tenantID,
			Payload:    payload,
			Verified:   true,
			ReceivedAt: time.Now().UTC(),
		}

		if err := dispatcher.Dispatch(ctx, event); err != nil {
			// Non-2xx makes the platform retry the delivery
			http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(logger zerolog.Logger, key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getenvDuration(logger zerolog.Logger, key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn().Str("key", key).Str("value", raw).Msg("Invalid duration in environment, using default")
		return fallback
	}
	return d
}
