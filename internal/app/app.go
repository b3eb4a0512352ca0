// Package app wires the storefront backend together and manages its
// lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/storefront/pkg/database"
	"github.com/inkwell/storefront/pkg/health"
	pkgkafka "github.com/inkwell/storefront/pkg/kafka"
	"github.com/inkwell/storefront/pkg/tracing"

	"github.com/inkwell/storefront/internal/catalog"
	"github.com/inkwell/storefront/internal/checkout"
	"github.com/inkwell/storefront/internal/config"
	"github.com/inkwell/storefront/internal/event"
	handler "github.com/inkwell/storefront/internal/handler/http"
	striperepo "github.com/inkwell/storefront/internal/repository/stripe"
	"github.com/inkwell/storefront/internal/webhook"
)

// snapshotTTL bounds catalog snapshot staleness during a provider outage.
// Stale inventory counts are acceptable for browsing; checkout revalidates
// against the provider anyway.
const snapshotTTL = 24 * time.Hour

// App wires together all dependencies and runs the storefront backend.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	redisClient    *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// The payment provider being unconfigured is not an error: the server still
// starts and the affected endpoints answer 503.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	healthHandler := health.NewHandler()

	// Optional Redis snapshot cache.
	var redisClient *redis.Client
	var snapshotCache *catalog.Cache
	if cfg.RedisEnabled {
		redisClient, err = database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		snapshotCache = catalog.NewCache(redisClient, snapshotTTL)
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		logger.Info("redis snapshot cache enabled",
			slog.String("addr", cfg.RedisAddr()),
		)
	}

	// Optional Kafka event publishing.
	var producer *pkgkafka.Producer
	var publisher webhook.EventPublisher
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(producer, logger)
		healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Provider-backed services. Everything below stays nil while the secret
	// key is missing, and the handlers answer 503.
	var productsHandler *handler.ProductsHandler
	var checkoutHandler *handler.CheckoutHandler
	var webhookHandler *handler.WebhookHandler

	if cfg.StripeConfigured() {
		repo := striperepo.New(cfg.StripeSecretKey, catalog.ImageOverrides())

		catalogService := catalog.NewService(repo, snapshotCache, catalog.BreakerConfig{
			MaxRequests:  cfg.CBMaxRequests,
			Interval:     time.Duration(cfg.CBInterval) * time.Second,
			Timeout:      time.Duration(cfg.CBTimeout) * time.Second,
			FailureRatio: cfg.CBFailureRatio,
			MinRequests:  cfg.CBMinRequests,
		}, logger)
		checkoutService := checkout.NewService(repo, cfg.PublicOrigin, cfg.ShippingCountries, logger)
		ingestor := webhook.NewIngestor(repo, publisher, logger)

		var verifier webhook.Verifier
		if cfg.StripeWebhookSecret != "" {
			verifier = striperepo.NewVerifier(cfg.StripeWebhookSecret)
		} else {
			logger.Warn("STRIPE_WEBHOOK_SECRET is not set; webhook deliveries will be rejected")
		}

		productsHandler = handler.NewProductsHandler(catalogService, logger)
		checkoutHandler = handler.NewCheckoutHandler(checkoutService, logger)
		webhookHandler = handler.NewWebhookHandler(verifier, ingestor, logger)
	} else {
		logger.Warn("STRIPE_SECRET_KEY is not set; catalog and checkout endpoints will answer 503")
		productsHandler = handler.NewProductsHandler(nil, logger)
		checkoutHandler = handler.NewCheckoutHandler(nil, logger)
		webhookHandler = handler.NewWebhookHandler(nil, nil, logger)
	}

	router := handler.NewRouter(cfg, productsHandler, checkoutHandler, webhookHandler, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		redisClient:    redisClient,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. Redis client
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
