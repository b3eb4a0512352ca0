package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inkwell/storefront/pkg/health"
	"github.com/inkwell/storefront/pkg/httputil"
	"github.com/inkwell/storefront/pkg/middleware"

	"github.com/inkwell/storefront/internal/config"
)

const serviceName = "storefront"

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cfg *config.Config,
	products *ProductsHandler,
	checkout *CheckoutHandler,
	webhooks *WebhookHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Every endpoint answers wrong methods and unknown paths with the
	// standard error envelope.
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.MethodNotAllowed(w)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.ErrorResponse{Error: "Not found"})
	})

	// Operational endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Storefront API
	r.Route("/api", func(r chi.Router) {
		r.With(middleware.CacheControl(cfg.CatalogCacheMaxAge)).
			Get("/products", products.List)
		r.With(middleware.RateLimit(cfg.CheckoutRPS, cfg.CheckoutBurst, logger)).
			Post("/checkout/session", checkout.CreateSession)
		r.Post("/webhooks/stripe", webhooks.Receive)
	})

	return r
}
