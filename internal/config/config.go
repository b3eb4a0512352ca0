package config

import (
	"fmt"
	"net/url"

	pkgconfig "github.com/inkwell/storefront/pkg/config"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Stripe. The secret key is deliberately not required at startup: the
	// request handlers answer 503 while it is missing so the frontend can
	// still load with the static catalog fallback.
	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`

	// Public origin of the storefront, used to absolutize relative image
	// URLs before they are sent to the payment provider.
	PublicOrigin string `env:"PUBLIC_ORIGIN" envDefault:"http://localhost:5173"`

	// Shipping allow-list for checkout sessions.
	ShippingCountries []string `env:"SHIPPING_COUNTRIES" envDefault:"US,CA" envSeparator:","`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Catalog caching
	CatalogCacheMaxAge int  `env:"CATALOG_CACHE_MAX_AGE_SECONDS" envDefault:"300"`
	RedisEnabled       bool `env:"REDIS_ENABLED" envDefault:"false"`
	RedisHost          string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort          int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RedisDB            int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka event publishing
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Per-IP rate limiting on the checkout endpoint
	CheckoutRPS   int `env:"CHECKOUT_RATE_LIMIT_RPS" envDefault:"5"`
	CheckoutBurst int `env:"CHECKOUT_RATE_LIMIT_BURST" envDefault:"10"`

	// Circuit breaker around the upstream catalog fetch
	CBMaxRequests  uint32  `env:"CB_MAX_REQUESTS" envDefault:"1"`
	CBInterval     int     `env:"CB_INTERVAL_SECONDS" envDefault:"60"`
	CBTimeout      int     `env:"CB_TIMEOUT_SECONDS" envDefault:"30"`
	CBFailureRatio float64 `env:"CB_FAILURE_RATIO" envDefault:"0.5"`
	CBMinRequests  uint32  `env:"CB_MIN_REQUESTS" envDefault:"5"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof debug endpoints (IP allowlist in CIDR notation)
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"10.0.0.0/8,172.16.0.0/12,192.168.0.0/16,127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StripeConfigured reports whether the provider secret key is present.
func (c *Config) StripeConfigured() bool {
	return c.StripeSecretKey != ""
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if _, err := url.ParseRequestURI(c.PublicOrigin); err != nil {
		return fmt.Errorf("invalid PUBLIC_ORIGIN %q: %w", c.PublicOrigin, err)
	}
	if len(c.ShippingCountries) == 0 {
		return fmt.Errorf("SHIPPING_COUNTRIES is required")
	}
	if c.CatalogCacheMaxAge < 0 {
		return fmt.Errorf("CATALOG_CACHE_MAX_AGE_SECONDS must not be negative, got %d", c.CatalogCacheMaxAge)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}

// RedisAddr returns the Redis address string.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
