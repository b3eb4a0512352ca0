// Package catalog serves the product catalog with graceful degradation: a
// live provider fetch behind a circuit breaker, a Redis snapshot of the last
// good fetch, and a static fallback list when both are unavailable.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkwell/storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// Source identifies where a catalog result came from.
type Source string

const (
	SourceStripe   Source = "stripe"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Result is a catalog read together with its provenance. Handlers and
// callers branch on Source explicitly instead of guessing from the data.
type Result struct {
	Products []domain.Product
	Source   Source
}

var catalogFetchTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_fetch_total",
		Help: "Total catalog reads by result source",
	},
	[]string{"source"},
)

func init() {
	prometheus.MustRegister(catalogFetchTotal)
}

// Service resolves catalog reads through the fetch / cache / fallback chain.
type Service struct {
	repo     domain.ProductRepository
	cache    *Cache
	breaker  *gobreaker.CircuitBreaker[[]domain.Product]
	fallback []domain.Product
	logger   *slog.Logger
}

// NewService builds a catalog service. cache may be nil when Redis is
// disabled; degradation then skips straight from the live fetch to the
// static fallback.
func NewService(repo domain.ProductRepository, cache *Cache, cfg BreakerConfig, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		breaker:  newBreaker(cfg, logger),
		fallback: FallbackProducts(),
		logger:   logger,
	}
}

// List returns the catalog from the best available source. It never fails;
// the worst case is the static fallback list.
func (s *Service) List(ctx context.Context) Result {
	products, err := s.breaker.Execute(func() ([]domain.Product, error) {
		return s.repo.ListProducts(ctx)
	})
	if err == nil && len(products) > 0 {
		s.storeSnapshot(ctx, products)
		catalogFetchTotal.WithLabelValues(string(SourceStripe)).Inc()
		return Result{Products: products, Source: SourceStripe}
	}

	if err != nil {
		s.logger.ErrorContext(ctx, "catalog fetch failed",
			slog.String("error", err.Error()),
		)
	} else {
		// An empty live catalog is treated like an outage; the shop
		// always has something to sell.
		s.logger.WarnContext(ctx, "catalog fetch returned no products")
	}

	if cached := s.loadSnapshot(ctx); len(cached) > 0 {
		catalogFetchTotal.WithLabelValues(string(SourceCache)).Inc()
		return Result{Products: cached, Source: SourceCache}
	}

	catalogFetchTotal.WithLabelValues(string(SourceFallback)).Inc()
	return Result{Products: s.fallback, Source: SourceFallback}
}

func (s *Service) storeSnapshot(ctx context.Context, products []domain.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(ctx, products); err != nil {
		s.logger.WarnContext(ctx, "failed to store catalog snapshot",
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) loadSnapshot(ctx context.Context) []domain.Product {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.WarnContext(ctx, "failed to load catalog snapshot",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	return cached
}
