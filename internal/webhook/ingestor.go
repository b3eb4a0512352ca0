// Package webhook processes verified payment provider events. Its main job
// is decrementing per-size inventory after a completed checkout.
package webhook

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inkwell/storefront/internal/domain"
)

// Verifier authenticates a raw webhook payload and decodes it.
type Verifier interface {
	Verify(payload []byte, sigHeader string) (*domain.CheckoutEvent, error)
}

// EventPublisher forwards inventory movements to the event bus. All methods
// are best effort from the ingestor's point of view; publish failures are
// logged, never propagated to the provider.
type EventPublisher interface {
	PublishCheckoutCompleted(ctx context.Context, sessionID string, itemCount int) error
	PublishInventoryDecremented(ctx context.Context, item domain.PurchaseItem, productName string, remaining int) error
	PublishInventoryLowStock(ctx context.Context, item domain.PurchaseItem, productName string, remaining int) error
	PublishInventoryDepleted(ctx context.Context, item domain.PurchaseItem, productName string) error
}

var (
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total webhook events received by type",
		},
		[]string{"type"},
	)

	inventoryDecrementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_decrement_failures_total",
			Help: "Total purchase items whose inventory update failed",
		},
	)
)

func init() {
	prometheus.MustRegister(webhookEventsTotal)
	prometheus.MustRegister(inventoryDecrementFailures)
}

// Ingestor applies verified webhook events to the inventory store.
type Ingestor struct {
	inventory domain.InventoryRepository
	events    EventPublisher
	logger    *slog.Logger
}

// NewIngestor builds an Ingestor. events may be nil when no event bus is
// configured.
func NewIngestor(inventory domain.InventoryRepository, events EventPublisher, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		inventory: inventory,
		events:    events,
		logger:    logger,
	}
}

// Process dispatches a verified event. Unknown event types are acknowledged
// so the provider stops retrying them.
func (i *Ingestor) Process(ctx context.Context, ev *domain.CheckoutEvent) error {
	webhookEventsTotal.WithLabelValues(ev.Type).Inc()

	switch ev.Type {
	case domain.EventCheckoutCompleted:
		i.handleCheckoutCompleted(ctx, ev)
	case domain.EventPaymentSucceeded:
		i.logger.InfoContext(ctx, "payment succeeded",
			slog.String("event_id", ev.ID),
		)
	default:
		i.logger.DebugContext(ctx, "unhandled webhook event type",
			slog.String("event_id", ev.ID),
			slog.String("type", ev.Type),
		)
	}
	return nil
}

// handleCheckoutCompleted decrements stock for every tracked purchase item.
// Items are independent: a failed lookup or update skips that item and the
// rest still settle.
func (i *Ingestor) handleCheckoutCompleted(ctx context.Context, ev *domain.CheckoutEvent) {
	items := domain.ParsePurchaseItems(ev.Metadata)
	if len(items) == 0 {
		i.logger.WarnContext(ctx, "checkout session completed without tracked items",
			slog.String("session_id", ev.SessionID),
		)
		return
	}

	for _, item := range items {
		i.decrementItem(ctx, item)
	}

	if i.events != nil {
		if err := i.events.PublishCheckoutCompleted(ctx, ev.SessionID, len(items)); err != nil {
			i.logger.WarnContext(ctx, "failed to publish checkout.completed event",
				slog.String("error", err.Error()),
			)
		}
	}

	i.logger.InfoContext(ctx, "checkout session settled",
		slog.String("session_id", ev.SessionID),
		slog.Int("items", len(items)),
	)
}

func (i *Ingestor) decrementItem(ctx context.Context, item domain.PurchaseItem) {
	record, err := i.inventory.GetRecord(ctx, item.ProductID)
	if err != nil {
		inventoryDecrementFailures.Inc()
		i.logger.ErrorContext(ctx, "failed to load product for inventory update",
			slog.String("product_id", item.ProductID),
			slog.String("error", err.Error()),
		)
		return
	}

	// A missing stock key counts as zero; the sale already happened, so the
	// write proceeds and records the floor.
	current := 0
	if inv := domain.DecodeInventory(record.Metadata, []string{item.Size}); inv != nil {
		current = inv[item.Size]
	}
	remaining := domain.DecrementStock(current, item.Quantity)

	updated := domain.EncodeStock(record.Metadata, item.Size, remaining)
	if err := i.inventory.UpdateMetadata(ctx, item.ProductID, updated); err != nil {
		inventoryDecrementFailures.Inc()
		i.logger.ErrorContext(ctx, "failed to persist inventory update",
			slog.String("product_id", item.ProductID),
			slog.String("size", item.Size),
			slog.String("error", err.Error()),
		)
		return
	}

	i.logStockLevel(ctx, record.Name, item, remaining)
	i.publishStockEvents(ctx, record.Name, item, remaining)
}

func (i *Ingestor) logStockLevel(ctx context.Context, name string, item domain.PurchaseItem, remaining int) {
	attrs := []any{
		slog.String("product_id", item.ProductID),
		slog.String("product_name", name),
		slog.String("size", item.Size),
		slog.Int("quantity", item.Quantity),
		slog.Int("remaining", remaining),
	}
	switch {
	case remaining == 0:
		i.logger.WarnContext(ctx, "size sold out", attrs...)
	case remaining <= domain.LowStockThreshold:
		i.logger.WarnContext(ctx, "low stock", attrs...)
	default:
		i.logger.InfoContext(ctx, "inventory decremented", attrs...)
	}
}

func (i *Ingestor) publishStockEvents(ctx context.Context, name string, item domain.PurchaseItem, remaining int) {
	if i.events == nil {
		return
	}

	if err := i.events.PublishInventoryDecremented(ctx, item, name, remaining); err != nil {
		i.logger.WarnContext(ctx, "failed to publish inventory.decremented event",
			slog.String("error", err.Error()),
		)
	}

	switch {
	case remaining == 0:
		if err := i.events.PublishInventoryDepleted(ctx, item, name); err != nil {
			i.logger.WarnContext(ctx, "failed to publish inventory.depleted event",
				slog.String("error", err.Error()),
			)
		}
	case remaining <= domain.LowStockThreshold:
		if err := i.events.PublishInventoryLowStock(ctx, item, name, remaining); err != nil {
			i.logger.WarnContext(ctx, "failed to publish inventory.low_stock event",
				slog.String("error", err.Error()),
			)
		}
	}
}
