// Package event publishes storefront domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/inkwell/storefront/pkg/kafka"

	"github.com/inkwell/storefront/internal/domain"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCheckoutCompleted    = "storefront.checkout.completed"
	TopicInventoryDecremented = "storefront.inventory.decremented"
	TopicInventoryLowStock    = "storefront.inventory.low_stock"
	TopicInventoryDepleted    = "storefront.inventory.depleted"
)

// Aggregate type constants.
const (
	AggregateTypeCheckout  = "checkout"
	AggregateTypeInventory = "inventory"
)

// Source identifier for events originating from the storefront backend.
const SourceStorefront = "storefront-backend"

// CheckoutCompletedData is the payload for a checkout.completed event.
type CheckoutCompletedData struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
}

// InventoryDecrementedData is the payload for an inventory.decremented event.
type InventoryDecrementedData struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	Remaining   int    `json:"remaining"`
}

// InventoryLowStockData is the payload for an inventory.low_stock event.
type InventoryLowStockData struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name"`
	Size              string `json:"size"`
	Remaining         int    `json:"remaining"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}

// InventoryDepletedData is the payload for an inventory.depleted event.
type InventoryDepletedData struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront backend.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCheckoutCompleted publishes a checkout.completed event.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, sessionID string, itemCount int) error {
	data := CheckoutCompletedData{
		SessionID: sessionID,
		ItemCount: itemCount,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, sessionID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishInventoryDecremented publishes an inventory.decremented event.
func (p *Producer) PublishInventoryDecremented(ctx context.Context, item domain.PurchaseItem, productName string, remaining int) error {
	data := InventoryDecrementedData{
		ProductID:   item.ProductID,
		ProductName: productName,
		Size:        item.Size,
		Quantity:    item.Quantity,
		Remaining:   remaining,
	}

	event, err := pkgkafka.NewEvent(TopicInventoryDecremented, item.ProductID, AggregateTypeInventory, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create inventory.decremented event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicInventoryDecremented, event); err != nil {
		return fmt.Errorf("publish inventory.decremented event: %w", err)
	}

	p.logger.DebugContext(ctx, "published inventory.decremented event",
		slog.String("product_id", item.ProductID),
		slog.String("size", item.Size),
		slog.Int("remaining", remaining),
	)

	return nil
}

// PublishInventoryLowStock publishes an inventory.low_stock event.
func (p *Producer) PublishInventoryLowStock(ctx context.Context, item domain.PurchaseItem, productName string, remaining int) error {
	data := InventoryLowStockData{
		ProductID:         item.ProductID,
		ProductName:       productName,
		Size:              item.Size,
		Remaining:         remaining,
		LowStockThreshold: domain.LowStockThreshold,
	}

	event, err := pkgkafka.NewEvent(TopicInventoryLowStock, item.ProductID, AggregateTypeInventory, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create inventory.low_stock event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicInventoryLowStock, event); err != nil {
		return fmt.Errorf("publish inventory.low_stock event: %w", err)
	}

	return nil
}

// PublishInventoryDepleted publishes an inventory.depleted event.
func (p *Producer) PublishInventoryDepleted(ctx context.Context, item domain.PurchaseItem, productName string) error {
	data := InventoryDepletedData{
		ProductID:   item.ProductID,
		ProductName: productName,
		Size:        item.Size,
	}

	event, err := pkgkafka.NewEvent(TopicInventoryDepleted, item.ProductID, AggregateTypeInventory, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create inventory.depleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicInventoryDepleted, event); err != nil {
		return fmt.Errorf("publish inventory.depleted event: %w", err)
	}

	return nil
}
