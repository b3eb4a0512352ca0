package domain

import "context"

// DefaultCategory is applied when a product's metadata carries no category tag.
const DefaultCategory = "art"

// PlaceholderImage is used when neither the provider nor the local override
// table has an image for a product.
const PlaceholderImage = "/img/products/placeholder-product.svg"

// Product is the storefront's normalized view of a provider product record.
// Inventory is nil when the product carries no stock metadata at all; nil
// means "untracked" (always purchasable), never "all sizes at zero".
type Product struct {
	ID              string            `json:"id"`
	StripeProductID string            `json:"stripeProductId"`
	StripePriceID   string            `json:"stripePriceId,omitempty"`
	Title           string            `json:"title"`
	Price           float64           `json:"price"`
	Description     string            `json:"description"`
	Image           string            `json:"image"`
	Images          []string          `json:"images"`
	MainCategory    string            `json:"mainCategory"`
	Sizes           []string          `json:"sizes"`
	Colors          []string          `json:"colors,omitempty"`
	Details         string            `json:"details,omitempty"`
	Inventory       map[string]int    `json:"inventory,omitempty"`
	SizeChart       *SizeChart        `json:"sizeChart,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

// SizeChart holds per-size garment measurements for the product detail page.
type SizeChart struct {
	Sizes        []string                    `json:"sizes"`
	Measurements map[string]SizeMeasurement  `json:"measurements"`
}

// SizeMeasurement is a single row of a size chart, in inches.
type SizeMeasurement struct {
	BodyLength   string `json:"bodyLength"`
	ChestWidth   string `json:"chestWidth"`
	SleeveLength string `json:"sleeveLength"`
}

// CartLineItem is one entry of a checkout cart as submitted by the frontend.
type CartLineItem struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	Description   string  `json:"description,omitempty"`
	Image         string  `json:"image,omitempty"`
	Quantity      int     `json:"quantity"`
	Size          string  `json:"size,omitempty"`
	StripePriceID string  `json:"stripePriceId,omitempty"`
}

// ProductRecord is the raw provider-side product addressed by ID: its display
// name plus the flat metadata map that encodes sizes and stock. The webhook
// ingestor reads and writes this record; the metadata map is the authoritative
// inventory representation.
type ProductRecord struct {
	ID       string
	Name     string
	Metadata map[string]string
}

// ProductRepository lists the normalized catalog from the payment provider.
type ProductRepository interface {
	// ListProducts returns all active products, normalized. Order follows
	// the provider's listing order.
	ListProducts(ctx context.Context) ([]Product, error)
}

// InventoryRepository reads and writes the provider-side metadata record that
// backs a product's stock table. UpdateMetadata must replace the full map so
// callers can rely on EncodeStock's non-destructive merge semantics.
type InventoryRepository interface {
	GetRecord(ctx context.Context, productID string) (*ProductRecord, error)
	UpdateMetadata(ctx context.Context, productID string, metadata map[string]string) error
}

// canonicalSizeOrder is the fixed ordering used everywhere sizes are rendered.
var canonicalSizeOrder = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL"}

// sizeRank returns the canonical position of a size, or a large rank for
// unknown sizes so they sort after all known ones.
func sizeRank(size string) int {
	for i, s := range canonicalSizeOrder {
		if s == size {
			return i
		}
	}
	return len(canonicalSizeOrder)
}

// SortSizes orders size labels by the canonical apparel order
// (XS..4XL); unknown labels keep their relative encounter order after all
// known ones. The input slice is not modified.
func SortSizes(sizes []string) []string {
	out := make([]string, len(sizes))
	copy(out, sizes)

	// Insertion sort keeps the sort stable so unknown sizes preserve
	// encounter order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && sizeRank(out[j]) < sizeRank(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
