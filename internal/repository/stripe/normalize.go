package stripe

import (
	"strings"

	stripego "github.com/stripe/stripe-go/v79"

	"github.com/inkwell/storefront/internal/domain"
)

// Metadata keys on the Stripe product record besides the sizes and stock
// conventions owned by the domain package.
const (
	metadataKeyCategory = "category"
	metadataKeyColors   = "colors"
	metadataKeyDetails  = "details"
)

// normalizeProduct maps a Stripe product record into the storefront's
// product shape: price in dollars, metadata conventions decoded, and the
// image fallback chain applied (Stripe images, then local override, then
// placeholder).
func normalizeProduct(p *stripego.Product, overrides map[string]domain.ProductOverride) domain.Product {
	var price float64
	var priceID string
	if p.DefaultPrice != nil {
		price = float64(p.DefaultPrice.UnitAmount) / 100
		priceID = p.DefaultPrice.ID
	}

	override, hasOverride := overrides[p.ID]

	images := p.Images
	if len(images) == 0 && hasOverride {
		images = override.Images
	}
	mainImage := domain.PlaceholderImage
	if len(images) > 0 {
		mainImage = images[0]
	}

	category := p.Metadata[metadataKeyCategory]
	if category == "" {
		category = domain.DefaultCategory
	}

	sizes := domain.SortSizes(domain.ParseSizes(p.Metadata[domain.MetadataKeySizes]))

	product := domain.Product{
		ID:              p.ID,
		StripeProductID: p.ID,
		StripePriceID:   priceID,
		Title:           p.Name,
		Price:           price,
		Description:     p.Description,
		Image:           mainImage,
		Images:          images,
		MainCategory:    category,
		Sizes:           sizes,
		Colors:          splitList(p.Metadata[metadataKeyColors]),
		Details:         p.Metadata[metadataKeyDetails],
		Inventory:       domain.DecodeInventory(p.Metadata, sizes),
		Metadata:        p.Metadata,
	}
	if hasOverride {
		product.SizeChart = override.SizeChart
	}
	return product
}

// splitList splits a comma-separated metadata value, trimming whitespace and
// dropping empty entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
