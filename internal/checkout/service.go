// Package checkout assembles hosted checkout sessions from frontend carts:
// price normalization, image URL absolutization, and the purchase-item
// metadata that lets the webhook decrement inventory after payment.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	apperrors "github.com/inkwell/storefront/pkg/errors"

	"github.com/inkwell/storefront/internal/domain"
)

// Service builds checkout sessions against a provider repository.
type Service struct {
	repo              domain.CheckoutRepository
	publicOrigin      string
	shippingCountries []string
	logger            *slog.Logger
}

// NewService builds a checkout service. publicOrigin is the storefront's
// externally reachable origin, used to absolutize relative image paths.
func NewService(repo domain.CheckoutRepository, publicOrigin string, shippingCountries []string, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		publicOrigin:      strings.TrimRight(publicOrigin, "/"),
		shippingCountries: shippingCountries,
		logger:            logger,
	}
}

// CreateSession validates the cart, builds the session request and returns
// the provider's redirect URL.
func (s *Service) CreateSession(ctx context.Context, items []domain.CartLineItem, successURL, cancelURL string) (string, error) {
	if len(items) == 0 {
		return "", apperrors.InvalidInput("Your cart is empty")
	}

	req := &domain.CheckoutSessionRequest{
		SuccessURL:        successURL,
		CancelURL:         cancelURL,
		ShippingCountries: s.shippingCountries,
	}

	var tracked []domain.PurchaseItem
	for i, item := range items {
		if item.Quantity < 1 {
			return "", apperrors.InvalidInput(fmt.Sprintf("Invalid quantity for item %d", i))
		}
		if item.Title == "" && item.StripePriceID == "" {
			return "", apperrors.InvalidInput(fmt.Sprintf("Missing title for item %d", i))
		}

		req.LineItems = append(req.LineItems, s.buildLineItem(item))

		// Only sized items participate in inventory tracking.
		if item.ProductID != "" && item.Size != "" {
			tracked = append(tracked, domain.PurchaseItem{
				ProductID: item.ProductID,
				Size:      item.Size,
				Quantity:  item.Quantity,
			})
		}
	}
	req.Metadata = domain.PurchaseItemMetadata(tracked)

	url, err := s.repo.CreateSession(ctx, req)
	if err != nil {
		s.logger.ErrorContext(ctx, "checkout session creation failed",
			slog.Int("items", len(items)),
			slog.String("error", err.Error()),
		)
		return "", apperrors.Upstream("Failed to create checkout session", err)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.Int("items", len(items)),
		slog.Int("tracked_items", len(tracked)),
	)
	return url, nil
}

// buildLineItem prefers the stable provider price reference; carts without
// one get inline price data built from the cart fields.
func (s *Service) buildLineItem(item domain.CartLineItem) domain.CheckoutLineItem {
	if item.StripePriceID != "" {
		return domain.CheckoutLineItem{
			PriceID:  item.StripePriceID,
			Quantity: int64(item.Quantity),
		}
	}

	name := item.Title
	if item.Size != "" {
		name = fmt.Sprintf("%s (%s)", item.Title, item.Size)
	}

	return domain.CheckoutLineItem{
		Name:        name,
		Description: item.Description,
		ImageURL:    s.absolutizeImage(item.Image),
		UnitAmount:  toMinorUnits(item.Price),
		Quantity:    int64(item.Quantity),
	}
}

// absolutizeImage turns storefront-relative image paths into absolute URLs;
// the provider rejects relative ones. Empty stays empty so the caller can
// omit the field.
func (s *Service) absolutizeImage(image string) string {
	switch {
	case image == "":
		return ""
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"):
		return image
	case strings.HasPrefix(image, "/"):
		return s.publicOrigin + image
	default:
		return s.publicOrigin + "/" + image
	}
}

// toMinorUnits converts a dollar price to cents, rounding half away from
// zero so 19.99 stays 1999 despite float representation.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
