package domain

import "context"

// CheckoutLineItem is one line of a provider session-creation request, after
// the builder has normalized it: either a stable price reference or inline
// price data, never both.
type CheckoutLineItem struct {
	// PriceID references a provider price object. When set, the inline
	// fields below are ignored.
	PriceID string

	Name        string
	Description string
	// ImageURL is absolute or empty; the provider cannot resolve relative
	// paths.
	ImageURL   string
	UnitAmount int64 // minor currency units
	Quantity   int64
}

// CheckoutSessionRequest is the provider-neutral session-creation request
// assembled by the checkout session builder.
type CheckoutSessionRequest struct {
	LineItems         []CheckoutLineItem
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
	// Metadata carries the indexed purchase items so the webhook can
	// decrement inventory after payment.
	Metadata map[string]string
}

// CheckoutRepository creates hosted checkout sessions with the payment
// provider and returns the redirect URL.
type CheckoutRepository interface {
	CreateSession(ctx context.Context, req *CheckoutSessionRequest) (string, error)
}

// CheckoutEvent is a verified inbound webhook event. Metadata is only
// populated for checkout completion events.
type CheckoutEvent struct {
	ID        string
	Type      string
	SessionID string
	Metadata  map[string]string
}

// Webhook event types the ingestor recognizes.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentSucceeded  = "payment_intent.succeeded"
)

// ProductOverride supplies locally configured data for a product the provider
// record lacks: gallery images and a size chart, keyed by provider product ID.
type ProductOverride struct {
	Images    []string
	SizeChart *SizeChart
}
