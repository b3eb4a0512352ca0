package stripe

import (
	"encoding/json"
	"fmt"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/inkwell/storefront/internal/domain"
)

// Verifier validates webhook payload signatures and decodes the events the
// storefront cares about.
type Verifier struct {
	secret string
}

// NewVerifier builds a Verifier for the given endpoint signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks the Stripe-Signature header against the raw payload and
// returns the decoded event. Session metadata is only extracted for checkout
// completion events; other event types come back with ID and type alone.
func (v *Verifier) Verify(payload []byte, sigHeader string) (*domain.CheckoutEvent, error) {
	// The account's pinned API version routinely trails the SDK's, which
	// is fine for the few fields read here.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}

	decoded := &domain.CheckoutEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if decoded.Type == domain.EventCheckoutCompleted {
		var sess stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("decode checkout session payload: %w", err)
		}
		decoded.SessionID = sess.ID
		decoded.Metadata = sess.Metadata
	}
	return decoded, nil
}
