package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/inkwell/storefront/pkg/httputil"

	"github.com/inkwell/storefront/internal/domain"
	"github.com/inkwell/storefront/internal/webhook"
)

// EventProcessor applies a verified webhook event.
type EventProcessor interface {
	Process(ctx context.Context, ev *domain.CheckoutEvent) error
}

// WebhookHandler receives payment provider webhooks.
type WebhookHandler struct {
	verifier  webhook.Verifier
	processor EventProcessor
	logger    *slog.Logger
}

// NewWebhookHandler creates a webhook handler. verifier may be nil when no
// signing secret is configured; the endpoint then serves 503 so the provider
// keeps retrying until it is.
func NewWebhookHandler(verifier webhook.Verifier, processor EventProcessor, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		processor: processor,
		logger:    logger,
	}
}

// receivedResponse acknowledges a processed webhook delivery.
type receivedResponse struct {
	Received bool `json:"received"`
}

// Receive handles POST /api/webhooks/stripe. The raw body must be read
// before any parsing because the signature covers the exact bytes sent.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.ErrorResponse{
			Error: "Webhook secret is not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Webhook Error: could not read request body",
		})
		return
	}

	event, err := h.verifier.Verify(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "webhook signature verification failed",
			slog.String("error", err.Error()),
		)
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Webhook Error: " + err.Error(),
		})
		return
	}

	if err := h.processor.Process(r.Context(), event); err != nil {
		h.logger.ErrorContext(r.Context(), "webhook processing failed",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
			slog.String("error", err.Error()),
		)
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Webhook processing failed",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, receivedResponse{Received: true})
}
