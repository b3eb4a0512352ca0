package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/inkwell/storefront/pkg/errors"
	"github.com/inkwell/storefront/pkg/httputil"
	"github.com/inkwell/storefront/pkg/validator"

	"github.com/inkwell/storefront/internal/domain"
)

// SessionCreator builds provider checkout sessions from validated carts.
type SessionCreator interface {
	CreateSession(ctx context.Context, items []domain.CartLineItem, successURL, cancelURL string) (string, error)
}

// CheckoutHandler handles checkout session requests.
type CheckoutHandler struct {
	service SessionCreator
	logger  *slog.Logger
}

// NewCheckoutHandler creates a checkout handler. service may be nil when the
// payment provider is unconfigured.
func NewCheckoutHandler(service SessionCreator, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, logger: logger}
}

// CreateSessionRequest is the JSON request body for creating a checkout
// session.
type CreateSessionRequest struct {
	Items      []CartItemRequest `json:"items" validate:"dive"`
	SuccessURL string            `json:"successUrl" validate:"required,url"`
	CancelURL  string            `json:"cancelUrl" validate:"required,url"`
}

// CartItemRequest is a single cart line in the create session request.
type CartItemRequest struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title" validate:"required_without=StripePriceID"`
	Price         float64 `json:"price" validate:"gte=0"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	Size          string  `json:"size"`
	StripePriceID string  `json:"stripePriceId"`
}

// CreateSessionResponse carries the hosted checkout redirect URL.
type CreateSessionResponse struct {
	URL string `json:"url"`
}

// CreateSession handles POST /api/checkout/session.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.ErrorResponse{
			Error: "Stripe checkout is not yet configured. Payment processing is currently unavailable.",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	// Empty carts get their own message before field validation.
	if len(req.Items) == 0 {
		httputil.WriteError(w, r, apperrors.InvalidInput("Your cart is empty"), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("Invalid items: "+err.Error()), h.logger)
		return
	}

	items := make([]domain.CartLineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.CartLineItem{
			ProductID:     item.ProductID,
			Title:         item.Title,
			Price:         item.Price,
			Description:   item.Description,
			Image:         item.Image,
			Quantity:      item.Quantity,
			Size:          item.Size,
			StripePriceID: item.StripePriceID,
		}
	}

	url, err := h.service.CreateSession(r.Context(), items, req.SuccessURL, req.CancelURL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CreateSessionResponse{URL: url})
}
