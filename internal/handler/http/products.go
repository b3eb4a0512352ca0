package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/inkwell/storefront/pkg/httputil"

	"github.com/inkwell/storefront/internal/catalog"
	"github.com/inkwell/storefront/internal/domain"
)

// CatalogLister resolves catalog reads. The concrete implementation never
// fails; degradation is reported through the result source.
type CatalogLister interface {
	List(ctx context.Context) catalog.Result
}

// ProductsHandler serves the product catalog.
type ProductsHandler struct {
	catalog CatalogLister
	logger  *slog.Logger
}

// NewProductsHandler creates a products handler. catalog may be nil when the
// payment provider is unconfigured; the endpoint then serves 503 with an
// empty list.
func NewProductsHandler(catalog CatalogLister, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, logger: logger}
}

// productListResponse is the success envelope for GET /api/products.
type productListResponse struct {
	Products []domain.Product `json:"products"`
}

// productErrorResponse keeps the products field present on errors so the
// frontend can always index it.
type productErrorResponse struct {
	Error    string           `json:"error"`
	Products []domain.Product `json:"products"`
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		// Do not let clients cache the unconfigured error.
		w.Header().Set("Cache-Control", "no-store")
		httputil.WriteJSON(w, http.StatusServiceUnavailable, productErrorResponse{
			Error:    "Stripe is not configured. Set STRIPE_SECRET_KEY to load the catalog.",
			Products: []domain.Product{},
		})
		return
	}

	result := h.catalog.List(r.Context())
	if result.Source != catalog.SourceStripe {
		h.logger.WarnContext(r.Context(), "serving degraded catalog",
			slog.String("source", string(result.Source)),
			slog.Int("products", len(result.Products)),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, productListResponse{Products: result.Products})
}
