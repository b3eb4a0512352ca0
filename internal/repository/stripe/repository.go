// Package stripe adapts the Stripe API to the storefront's repository
// interfaces. All normalization of provider records into domain products
// happens here so the rest of the service never sees SDK types.
package stripe

import (
	"context"
	"fmt"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/inkwell/storefront/internal/domain"
)

// listPageSize is the page size requested from the product list endpoint;
// the iterator follows pagination transparently.
const listPageSize = 100

// Repository implements domain.ProductRepository, domain.InventoryRepository
// and domain.CheckoutRepository against the Stripe API.
type Repository struct {
	sc        *client.API
	overrides map[string]domain.ProductOverride
}

// New builds a Repository using the given secret key. The overrides map
// supplies locally hosted gallery images and size charts for products whose
// Stripe records carry none; it may be nil.
func New(secretKey string, overrides map[string]domain.ProductOverride) *Repository {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Repository{sc: sc, overrides: overrides}
}

// ListProducts fetches all active products with their default price expanded
// and normalizes them into domain products.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	params := &stripego.ProductListParams{
		Active: stripego.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(listPageSize)
	params.AddExpand("data.default_price")

	products := make([]domain.Product, 0, listPageSize)
	iter := r.sc.Products.List(params)
	for iter.Next() {
		products = append(products, normalizeProduct(iter.Product(), r.overrides))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list stripe products: %w", err)
	}
	return products, nil
}

// GetRecord fetches the raw product record whose metadata map backs the
// per-size stock table.
func (r *Repository) GetRecord(ctx context.Context, productID string) (*domain.ProductRecord, error) {
	params := &stripego.ProductParams{}
	params.Context = ctx

	p, err := r.sc.Products.Get(productID, params)
	if err != nil {
		return nil, fmt.Errorf("get stripe product %s: %w", productID, err)
	}
	return &domain.ProductRecord{
		ID:       p.ID,
		Name:     p.Name,
		Metadata: p.Metadata,
	}, nil
}

// UpdateMetadata replaces the product's metadata with the given map. The
// full map is posted so that keys the caller did not touch survive; callers
// are expected to have merged via domain.EncodeStock.
func (r *Repository) UpdateMetadata(ctx context.Context, productID string, metadata map[string]string) error {
	params := &stripego.ProductParams{}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	if _, err := r.sc.Products.Update(productID, params); err != nil {
		return fmt.Errorf("update stripe product %s metadata: %w", productID, err)
	}
	return nil
}

// CreateSession creates a hosted checkout session and returns its redirect
// URL.
func (r *Repository) CreateSession(ctx context.Context, req *domain.CheckoutSessionRequest) (string, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:                     stripego.String(string(stripego.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripego.StringSlice([]string{"card"}),
		SuccessURL:               stripego.String(req.SuccessURL),
		CancelURL:                stripego.String(req.CancelURL),
		BillingAddressCollection: stripego.String(string(stripego.CheckoutSessionBillingAddressCollectionRequired)),
	}
	params.Context = ctx

	if len(req.ShippingCountries) > 0 {
		params.ShippingAddressCollection = &stripego.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripego.StringSlice(req.ShippingCountries),
		}
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	for _, li := range req.LineItems {
		params.LineItems = append(params.LineItems, sessionLineItem(li))
	}

	sess, err := r.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

// sessionLineItem translates one normalized line item into session params,
// preferring the stable price reference over inline price data.
func sessionLineItem(li domain.CheckoutLineItem) *stripego.CheckoutSessionLineItemParams {
	if li.PriceID != "" {
		return &stripego.CheckoutSessionLineItemParams{
			Price:    stripego.String(li.PriceID),
			Quantity: stripego.Int64(li.Quantity),
		}
	}

	productData := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripego.String(li.Name),
	}
	// Stripe rejects empty strings for optional fields, so blanks are
	// omitted rather than sent.
	if li.Description != "" {
		productData.Description = stripego.String(li.Description)
	}
	if li.ImageURL != "" {
		productData.Images = stripego.StringSlice([]string{li.ImageURL})
	}

	return &stripego.CheckoutSessionLineItemParams{
		PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
			Currency:    stripego.String(string(stripego.CurrencyUSD)),
			UnitAmount:  stripego.Int64(li.UnitAmount),
			ProductData: productData,
		},
		Quantity: stripego.Int64(li.Quantity),
	}
}
