package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inkwell/storefront/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWriteJSON_SetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]bool{"received": true})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWriteJSON_EncodesBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, map[string]string{"url": "https://checkout.stripe.com/pay/cs_test"})

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", out["url"])
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", nil)

	WriteError(rec, req, apperrors.InvalidInput("Invalid items"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Invalid items", out.Error)
}

func TestWriteError_Unavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)

	WriteError(rec, req, apperrors.Unavailable("Stripe is not configured"), discardLogger())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Stripe is not configured", out.Error)
}

func TestWriteError_UnknownError_Returns500WithGenericMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/stripe", nil)

	WriteError(rec, req, errors.New("pointer dereference"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	// The raw error text never leaks to the caller.
	assert.Equal(t, "an internal error occurred", out.Error)
}

func TestWriteError_UpstreamError_KeepsUserReadableMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", nil)

	cause := errors.New("stripe: api_connection_error")
	WriteError(rec, req, apperrors.Upstream("Failed to create checkout session", cause), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Failed to create checkout session", out.Error)
	assert.NotContains(t, out.Error, "api_connection_error")
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	MethodNotAllowed(rec)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Method not allowed", out.Error)
}
