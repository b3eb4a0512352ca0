package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/inkwell/storefront/pkg/errors"
	"github.com/inkwell/storefront/pkg/logger"
)

// ErrorResponse is the JSON error envelope returned by every storefront
// endpoint: a single human-readable message. The products endpoint extends it
// with an empty product list so the frontend can always index `products`.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, the error is logged but headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope for the given error. AppError
// values map to their own status and message; anything else becomes a generic
// 500. Internal errors are logged through the request-scoped logger when the
// RequestLogger middleware has been mounted, falling back to the given logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := "an internal error occurred"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if errors.Is(err, apperrors.ErrInvalidInput) {
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorResponse{Error: message})
}

// MethodNotAllowed writes the 405 envelope used by every storefront endpoint.
func MethodNotAllowed(w http.ResponseWriter) {
	WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}
