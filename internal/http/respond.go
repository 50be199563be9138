package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

const (
	msgProductNotFound  = "Product not found"
	msgLineNotFound     = "Item not found in cart"
	msgCartEmpty        = "Cart is empty"
	msgSearchRequired   = "Search query is required"
	msgInvalidQuantity  = "Quantity must be a positive integer"
	msgInvalidProductID = "Invalid product id"
	msgInvalidBody      = "Invalid request body"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps domain errors to a status and message. Anything unrecognised is a
// persistence failure and is reported with fallback.
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status, msg := statusFor(err)
	if msg == "" {
		msg = fallback
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", r.URL.Path).Error(fallback)
	}
	writeError(w, status, msg)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, msgProductNotFound
	case errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound, msgLineNotFound
	case errors.Is(err, sale.ErrEmptyCart):
		return http.StatusBadRequest, msgCartEmpty
	case errors.Is(err, cart.ErrInvalidQuantity):
		return http.StatusBadRequest, msgInvalidQuantity
	case errors.Is(err, cart.ErrSessionRequired):
		return http.StatusBadRequest, "Session id is required"
	default:
		return http.StatusInternalServerError, ""
	}
}
