package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

type completeSaleRequest struct {
	CustomerName  string           `json:"customerName"`
	PaymentMethod string           `json:"paymentMethod"`
	Discount      *decimal.Decimal `json:"discount"`
}

func (h *Handler) CompleteSale(w http.ResponseWriter, r *http.Request) {
	var body completeSaleRequest
	// an empty body is a sale without customer details or discount
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req := sale.Request{
		CustomerName:  body.CustomerName,
		PaymentMethod: body.PaymentMethod,
		Discount:      decimal.Zero,
	}
	if body.Discount != nil {
		req.Discount = *body.Discount
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	receipt, err := h.checkout.Checkout(ctx, middleware.GetSessionID(r.Context()), req)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to complete sale")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Sale completed successfully",
		"sale":    receipt,
	})
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	sales, err := h.sales.ListRecent(ctx, sale.RecentLimit)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load sales")
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *Handler) TodaySales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	stats, err := h.sales.Today(ctx)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load today's sales")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
