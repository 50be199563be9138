package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/middleware"
)

type cartResponse struct {
	Message string      `json:"message,omitempty"`
	Cart    []cart.Line `json:"cart"`
}

type billResponse struct {
	Cart  []cart.Line     `json:"cart"`
	Total decimal.Decimal `json:"total"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, err := h.carts.Get(ctx, middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: c.Lines})
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if body.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, msgInvalidQuantity)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, err := h.carts.Add(ctx, middleware.GetSessionID(r.Context()), body.ProductID, body.Quantity)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to add to cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Message: "Added to cart", Cart: c.Lines})
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, removed, err := h.carts.SetQuantity(ctx, middleware.GetSessionID(r.Context()), productID, body.Quantity)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to update cart")
		return
	}

	msg := "Cart updated"
	if removed {
		msg = "Item removed from cart"
	}
	writeJSON(w, http.StatusOK, cartResponse{Message: msg, Cart: c.Lines})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, err := h.carts.Remove(ctx, middleware.GetSessionID(r.Context()), productID)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Message: "Item removed from cart", Cart: c.Lines})
}

func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, err := h.carts.Get(ctx, middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, billResponse{Cart: c.Lines, Total: c.Total()})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	c, err := h.carts.Clear(ctx, middleware.GetSessionID(r.Context()))
	if err != nil {
		h.writeFailure(w, r, err, "Failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Message: "Cart cleared", Cart: c.Lines})
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidProductID)
		return 0, false
	}
	return id, true
}
