package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	products, err := h.catalog.ListByCategory(ctx, category)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// SearchProducts requires the q parameter to be present. An empty q matches everything.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if !values.Has("q") {
		writeError(w, http.StatusBadRequest, msgSearchRequired)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	products, err := h.catalog.Search(ctx, values.Get("q"))
	if err != nil {
		h.writeFailure(w, r, err, "Failed to search products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		h.writeFailure(w, r, err, "Failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
