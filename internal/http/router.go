package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/middleware"
)

func NewRouter(d Deps) http.Handler {
	h := NewHandler(d)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.CORS(d.CORSAllowOrigins))
	r.Use(middleware.Session(d.DefaultSession))
	r.Use(middleware.RequestLogger(d.Logger))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Get("/products", h.ListProducts)
	r.Get("/products/category/{category}", h.ListProductsByCategory)
	r.Get("/products/search", h.SearchProducts)
	r.Get("/categories", h.ListCategories)

	r.Get("/cart", h.GetCart)
	r.Post("/add-to-cart", h.AddToCart)
	r.Put("/cart/{productId}", h.UpdateCartItem)
	r.Delete("/cart/{productId}", h.RemoveCartItem)
	r.Post("/clear-cart", h.ClearCart)
	r.Get("/generate-bill", h.GenerateBill)

	r.Post("/complete-sale", h.CompleteSale)
	r.Get("/sales", h.ListSales)
	r.Get("/sales/today", h.TodaySales)

	return r
}
