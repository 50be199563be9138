package http

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/sale"
)

type CartService interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Add(ctx context.Context, sessionID string, productID int64, quantity int) (*cart.Cart, error)
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*cart.Cart, bool, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

type SalesReader interface {
	ListRecent(ctx context.Context, limit int) ([]sale.Summary, error)
	Today(ctx context.Context) (sale.TodayStats, error)
}

type Checkouter interface {
	Checkout(ctx context.Context, sessionID string, req sale.Request) (*sale.Receipt, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger   logrus.FieldLogger
	Catalog  catalog.Repository
	Carts    CartService
	Sales    SalesReader
	Checkout Checkouter
	DB       Pinger

	RequestTimeout   time.Duration
	CORSAllowOrigins []string
	DefaultSession   string
}

type Handler struct {
	logger   logrus.FieldLogger
	catalog  catalog.Repository
	carts    CartService
	sales    SalesReader
	checkout Checkouter
	db       Pinger
	timeout  time.Duration
}

func NewHandler(d Deps) *Handler {
	timeout := d.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Handler{
		logger:   d.Logger,
		catalog:  d.Catalog,
		carts:    d.Carts,
		sales:    d.Sales,
		checkout: d.Checkout,
		db:       d.DB,
		timeout:  timeout,
	}
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.timeout)
}
