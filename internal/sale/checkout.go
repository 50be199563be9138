package sale

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
)

var ErrEmptyCart = errors.New("cart is empty")

// moneyScale matches the NUMERIC(12,2) amount columns.
const moneyScale = 2

// CartConsumer hands out a locked cart snapshot and clears it when the callback succeeds.
type CartConsumer interface {
	Consume(ctx context.Context, sessionID string, fn func(snapshot *cart.Cart) error) error
}

// CompletedPublisher announces committed sales to other systems.
type CompletedPublisher interface {
	PublishSaleCompleted(ctx context.Context, sessionID string, s *Sale) error
}

type Request struct {
	CustomerName  string
	PaymentMethod string
	Discount      decimal.Decimal
}

type CheckoutService struct {
	carts     CartConsumer
	repo      Repository
	publisher CompletedPublisher
	logger    logrus.FieldLogger
}

func NewCheckoutService(carts CartConsumer, repo Repository, publisher CompletedPublisher, logger logrus.FieldLogger) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout turns the session's cart into a persisted sale. The cart is cleared only after
// the sale and all of its items are committed.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req Request) (*Receipt, error) {
	var (
		completed *Sale
		receipt   *Receipt
	)

	err := s.carts.Consume(ctx, sessionID, func(snapshot *cart.Cart) error {
		if snapshot.IsEmpty() {
			return ErrEmptyCart
		}

		sale := newSale(snapshot, req)
		if err := s.repo.Create(ctx, sale); err != nil {
			return fmt.Errorf("persist sale: %w", err)
		}

		completed = sale
		receipt = newReceipt(sale, snapshot.Lines)
		return nil
	})
	if err != nil {
		if receipt == nil || !errors.Is(err, cart.ErrClearFailed) {
			return nil, err
		}
		s.logger.WithError(err).WithFields(logrus.Fields{
			"saleId":    completed.ID,
			"sessionId": sessionID,
		}).Warn("sale committed but cart was not cleared")
	}

	s.logger.WithFields(logrus.Fields{
		"saleId":      completed.ID,
		"sessionId":   sessionID,
		"items":       len(completed.Items),
		"finalAmount": completed.FinalAmount.String(),
	}).Info("sale completed")

	if err := s.publisher.PublishSaleCompleted(ctx, sessionID, completed); err != nil {
		s.logger.WithError(err).WithField("saleId", completed.ID).Warn("publish SaleCompleted failed")
	}

	return receipt, nil
}

// newSale rounds the discount to the stored scale first, so the persisted row and the
// receipt both satisfy final = total - discount.
func newSale(c *cart.Cart, req Request) *Sale {
	total := c.Total().Round(moneyScale)
	discount := req.Discount.Round(moneyScale)
	s := &Sale{
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   total,
		Discount:      discount,
		FinalAmount:   cart.FinalAmount(total, discount),
		Items:         make([]Item, 0, len(c.Lines)),
	}
	for _, l := range c.Lines {
		s.Items = append(s.Items, Item{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.Price,
			Subtotal:    l.Subtotal(),
		})
	}
	return s
}

func newReceipt(s *Sale, lines []cart.Line) *Receipt {
	return &Receipt{
		SaleID:        s.ID,
		Cart:          lines,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		SaleDate:      s.SaleDate,
	}
}
