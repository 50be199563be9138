package sale

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/cart"
)

type Sale struct {
	ID            int64
	CustomerName  string
	PaymentMethod string
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal
	SaleDate      time.Time
	Items         []Item
}

type Item struct {
	ProductID   int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// Summary is one row of the sales history. Items reads like "Bread (2x), Milk (1x)".
type Summary struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	PaymentMethod string          `json:"payment_method"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	SaleDate      time.Time       `json:"sale_date"`
	Items         string          `json:"items"`
}

type TodayStats struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageSale  decimal.Decimal `json:"average_sale"`
}

type Receipt struct {
	SaleID        int64           `json:"saleId"`
	Cart          []cart.Line     `json:"cart"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
	CustomerName  string          `json:"customerName"`
	PaymentMethod string          `json:"paymentMethod"`
	SaleDate      time.Time       `json:"saleDate"`
}
