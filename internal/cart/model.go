package cart

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/pos-service-go/internal/catalog"
)

// MaxQuantity is the largest quantity a line may hold; sale_items.quantity is an INT.
const MaxQuantity = math.MaxInt32

// Line is one product in a cart. Price is captured when the product is first added.
type Line struct {
	ProductID int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product and only positive quantities.
type Cart struct {
	SessionID string    `json:"sessionId"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID, Lines: []Line{}}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total is the exact sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Clone() *Cart {
	out := &Cart{
		SessionID: c.SessionID,
		Lines:     make([]Line, len(c.Lines)),
		UpdatedAt: c.UpdatedAt,
	}
	copy(out.Lines, c.Lines)
	return out
}

// FinalAmount subtracts the discount without clamping; the result may be negative.
func FinalAmount(total, discount decimal.Decimal) decimal.Decimal {
	return total.Sub(discount)
}

func (c *Cart) indexOf(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) add(p catalog.Product, quantity int) error {
	if quantity <= 0 || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if i := c.indexOf(p.ID); i >= 0 {
		if c.Lines[i].Quantity > MaxQuantity-quantity {
			return ErrInvalidQuantity
		}
		c.Lines[i].Quantity += quantity
		return nil
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Quantity:  quantity,
	})
	return nil
}

func (c *Cart) setQuantity(productID int64, quantity int) (removed bool, err error) {
	i := c.indexOf(productID)
	if quantity <= 0 {
		c.remove(productID)
		return true, nil
	}
	if quantity > MaxQuantity {
		return false, ErrInvalidQuantity
	}
	if i < 0 {
		return false, ErrLineNotFound
	}
	c.Lines[i].Quantity = quantity
	return false, nil
}

func (c *Cart) remove(productID int64) {
	if i := c.indexOf(productID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}
