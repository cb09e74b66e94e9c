package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ContactInfo is the shipping contact a buyer submits at checkout. Every
// field is required.
type ContactInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// Validate reports every missing field at once so the buyer can fix the whole
// form in one pass. It returns nil when the contact is complete.
func (c ContactInfo) Validate() *ValidationError {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("full_name", c.FullName)
	check("email", c.Email)
	check("phone", c.Phone)
	check("address", c.Address)
	check("city", c.City)
	check("state", c.State)
	check("pincode", c.Pincode)
	if len(missing) > 0 {
		return NewValidationError("missing required fields", missing...)
	}
	return nil
}

// OrderItem is one purchased line. Price is the unit price captured at
// checkout time, so later catalog price changes never touch past orders.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal is Price * Qty for this line.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Order is a completed purchase. UserID stays set to the buyer's account and
// survives as a nil pointer if that account is later deleted.
type Order struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"user_id"`
	ContactInfo
	Paid      bool        `json:"paid"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// TotalAmount sums the item subtotals.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderRepository persists orders. CreateOrder runs the whole checkout write
// in one transaction: it locks each product row, snapshots the current price,
// inserts the order with its items and decrements stock, clamping at zero.
// It fails with ErrProductNotFound if any cart line no longer resolves to an
// active product, leaving the database untouched.
type OrderRepository interface {
	CreateOrder(ctx context.Context, userID *int64, contact ContactInfo, lines []CartLine) (*Order, error)
	GetOrderByID(ctx context.Context, id int64) (*Order, error)
}
