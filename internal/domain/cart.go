package domain

// CartLine is one cart entry. Qty is always >= 1 for stored lines; mutations
// that would drop it to zero remove the line instead.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

// Cart is the per-session shopping cart. It is a plain value: handlers pass
// it in and out and the session store persists it, so no cart state lives
// outside the session. Lines keep insertion order, which later fixes the
// display order of the order items created from them.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add increments the quantity for productID by one, appending a new line the
// first time the product shows up.
func (c *Cart) Add(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Qty++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Qty: 1})
}

// SetQuantity sets the quantity for productID exactly. Quantities <= 0 remove
// the line; they are never stored.
func (c *Cart) SetQuantity(productID int64, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Qty = qty
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Qty: qty})
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Quantity returns the stored quantity for productID, zero if absent.
func (c *Cart) Quantity(productID int64) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Qty
		}
	}
	return 0
}

// TotalQuantity sums the quantities of every line.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Qty
	}
	return total
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}
