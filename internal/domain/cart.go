package domain

import "time"

// MaxQuantityPerLine is the hard per-line quantity cap. Attempts to exceed it
// are clamped, never partially filled.
const MaxQuantityPerLine = 10

// MaxLinesPerCart is the maximum number of distinct products allowed in a cart.
const MaxLinesPerCart = 50

// Cart represents a shopping cart.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartLine is one product entry with quantity in the cart. ProductID is the
// normalized product reference, fixed once at insertion time.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	ImageRef  string `json:"image_ref,omitempty"`
}

// Subtotal computes the sum of unit price times quantity over all lines (in paise).
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the total unit count across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLineIndex returns the index of the line matching the given product ID,
// or -1 if not present.
func (c *Cart) FindLineIndex(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
