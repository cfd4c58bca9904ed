package domain

import "fmt"

type CartLine struct {
	Item     *CatalogItem
	Quantity int
}

func (l CartLine) LineTotal() Money {
	return l.Item.Price.Mul(l.Quantity)
}

// Rejection describes a line the cart refused to admit.
type Rejection struct {
	Item      string
	Requested int
	Available int
}

func (r Rejection) String() string {
	if r.Requested <= 0 {
		return fmt.Sprintf("Cannot add non-positive quantity %d of %s", r.Requested, r.Item)
	}
	return fmt.Sprintf("Cannot add more than available stock for %s", r.Item)
}

// Cart is an insertion-ordered list of lines. It is built by a single caller and discarded after checkout.
type Cart struct {
	lines    []CartLine
	onReject func(Rejection)
}

type CartOption func(*Cart)

// WithRejectHandler installs the hook called for every line Add refuses.
func WithRejectHandler(fn func(Rejection)) CartOption {
	return func(c *Cart) {
		c.onReject = fn
	}
}

func NewCart(opts ...CartOption) *Cart {
	c := &Cart{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add appends a line if quantity is positive and within the item's current stock.
// A refused line is reported through the reject hook and leaves the cart unchanged.
func (c *Cart) Add(item *CatalogItem, quantity int) bool {
	if item == nil {
		return false
	}

	available := item.Available()
	if quantity <= 0 || quantity > available {
		if c.onReject != nil {
			c.onReject(Rejection{Item: item.Name, Requested: quantity, Available: available})
		}
		return false
	}

	c.lines = append(c.lines, CartLine{Item: item, Quantity: quantity})
	return true
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
