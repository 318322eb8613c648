package cart

import (
	"math"

	"grocerystore/internal/domain/catalog"
)

// TaxRate is the flat storefront tax applied to every order.
const TaxRate = 0.10

// Line is one product in a cart. Name and price are snapshotted from the
// product at add time, so a later catalog price change does not reprice
// lines already in a cart.
type Line struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (l Line) Total() float64 {
	return round2(l.Price * float64(l.Quantity))
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Cart is an ordered list of lines, at most one per product ID. It is not
// safe for concurrent use; the session owning it serializes access.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add appends a quantity-1 line for the product, or bumps the quantity of
// the existing line for it. No stock check happens here; availability is
// enforced when the order is placed.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Remove deletes the line for the product, no-op if absent.
func (c *Cart) Remove(productID int64) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity exactly. Quantities below 1 are
// ignored: a line leaves the cart through Remove, never by zeroing out.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Totals derives the monetary summary of the current lines. Amounts are
// rounded to 2 decimals; the total is the sum of the rounded parts, so
// Total == Subtotal + Tax always holds.
func (c *Cart) Totals() Totals {
	var subtotal float64
	for _, l := range c.lines {
		subtotal += l.Price * float64(l.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    round2(subtotal + tax),
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
