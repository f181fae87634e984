// Package cart maintains the working selection of items for the current
// session and keeps the derived totals consistent after every mutation.
package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/psingh05395/swadhyatra/internal/domain/catalog"
)

// ErrInvalidQuantity is returned when adding an item with a quantity below 1.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Line is one item-quantity-instructions tuple in the cart. A cart holds at
// most one line per item identifier.
type Line struct {
	Item         catalog.Item
	Quantity     int
	Instructions string
}

// LineTotal returns the effective unit price multiplied by the quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Item.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Pricing holds the fixed pricing constants applied to every cart. The
// delivery fee is deliberately kept out of mutable cart state and applied
// fresh on each recomputation.
type Pricing struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

// DefaultPricing returns the standard storefront pricing: 18% tax and a flat
// delivery fee of 50 currency units.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:     decimal.RequireFromString("0.18"),
		DeliveryFee: decimal.NewFromInt(50),
	}
}

// Cart is an ordered sequence of lines plus derived totals. The totals are
// recomputed synchronously after every mutation, so no inconsistent state is
// ever observable. Not safe for concurrent use; state is single-owner.
type Cart struct {
	pricing Pricing
	lines   []Line

	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

// New returns an empty cart using the given pricing.
func New(pricing Pricing) *Cart {
	c := &Cart{pricing: pricing}
	c.recompute()
	return c
}

// AddItem adds quantity units of the item. When a line for the item already
// exists its quantity is incremented; the instructions are replaced only when
// explicitly passed. Returns ErrInvalidQuantity when quantity < 1.
func (c *Cart) AddItem(item catalog.Item, quantity int, instructions ...string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	defer c.recompute()

	for i := range c.lines {
		if c.lines[i].Item.ID != item.ID {
			continue
		}
		c.lines[i].Quantity += quantity
		if len(instructions) > 0 {
			c.lines[i].Instructions = instructions[0]
		}
		return nil
	}

	line := Line{Item: item, Quantity: quantity}
	if len(instructions) > 0 {
		line.Instructions = instructions[0]
	}
	c.lines = append(c.lines, line)
	return nil
}

// RemoveItem deletes the line for the given item identifier. Removing an
// absent item is a no-op, not an error.
func (c *Cart) RemoveItem(itemID string) {
	defer c.recompute()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity exactly. A quantity of zero or below
// removes the line.
func (c *Cart) SetQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}

	defer c.recompute()

	for i := range c.lines {
		if c.lines[i].Item.ID == itemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties all lines and recomputes the totals. The delivery fee is a
// flat constant independent of item count, so an item-empty cart still
// reports Total == DeliveryFee.
func (c *Cart) Clear() {
	c.lines = nil
	c.recompute()
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Pricing returns the cart's fixed pricing constants.
func (c *Cart) Pricing() Pricing {
	return c.pricing
}

// Subtotal returns the sum of effective line prices.
func (c *Cart) Subtotal() decimal.Decimal {
	return c.subtotal
}

// Tax returns TaxRate * Subtotal.
func (c *Cart) Tax() decimal.Decimal {
	return c.tax
}

// Total returns Subtotal + DeliveryFee + Tax.
func (c *Cart) Total() decimal.Decimal {
	return c.total
}

// recompute rebuilds the derived totals from the lines. Called after every
// mutation so the pricing invariants hold at all times.
func (c *Cart) recompute() {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	c.subtotal = subtotal
	c.tax = subtotal.Mul(c.pricing.TaxRate)
	c.total = subtotal.Add(c.pricing.DeliveryFee).Add(c.tax)
}
