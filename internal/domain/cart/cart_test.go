package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psingh05395/swadhyatra/internal/domain/catalog"
)

func newTestItem(id string, price string) catalog.Item {
	return catalog.Item{
		ID:       id,
		Name:     "dish " + id,
		Price:    decimal.RequireFromString(price),
		Category: "Main Course",
	}
}

func newDiscountedItem(id, price, discount string) catalog.Item {
	item := newTestItem(id, price)
	item.Discount = decimal.RequireFromString(discount)
	return item
}

// requireInvariants recomputes the totals from scratch and compares them to
// the stored derived fields.
func requireInvariants(t *testing.T, c *Cart) {
	t.Helper()

	subtotal := decimal.Zero
	for _, line := range c.Lines() {
		subtotal = subtotal.Add(line.Item.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := subtotal.Mul(c.Pricing().TaxRate)
	total := subtotal.Add(c.Pricing().DeliveryFee).Add(tax)

	require.True(t, subtotal.Equal(c.Subtotal()), "subtotal: want %s got %s", subtotal, c.Subtotal())
	require.True(t, tax.Equal(c.Tax()), "tax: want %s got %s", tax, c.Tax())
	require.True(t, total.Equal(c.Total()), "total: want %s got %s", total, c.Total())
}

func TestAddItem(t *testing.T) {
	c := New(DefaultPricing())

	require.NoError(t, c.AddItem(newTestItem("d1", "100"), 2))
	require.NoError(t, c.AddItem(newTestItem("d2", "80"), 1, "extra spicy"))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "extra spicy", lines[1].Instructions)
	requireInvariants(t, c)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	c := New(DefaultPricing())
	item := newTestItem("d1", "100")

	require.NoError(t, c.AddItem(item, 1, "no onions"))
	require.NoError(t, c.AddItem(item, 2))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	// Instructions untouched when not passed.
	assert.Equal(t, "no onions", lines[0].Instructions)

	// Passing instructions replaces them.
	require.NoError(t, c.AddItem(item, 1, "less salt"))
	assert.Equal(t, "less salt", c.Lines()[0].Instructions)
	requireInvariants(t, c)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	c := New(DefaultPricing())

	err := c.AddItem(newTestItem("d1", "100"), 0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestRemoveItem(t *testing.T) {
	c := New(DefaultPricing())
	require.NoError(t, c.AddItem(newTestItem("d1", "100"), 1))
	require.NoError(t, c.AddItem(newTestItem("d2", "80"), 1))

	c.RemoveItem("d1")
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "d2", lines[0].Item.ID)
	requireInvariants(t, c)

	// Removing an absent item is a no-op.
	c.RemoveItem("missing")
	assert.Len(t, c.Lines(), 1)
}

func TestSetQuantity(t *testing.T) {
	c := New(DefaultPricing())
	require.NoError(t, c.AddItem(newTestItem("d1", "100"), 1))

	c.SetQuantity("d1", 5)
	assert.Equal(t, 5, c.Lines()[0].Quantity)
	requireInvariants(t, c)
}

func TestSetQuantityZeroMatchesRemove(t *testing.T) {
	item := newTestItem("d1", "100")

	removed := New(DefaultPricing())
	require.NoError(t, removed.AddItem(item, 2))
	removed.RemoveItem("d1")

	zeroed := New(DefaultPricing())
	require.NoError(t, zeroed.AddItem(item, 2))
	zeroed.SetQuantity("d1", 0)

	assert.Equal(t, removed.Lines(), zeroed.Lines())
	assert.True(t, removed.Total().Equal(zeroed.Total()))
	requireInvariants(t, zeroed)
}

func TestLineUniqueness(t *testing.T) {
	c := New(DefaultPricing())
	item := newTestItem("d1", "100")
	other := newTestItem("d2", "80")

	require.NoError(t, c.AddItem(item, 1))
	require.NoError(t, c.AddItem(other, 1))
	require.NoError(t, c.AddItem(item, 3))
	c.SetQuantity("d2", 4)
	c.RemoveItem("d2")
	require.NoError(t, c.AddItem(other, 2))

	seen := make(map[string]bool)
	for _, line := range c.Lines() {
		require.False(t, seen[line.Item.ID], "duplicate line for %s", line.Item.ID)
		seen[line.Item.ID] = true
	}
	requireInvariants(t, c)
}

func TestTotalsWithDiscount(t *testing.T) {
	// One line: price 100, discount 10%, quantity 2, delivery fee 50.
	c := New(DefaultPricing())
	require.NoError(t, c.AddItem(newDiscountedItem("d1", "100", "10"), 2))

	assert.True(t, decimal.RequireFromString("180").Equal(c.Subtotal()), "subtotal %s", c.Subtotal())
	assert.True(t, decimal.RequireFromString("32.4").Equal(c.Tax()), "tax %s", c.Tax())
	assert.True(t, decimal.RequireFromString("262.4").Equal(c.Total()), "total %s", c.Total())
}

func TestClear(t *testing.T) {
	c := New(DefaultPricing())
	require.NoError(t, c.AddItem(newTestItem("d1", "100"), 3))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
	assert.True(t, c.Tax().IsZero())
	// The delivery fee is a flat constant, so it is still reflected in the total.
	assert.True(t, c.Pricing().DeliveryFee.Equal(c.Total()))
	requireInvariants(t, c)
}

func TestTotalsAfterEveryMutation(t *testing.T) {
	c := New(DefaultPricing())

	require.NoError(t, c.AddItem(newDiscountedItem("d1", "149.50", "25"), 1))
	requireInvariants(t, c)
	require.NoError(t, c.AddItem(newTestItem("d2", "65"), 4))
	requireInvariants(t, c)
	c.SetQuantity("d2", 2)
	requireInvariants(t, c)
	c.RemoveItem("d1")
	requireInvariants(t, c)
	c.Clear()
	requireInvariants(t, c)
}
