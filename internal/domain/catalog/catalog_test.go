package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(id, name, description, category string) Item {
	return Item{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.NewFromInt(100),
		Category:    category,
	}
}

func newTestCatalog(items ...Item) *Catalog {
	c := New()
	c.SetItems(items)
	return c
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{name: "no discount", price: "100", discount: "0", want: "100"},
		{name: "ten percent off", price: "100", discount: "10", want: "90"},
		{name: "full discount", price: "250", discount: "100", want: "0"},
		{name: "fractional price", price: "149.50", discount: "25", want: "112.125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := Item{
				Price:    decimal.RequireFromString(tt.price),
				Discount: decimal.RequireFromString(tt.discount),
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(item.EffectivePrice()),
				"got %s", item.EffectivePrice())
		})
	}
}

func TestGet(t *testing.T) {
	c := newTestCatalog(newTestItem("d1", "Thekua", "sweet snack", "Snacks"))

	item, err := c.Get("d1")
	require.NoError(t, err)
	assert.Equal(t, "Thekua", item.Name)

	_, err = c.Get("missing")
	var nfErr *ItemNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "missing", nfErr.ID)
}

func TestSetItemsLastWriteWins(t *testing.T) {
	c := newTestCatalog(newTestItem("d1", "Old", "", "Snacks"))
	c.SetItems([]Item{newTestItem("d2", "New", "", "Snacks")})

	_, err := c.Get("d1")
	require.Error(t, err)
	item, err := c.Get("d2")
	require.NoError(t, err)
	assert.Equal(t, "New", item.Name)
}

func TestQuerySearch(t *testing.T) {
	c := newTestCatalog(
		newTestItem("d1", "Butter Chicken", "creamy tomato gravy", "Main Course"),
		newTestItem("d2", "Paneer Tikka", "grilled cottage cheese", "Starters"),
		newTestItem("d3", "Chicken Biryani", "fragrant rice", "Main Course"),
		newTestItem("d4", "Gulab Jamun", "best with chicken-free meals", "Desserts"),
	)

	c.SetSearchText("chicken")
	got := c.Query()
	require.Len(t, got, 3)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, "d3", got[1].ID)
	assert.Equal(t, "d4", got[2].ID)

	// Case-insensitive.
	c.SetSearchText("CHICKEN")
	assert.Len(t, c.Query(), 3)
}

func TestQueryCategoryAndSearch(t *testing.T) {
	c := newTestCatalog(
		newTestItem("d1", "Butter Chicken", "creamy tomato gravy", "Main Course"),
		newTestItem("d2", "Chicken 65", "spicy fried bites", "Starters"),
		newTestItem("d3", "Dal Makhani", "slow cooked lentils", "Main Course"),
	)

	c.SetCategoryFilter("Main Course")
	c.SetSearchText("chicken")
	got := c.Query()
	require.Len(t, got, 1)
	assert.Equal(t, "d1", got[0].ID)

	// Clearing the category filter widens the result again.
	c.SetCategoryFilter("")
	assert.Len(t, c.Query(), 2)
}

func TestQueryNoFilters(t *testing.T) {
	items := []Item{
		newTestItem("d1", "Samosa", "", "Snacks"),
		newTestItem("d2", "Jalebi", "", "Desserts"),
	}
	c := newTestCatalog(items...)

	got := c.Query()
	require.Len(t, got, 2)
	assert.Equal(t, "d1", got[0].ID)
	assert.Equal(t, "d2", got[1].ID)
}

func TestQueryIsPure(t *testing.T) {
	c := newTestCatalog(newTestItem("d1", "Samosa", "", "Snacks"))
	c.SetSearchText("samosa")

	first := c.Query()
	second := c.Query()
	assert.Equal(t, first, second)
}

func TestFeaturedAndPopular(t *testing.T) {
	discounted := newTestItem("d1", "Chole Bhature", "", "Main Course")
	discounted.Discount = decimal.NewFromInt(20)
	plain := newTestItem("d2", "Idli", "", "South Indian")
	plain.Rating = 4.7
	lowRated := newTestItem("d3", "Vada", "", "South Indian")
	lowRated.Rating = 3.9

	c := newTestCatalog(discounted, plain, lowRated)

	featured := c.Featured(6)
	require.Len(t, featured, 1)
	assert.Equal(t, "d1", featured[0].ID)

	popular := c.Popular(4.5, 6)
	require.Len(t, popular, 1)
	assert.Equal(t, "d2", popular[0].ID)
}
