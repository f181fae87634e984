// Package catalog holds the static menu of sellable items and answers
// filtered queries over it.
package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Item represents a dish available for ordering. Items are loaded once at
// startup and never mutated.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	// Discount is a percentage in [0, 100]. Zero means no discount.
	Discount    decimal.Decimal
	Category    string
	Rating      float64
	Reviews     int
	Ingredients []string
	PrepMinutes int
	Vegetarian  bool
	Spicy       bool
	Image       string
}

// EffectivePrice returns the unit price after the percentage discount is
// applied. Full precision is retained; rounding happens at display time only.
func (i Item) EffectivePrice() decimal.Decimal {
	if i.Discount.IsZero() {
		return i.Price
	}
	return i.Price.Mul(hundred.Sub(i.Discount)).Div(hundred)
}

// Discounted reports whether the item carries a discount.
func (i Item) Discounted() bool {
	return i.Discount.IsPositive()
}

// Category represents a menu section.
type Category struct {
	ID          string
	Name        string
	Description string
	Image       string
}

// ItemNotFoundError indicates a requested item does not exist in the catalog.
type ItemNotFoundError struct {
	ID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

// Catalog owns the item and category sets together with the active browse
// filters. Not safe for concurrent use; state is single-owner.
type Catalog struct {
	items      []Item
	byID       map[string]int
	categories []Category

	// Browse filters. An empty category means no category filter.
	category string
	search   string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byID: make(map[string]int)}
}

// SetItems replaces the full item set. Last write wins.
func (c *Catalog) SetItems(items []Item) {
	c.items = make([]Item, len(items))
	copy(c.items, items)
	c.byID = make(map[string]int, len(items))
	for i := range c.items {
		c.byID[c.items[i].ID] = i
	}
}

// SetCategories replaces the full category set. Last write wins.
func (c *Catalog) SetCategories(categories []Category) {
	c.categories = make([]Category, len(categories))
	copy(c.categories, categories)
}

// SetCategoryFilter sets the active category filter. An empty label clears it.
func (c *Catalog) SetCategoryFilter(label string) {
	c.category = label
}

// SetSearchText sets the case-insensitive substring filter.
func (c *Catalog) SetSearchText(text string) {
	c.search = text
}

// CategoryFilter returns the active category filter, empty when unset.
func (c *Catalog) CategoryFilter() string {
	return c.category
}

// SearchText returns the active search filter.
func (c *Catalog) SearchText() string {
	return c.search
}

// Items returns all items in catalog order, ignoring filters.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Categories returns all menu sections.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Get returns the item with the given identifier.
func (c *Catalog) Get(id string) (*Item, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, &ItemNotFoundError{ID: id}
	}
	item := c.items[i]
	return &item, nil
}

// Query returns the items matching the active filters, in catalog order.
// An item matches when its category equals the category filter (or no filter
// is set) and the search text appears case-insensitively in its name,
// description, or category (or the search text is empty). Query is a pure
// function of the current filter state and catalog contents.
func (c *Catalog) Query() []Item {
	needle := strings.ToLower(c.search)

	var out []Item
	for _, item := range c.items {
		if c.category != "" && item.Category != c.category {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Featured returns up to limit discounted items, in catalog order.
func (c *Catalog) Featured(limit int) []Item {
	var out []Item
	for _, item := range c.items {
		if !item.Discounted() {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Popular returns up to limit items rated minRating or higher, in catalog order.
func (c *Catalog) Popular(minRating float64, limit int) []Item {
	var out []Item
	for _, item := range c.items {
		if item.Rating < minRating {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}

func matchesSearch(item Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle) ||
		strings.Contains(strings.ToLower(item.Category), needle)
}
