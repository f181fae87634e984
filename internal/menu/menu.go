// Package menu loads the static catalog seed: the dishes and menu sections
// the storefront sells. The canonical format is a single JSON document,
// optionally gzip-compressed, produced by cmd/menu-ingest.
package menu

import (
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/psingh05395/swadhyatra/internal/domain/catalog"
)

// Menu is the decoded catalog seed.
type Menu struct {
	Items      []catalog.Item
	Categories []catalog.Category
}

// Embedded returns the menu compiled into the binary.
func Embedded() (*Menu, error) {
	m, err := DecodeBytes(embeddedMenu)
	if err != nil {
		return nil, errors.Wrap(err, "decode embedded menu")
	}
	return m, nil
}

// LoadFile reads a menu document from disk. Files ending in .gz are
// decompressed transparently.
func LoadFile(path string) (*Menu, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open menu file")
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "open gzip reader")
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read menu file")
	}
	return DecodeBytes(data)
}

// DecodeBytes parses a menu document.
func DecodeBytes(data []byte) (*Menu, error) {
	var m Menu
	d := jx.DecodeBytes(data)

	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeItem(d)
				if err != nil {
					return err
				}
				m.Items = append(m.Items, item)
				return nil
			})
		case "categories":
			return d.Arr(func(d *jx.Decoder) error {
				category, err := decodeCategory(d)
				if err != nil {
					return err
				}
				m.Categories = append(m.Categories, category)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the structural invariants of a menu document: unique item
// identifiers, non-negative prices, and discounts within [0, 100].
func Validate(m *Menu) error {
	seen := make(map[string]struct{}, len(m.Items))
	for _, item := range m.Items {
		if item.ID == "" {
			return errors.Errorf("item %q has no id", item.Name)
		}
		if _, ok := seen[item.ID]; ok {
			return errors.Errorf("duplicate item id %s", item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.Price.IsNegative() {
			return errors.Errorf("item %s has negative price", item.ID)
		}
		if item.Discount.IsNegative() || item.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return errors.Errorf("item %s has discount outside [0, 100]", item.ID)
		}
	}
	return nil
}

// Encode serializes a menu document in the canonical format.
func Encode(m *Menu) []byte {
	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range m.Items {
		encodeItem(&e, item)
	}
	e.ArrEnd()

	e.FieldStart("categories")
	e.ArrStart()
	for _, category := range m.Categories {
		encodeCategory(&e, category)
	}
	e.ArrEnd()

	e.ObjEnd()
	return e.Bytes()
}

func decodeItem(d *jx.Decoder) (catalog.Item, error) {
	var item catalog.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			item.ID, err = d.Str()
		case "name":
			item.Name, err = d.Str()
		case "description":
			item.Description, err = d.Str()
		case "price":
			item.Price, err = decodeDecimal(d)
		case "discount":
			item.Discount, err = decodeDecimal(d)
		case "category":
			item.Category, err = d.Str()
		case "rating":
			item.Rating, err = d.Float64()
		case "reviews":
			item.Reviews, err = d.Int()
		case "ingredients":
			err = d.Arr(func(d *jx.Decoder) error {
				ingredient, err := d.Str()
				if err != nil {
					return err
				}
				item.Ingredients = append(item.Ingredients, ingredient)
				return nil
			})
		case "prep_minutes":
			item.PrepMinutes, err = d.Int()
		case "vegetarian":
			item.Vegetarian, err = d.Bool()
		case "spicy":
			item.Spicy, err = d.Bool()
		case "image":
			item.Image, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return item, err
}

func decodeCategory(d *jx.Decoder) (catalog.Category, error) {
	var category catalog.Category
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			category.ID, err = d.Str()
		case "name":
			category.Name, err = d.Str()
		case "description":
			category.Description, err = d.Str()
		case "image":
			category.Image, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return category, err
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.Trim(string(n), `"`))
}

func encodeItem(e *jx.Encoder, item catalog.Item) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(item.ID)
	e.FieldStart("name")
	e.Str(item.Name)
	e.FieldStart("description")
	e.Str(item.Description)
	e.FieldStart("price")
	e.RawStr(item.Price.String())
	if item.Discount.IsPositive() {
		e.FieldStart("discount")
		e.RawStr(item.Discount.String())
	}
	e.FieldStart("category")
	e.Str(item.Category)
	e.FieldStart("rating")
	e.Float64(item.Rating)
	e.FieldStart("reviews")
	e.Int(item.Reviews)
	if len(item.Ingredients) > 0 {
		e.FieldStart("ingredients")
		e.ArrStart()
		for _, ingredient := range item.Ingredients {
			e.Str(ingredient)
		}
		e.ArrEnd()
	}
	e.FieldStart("prep_minutes")
	e.Int(item.PrepMinutes)
	e.FieldStart("vegetarian")
	e.Bool(item.Vegetarian)
	e.FieldStart("spicy")
	e.Bool(item.Spicy)
	if item.Image != "" {
		e.FieldStart("image")
		e.Str(item.Image)
	}
	e.ObjEnd()
}

func encodeCategory(e *jx.Encoder, category catalog.Category) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(category.ID)
	e.FieldStart("name")
	e.Str(category.Name)
	if category.Description != "" {
		e.FieldStart("description")
		e.Str(category.Description)
	}
	if category.Image != "" {
		e.FieldStart("image")
		e.Str(category.Image)
	}
	e.ObjEnd()
}
