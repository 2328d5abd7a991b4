package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NoCategory is the tombstone an item's Category takes once the category it
// referenced has been deleted.
const NoCategory = ""

// AllCategories selects every item in ByCategory and Visible.
const AllCategories = ""

// Category is a named grouping for items.
type Category struct {
	ID   string
	Name string
}

// Item is a catalog entry. Category holds the category name, not its id.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
}

// HasCategory reports whether the item still references a category.
func (i Item) HasCategory() bool {
	return i.Category != NoCategory
}

// DisplayPrice renders the price with two fraction digits.
func (i Item) DisplayPrice() string {
	return FormatPrice(i.Price)
}

// ItemDraft carries the four mutable item fields for create and update.
type ItemDraft struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required,price"`
	Category    string `json:"category" validate:"required"`
}

// normalized returns a copy with surrounding whitespace removed.
func (d ItemDraft) normalized() ItemDraft {
	return ItemDraft{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       strings.TrimSpace(d.Price),
		Category:    strings.TrimSpace(d.Category),
	}
}

// FormatPrice renders raw with exactly two fraction digits. Absent or
// unparseable prices render as zero.
func FormatPrice(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero.StringFixed(2)
	}
	return d.StringFixed(2)
}

// ParsePrice parses a non-negative decimal price.
func ParsePrice(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

func cloneCategories(categories []Category) []Category {
	if len(categories) == 0 {
		return nil
	}
	dup := make([]Category, len(categories))
	copy(dup, categories)
	return dup
}
