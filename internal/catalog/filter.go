package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// ByCategory keeps items whose category equals selected. AllCategories keeps
// everything.
func ByCategory(items []Item, selected string) []Item {
	if selected == AllCategories {
		return cloneItems(items)
	}
	var out []Item
	for _, item := range items {
		if item.Category == selected {
			out = append(out, item)
		}
	}
	return out
}

// BySearch keeps items whose name or description contains term, ignoring
// case. An empty term keeps everything.
func BySearch(items []Item, term string) []Item {
	if term == "" {
		return cloneItems(items)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	var out []Item
	for _, item := range items {
		if strings.Contains(fold.String(item.Name), needle) ||
			strings.Contains(fold.String(item.Description), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Visible applies both filters. Callers count and render the same slice.
func Visible(items []Item, selected, term string) []Item {
	return BySearch(ByCategory(items, selected), term)
}

// usedCategories lists distinct category names referenced by items in order
// of first appearance. Tombstoned items are skipped.
func usedCategories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	var names []string
	for _, item := range items {
		if !item.HasCategory() {
			continue
		}
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		names = append(names, item.Category)
	}
	return names
}
