package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleItems() []Item {
	return []Item{
		{ID: "1", Name: "Tiling", Description: "floors", Category: "Renovation"},
		{ID: "2", Name: "Painting", Description: "walls", Category: "Renovation"},
		{ID: "3", Name: "Leak fix", Description: "Wall pipes", Category: "Plumbing"},
		{ID: "4", Name: "", Description: "", Category: "Plumbing"},
		{ID: "5", Name: "STRASSE cleanup", Description: "street", Category: NoCategory},
	}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	sort.Strings(out)
	return out
}

func TestBySearch_MatchesNameOrDescription(t *testing.T) {
	items := []Item{
		{ID: "t", Name: "Tiling", Description: "floors"},
		{ID: "p", Name: "Painting", Description: "walls"},
	}
	got := BySearch(items, "wall")
	assert.Equal(t, []Item{{ID: "p", Name: "Painting", Description: "walls"}}, got)
}

func TestBySearch_CaseInsensitive(t *testing.T) {
	assert.Equal(t, []string{"2", "3"}, ids(BySearch(sampleItems(), "WALL")))
	assert.Equal(t, []string{"1"}, ids(BySearch(sampleItems(), "tIlInG")))
	assert.Equal(t, []string{"5"}, ids(BySearch(sampleItems(), "strasse")))
}

func TestBySearch_EmptyTermIsIdentity(t *testing.T) {
	assert.Equal(t, sampleItems(), BySearch(sampleItems(), ""))
}

func TestBySearch_BlankFieldsNeverMatch(t *testing.T) {
	for _, item := range BySearch(sampleItems(), "a") {
		assert.NotEqual(t, "4", item.ID)
	}
}

func TestByCategory(t *testing.T) {
	assert.Equal(t, sampleItems(), ByCategory(sampleItems(), AllCategories))
	assert.Equal(t, []string{"3", "4"}, ids(ByCategory(sampleItems(), "Plumbing")))
	assert.Empty(t, ByCategory(sampleItems(), "Roofing"))
}

func TestVisible_IsIntersectionOfFilters(t *testing.T) {
	items := sampleItems()
	categories := []string{AllCategories, "Renovation", "Plumbing", "Roofing"}
	terms := []string{"", "wall", "a", "FLOOR", "zzz"}

	for _, c := range categories {
		for _, term := range terms {
			got := ids(Visible(items, c, term))

			byCat := map[string]bool{}
			for _, item := range Visible(items, c, "") {
				byCat[item.ID] = true
			}
			var want []string
			for _, item := range Visible(items, AllCategories, term) {
				if byCat[item.ID] {
					want = append(want, item.ID)
				}
			}
			sort.Strings(want)
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, got, "category=%q term=%q", c, term)

			// Composition order does not matter.
			assert.Equal(t, got, ids(ByCategory(BySearch(items, term), c)))
		}
	}
}

func TestVisible_DoesNotAliasInput(t *testing.T) {
	items := sampleItems()
	out := Visible(items, AllCategories, "")
	out[0].Name = "changed"
	assert.Equal(t, "Tiling", items[0].Name)
}

func TestUsedCategories_FirstAppearanceOrder(t *testing.T) {
	assert.Equal(t, []string{"Renovation", "Plumbing"}, usedCategories(sampleItems()))
	assert.Nil(t, usedCategories(nil))
}

func TestFormatPrice(t *testing.T) {
	cases := map[string]string{
		"12":      "12.00",
		"12.5":    "12.50",
		" 7.129 ": "7.13",
		"":        "0.00",
		"abc":     "0.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPrice(in), "FormatPrice(%q)", in)
	}
}
