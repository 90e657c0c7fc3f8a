// Package words holds the word catalog: the three fixed categories, their word lists,
// and the formats the lists are loaded from and saved to.
package words

import (
	"slices"
	"strings"
)

// Category is one of the three fixed word classes on a card.
type Category string

const (
	Future Category = "future"
	Thing  Category = "thing"
	Theme  Category = "theme"
)

// Categories lists every category in card order.
var Categories = []Category{Future, Thing, Theme}

// ParseCategory lowercases s and checks it against the fixed set.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case Future, Thing, Theme:
		return c, true
	}
	return "", false
}

// Label is the card heading used by the views.
func (c Category) Label() string {
	switch c {
	case Future:
		return "Energy Future"
	case Thing:
		return "Solution"
	case Theme:
		return "Focus Area"
	}
	return string(c)
}

// Catalog maps each category to its ordered word list. A Catalog is treated as
// immutable once built; edits produce a new one.
type Catalog map[Category][]string

// NewCatalog returns a catalog with all three categories present and empty.
func NewCatalog() Catalog {
	c := make(Catalog, len(Categories))
	for _, cat := range Categories {
		c[cat] = []string{}
	}
	return c
}

// FromLists builds a catalog from raw per-category lists, normalizing every word
// and dropping blanks. Unknown categories are ignored.
func FromLists(lists map[string][]string) Catalog {
	c := NewCatalog()
	for name, ws := range lists {
		cat, ok := ParseCategory(name)
		if !ok {
			continue
		}
		for _, w := range ws {
			if w = Normalize(w); w != "" {
				c[cat] = append(c[cat], w)
			}
		}
	}
	return c
}

// Normalize trims and uppercases a word.
func Normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// Words returns the list for c. The slice must not be modified.
func (c Catalog) Words(cat Category) []string {
	return c[cat]
}

// Contains reports whether w is in the list for cat.
func (c Catalog) Contains(cat Category, w string) bool {
	return slices.Contains(c[cat], w)
}

// Counts returns the number of words per category.
func (c Catalog) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, cat := range Categories {
		out[cat] = len(c[cat])
	}
	return out
}

// Total is the number of words across all categories.
func (c Catalog) Total() int {
	n := 0
	for _, cat := range Categories {
		n += len(c[cat])
	}
	return n
}

// Clone returns a deep copy with all three categories present.
func (c Catalog) Clone() Catalog {
	out := NewCatalog()
	for _, cat := range Categories {
		out[cat] = append(out[cat], c[cat]...)
	}
	return out
}

// Lists converts the catalog back to plain string keys, for JSON.
func (c Catalog) Lists() map[string][]string {
	out := make(map[string][]string, len(Categories))
	for _, cat := range Categories {
		out[string(cat)] = append([]string{}, c[cat]...)
	}
	return out
}
