package domain

import (
	"fmt"
	"pop-lab/errors"
	"slices"
	"strings"
)

// CatalogItem is one syrup, soda or add-in.
// Type is the space-separated descriptor used for similarity. SyrupPairing and
// SodaPairing describe which syrup types and soda types the item goes well with.
type CatalogItem struct {
	Name         string  `json:"name" yaml:"name" validate:"required,max=100"`
	Type         string  `json:"type" yaml:"type"`
	Calorie      Calorie `json:"calorie,omitempty" yaml:"calorie"`
	SyrupPairing string  `json:"syrup_pairing,omitempty" yaml:"syrup_pairing"`
	SodaPairing  string  `json:"soda_pairing,omitempty" yaml:"soda_pairing"`
}

func (i CatalogItem) Text(column Column) string {
	switch column {
	case ColumnSyrupPairing:
		return i.SyrupPairing
	case ColumnSodaPairing:
		return i.SodaPairing
	default:
		return i.Type
	}
}

func (i CatalogItem) IsDiet() bool {
	return i.Calorie == Diet
}

type shelf struct {
	items []CatalogItem
	index map[string]int
}

// Catalog holds the three item collections, loaded once and never mutated afterwards.
// Every accessor hands out copies so concurrent readers need no locking.
type Catalog struct {
	shelves  map[Category]shelf
	featured []FeaturedDrink
}

// NewCatalog lowercases item names and builds the name index of each category.
// Every category must hold at least one item.
func NewCatalog(syrups, sodas, addins []CatalogItem, featured ...FeaturedDrink) (*Catalog, error) {
	c := &Catalog{shelves: make(map[Category]shelf, len(Categories))}
	input := map[Category][]CatalogItem{Syrup: syrups, Soda: sodas, AddIn: addins}
	for _, category := range Categories {
		s, err := newShelf(category, input[category])
		if err != nil {
			return nil, err
		}
		c.shelves[category] = s
	}
	for _, drink := range featured {
		c.featured = append(c.featured, drink.normalized())
	}
	return c, nil
}

func newShelf(category Category, items []CatalogItem) (shelf, error) {
	if len(items) == 0 {
		return shelf{}, fmt.Errorf("%w: %s", errors.ErrDegenerateCatalog, category)
	}
	s := shelf{
		items: make([]CatalogItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		item.Name = NormalizeName(item.Name)
		if _, ok := s.index[item.Name]; ok {
			return shelf{}, fmt.Errorf("%w: %s %q", errors.ErrDuplicateItem, category, item.Name)
		}
		s.index[item.Name] = len(s.items)
		s.items = append(s.items, item)
	}
	return s, nil
}

// NormalizeName is the case-insensitive form under which names are stored and compared.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Items returns a copy of every item of a category, in catalog order.
func (c *Catalog) Items(category Category) []CatalogItem {
	return slices.Clone(c.shelves[category].items)
}

// Item returns the item at a catalog position.
func (c *Catalog) Item(category Category, index int) CatalogItem {
	return c.shelves[category].items[index]
}

func (c *Catalog) Len(category Category) int {
	return len(c.shelves[category].items)
}

func (c *Catalog) Lookup(category Category, name string) (CatalogItem, bool) {
	idx, ok := c.IndexOf(category, name)
	if !ok {
		return CatalogItem{}, false
	}
	return c.shelves[category].items[idx], true
}

// IndexOf returns the catalog position of a name, compared case-insensitively.
func (c *Catalog) IndexOf(category Category, name string) (int, bool) {
	idx, ok := c.shelves[category].index[NormalizeName(name)]
	return idx, ok
}

func (c *Catalog) Contains(category Category, name string) bool {
	_, ok := c.IndexOf(category, name)
	return ok
}

func (c *Catalog) Names(category Category) []string {
	items := c.shelves[category].items
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// Column returns a fresh slice holding one text field of every item of a category.
func (c *Catalog) Column(category Category, column Column) []string {
	items := c.shelves[category].items
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text(column)
	}
	return texts
}

func (c *Catalog) Featured() []FeaturedDrink {
	return slices.Clone(c.featured)
}
