package merchant

import (
	"fmt"
	"sort"
)

// Merchant is one entry of the read-only merchant reference set. Base
// coordinates are approximate; the geographic placer draws the actual
// transaction location around the customer, not the merchant.
type Merchant struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Long     float64 `json:"long"`
}

// NewMerchant builds a validated merchant.
func NewMerchant(name, category string, lat, long float64) (*Merchant, error) {
	if name == "" {
		return nil, fmt.Errorf("merchant name cannot be empty")
	}
	if category == "" {
		return nil, fmt.Errorf("merchant %q has no category", name)
	}
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("merchant %q latitude %.4f outside [-90,90]", name, lat)
	}
	if long < -180 || long > 180 {
		return nil, fmt.Errorf("merchant %q longitude %.4f outside [-180,180]", name, long)
	}
	return &Merchant{Name: name, Category: category, Lat: lat, Long: long}, nil
}

// Catalog is the immutable merchant reference set, indexed by category.
// It is shared by reference across all chunks; nothing writes to it after
// construction.
type Catalog struct {
	byCategory map[string][]*Merchant
}

// NewCatalog indexes merchants by category. Within a category the order is
// made deterministic by name so that seeded draws are reproducible
// regardless of input file ordering.
func NewCatalog(merchants []*Merchant) (*Catalog, error) {
	if len(merchants) == 0 {
		return nil, fmt.Errorf("merchant catalog is empty")
	}
	byCategory := make(map[string][]*Merchant)
	for _, m := range merchants {
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}
	for _, ms := range byCategory {
		sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	}
	return &Catalog{byCategory: byCategory}, nil
}

// ByCategory returns the merchants in one category.
func (c *Catalog) ByCategory(category string) []*Merchant {
	return c.byCategory[category]
}

// HasCategory reports whether any merchant carries the category.
func (c *Catalog) HasCategory(category string) bool {
	return len(c.byCategory[category]) > 0
}

// Categories returns the sorted category set.
func (c *Catalog) Categories() []string {
	cats := make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
