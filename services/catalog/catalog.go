package catalog

import (
	"strings"
)

type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	return &Catalog{
		products: append([]Product{}, products...),
	}
}

func (c *Catalog) List() []Product {
	return append([]Product{}, c.products...)
}

func (c *Catalog) Get(uid string) (Product, bool) {
	for _, p := range c.products {
		if p.UID == uid {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the distinct categories in the order they first appear.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return categories
}

// Filter keeps the products in category (empty or "All" matches every category)
// whose name contains query, ignoring case.
func (c *Catalog) Filter(category string, query string) []Product {
	query = strings.ToLower(strings.TrimSpace(query))

	result := []Product{}
	for _, p := range c.products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		result = append(result, p)
	}
	return result
}
