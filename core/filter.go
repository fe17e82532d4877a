package core

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOption selects the ordering applied to a filtered product view.
type SortOption string

const (
	SortRecent    SortOption = "recent"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
)

// Filters holds the user-selected criteria narrowing the catalog view.
// Empty text and empty sets are inactive criteria. MinPrice and MaxPrice
// are minor currency units; ShopStore.SetPriceRange keeps them ordered and
// inside the catalog bounds.
type Filters struct {
	SearchText string       `json:"searchText"`
	Brands     []string     `json:"brands"`
	Colors     []string     `json:"colors"`
	Sizes      []SizeOption `json:"sizes"`
	MinPrice   int64        `json:"minPrice"`
	MaxPrice   int64        `json:"maxPrice"`
	SortBy     SortOption   `json:"sortBy"`
}

// ComputeFilteredProducts returns the products matching every active
// criterion, ordered per f.SortBy. Pure: the input slice is never mutated
// and the result is always a fresh slice.
func ComputeFilteredProducts(products []Product, f Filters) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesFilters(p, f) {
			filtered = append(filtered, p)
		}
	}
	return sortProducts(filtered, f.SortBy)
}

// matchesFilters reports whether a product satisfies all active criteria.
func matchesFilters(p Product, f Filters) bool {
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) {
			return false
		}
	}
	if len(f.Brands) > 0 && !containsString(f.Brands, p.Brand) {
		return false
	}
	if len(f.Colors) > 0 && !containsString(f.Colors, p.Color) {
		return false
	}
	if len(f.Sizes) > 0 && !containsSize(f.Sizes, p.Size) {
		return false
	}
	return p.Price >= f.MinPrice && p.Price <= f.MaxPrice
}

// sortProducts returns a sorted copy of items. The sort is stable, so
// equal keys retain their relative input order. An unrecognized sort
// option leaves the order untouched.
func sortProducts(items []Product, sortBy SortOption) []Product {
	sorted := make([]Product, len(items))
	copy(sorted, items)

	switch sortBy {
	case SortRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].AddedAt.After(sorted[j].AddedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortNameAsc:
		c := newNameCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case SortNameDesc:
		c := newNameCollator()
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Name, sorted[j].Name) > 0
		})
	}
	return sorted
}

// newNameCollator builds the collator used for name ordering. Collators
// carry internal buffers and are not safe for concurrent use, so each
// sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func containsString(collection []string, value string) bool {
	for _, item := range collection {
		if item == value {
			return true
		}
	}
	return false
}

func containsSize(collection []SizeOption, value SizeOption) bool {
	for _, item := range collection {
		if item == value {
			return true
		}
	}
	return false
}
