// Package core implements the storefront state library: a static product
// catalog, pure filter and cart engines, a shared shop state store with
// change notification, mock authentication, and a pluggable key-value
// persistence slot.
//
// The package is transport-free. Presentation layers (web handlers, CLIs,
// TUIs) are expected to call the exported pure functions and ShopStore
// actions directly.
package core

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// SizeOption is the closed set of garment sizes a product can carry.
type SizeOption string

const (
	SizeXXS SizeOption = "XXS"
	SizeXS  SizeOption = "XS"
	SizeS   SizeOption = "S"
	SizeM   SizeOption = "M"
	SizeL   SizeOption = "L"
	SizeXL  SizeOption = "XL"
	SizeXXL SizeOption = "XXL"
)

// validSizes enumerates every accepted SizeOption for catalog validation.
var validSizes = map[SizeOption]bool{
	SizeXXS: true, SizeXS: true, SizeS: true, SizeM: true,
	SizeL: true, SizeXL: true, SizeXXL: true,
}

// Product is an immutable catalog entry. Prices are integer minor currency
// units (paise for INR): divide by 100 for the major-unit display value.
type Product struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Brand        string     `json:"brand" yaml:"brand"`
	Price        int64      `json:"price" yaml:"price"`
	Currency     string     `json:"currency" yaml:"currency"`
	Size         SizeOption `json:"size" yaml:"size"`
	Color        string     `json:"color" yaml:"color"`
	Image        string     `json:"image" yaml:"image"`
	ItemsLeft    int        `json:"itemsLeft" yaml:"itemsLeft"`
	AddedAt      time.Time  `json:"addedAt" yaml:"addedAt"`
	IsNewArrival bool       `json:"isNewArrival" yaml:"isNewArrival"`
}

// Display bounds overlaid on the actual catalog prices when deriving the
// selectable price range. The effective minimum is the smaller of
// DisplayMinPrice and the cheapest product; the maximum is the larger of
// DisplayMaxPrice and the most expensive product.
const (
	DisplayMinPrice int64 = 100
	DisplayMaxPrice int64 = 10000
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     []Product
	defaultCatalogErr  error
)

// catalogFile is the on-disk shape of a catalog definition.
type catalogFile struct {
	Products []Product `yaml:"products"`
}

// ParseCatalog decodes and validates a YAML catalog definition.
// Validation rejects duplicate or empty product IDs, unknown sizes,
// non-positive prices and negative stock counts.
func ParseCatalog(data []byte) ([]Product, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, NewStoreError("catalog.Parse", "catalog",
			fmt.Errorf("%w: %v", ErrInvalidCatalog, err))
	}

	seen := make(map[string]bool, len(file.Products))
	for i, p := range file.Products {
		switch {
		case p.ID == "":
			return nil, catalogEntryError(i, p.ID, "product id is required")
		case seen[p.ID]:
			return nil, catalogEntryError(i, p.ID, "duplicate product id")
		case !validSizes[p.Size]:
			return nil, catalogEntryError(i, p.ID, fmt.Sprintf("unknown size %q", p.Size))
		case p.Price <= 0:
			return nil, catalogEntryError(i, p.ID, fmt.Sprintf("invalid price %d", p.Price))
		case p.ItemsLeft < 0:
			return nil, catalogEntryError(i, p.ID, fmt.Sprintf("negative stock %d", p.ItemsLeft))
		}
		seen[p.ID] = true
	}

	return file.Products, nil
}

func catalogEntryError(index int, id, msg string) error {
	return &StoreError{
		Op:      "catalog.Parse",
		Kind:    "catalog",
		ID:      id,
		Message: fmt.Sprintf("entry %d: %s", index, msg),
		Err:     ErrInvalidCatalog,
	}
}

// LoadCatalogFile reads and parses a catalog definition from a YAML file.
func LoadCatalogFile(path string) ([]Product, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, &StoreError{
			Op:      "catalog.LoadFile",
			Kind:    "catalog",
			Message: fmt.Sprintf("unsupported catalog file extension %s", ext),
			Err:     ErrInvalidCatalog,
		}
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, NewStoreError("catalog.LoadFile", "catalog",
			fmt.Errorf("failed to read catalog file %s: %w", cleanPath, err))
	}
	return ParseCatalog(data)
}

// DefaultCatalog returns a fresh copy of the built-in seed catalog.
// The embedded definition is parsed once; a parse failure there is a
// build defect and panics, like a bad regexp in a MustCompile.
func DefaultCatalog() []Product {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = ParseCatalog(defaultCatalogYAML)
	})
	if defaultCatalogErr != nil {
		panic(fmt.Sprintf("core: embedded catalog is invalid: %v", defaultCatalogErr))
	}

	out := make([]Product, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// CatalogBounds derives the selectable price range from a product list,
// widened to the display bounds. An empty catalog yields the display
// bounds unchanged.
func CatalogBounds(products []Product) (minPrice, maxPrice int64) {
	minPrice = DisplayMinPrice
	maxPrice = DisplayMaxPrice
	for _, p := range products {
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}
	return minPrice, maxPrice
}

// FindProduct looks up a product by ID. The second return reports whether
// the ID resolved.
func FindProduct(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
