package core

import (
	"math"
	"testing"
)

func cartTestCatalog() []Product {
	return []Product{
		{ID: "tee", Name: "Tee", Price: 89900},
		{ID: "shoes", Name: "Shoes", Price: 179900},
		{ID: "band", Name: "Band", Price: 49900},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestUnitPrice(t *testing.T) {
	if got := UnitPrice(Product{Price: 89900}); !almostEqual(got, 899) {
		t.Errorf("UnitPrice(89900) = %v, want 899", got)
	}
	if got := UnitPrice(Product{Price: 150}); !almostEqual(got, 1.5) {
		t.Errorf("UnitPrice(150) = %v, want 1.5", got)
	}
}

func TestBuildCartLines(t *testing.T) {
	catalog := cartTestCatalog()
	cart := []CartItem{
		{ProductID: "shoes", Quantity: 1},
		{ProductID: "tee", Quantity: 3},
	}

	lines := BuildCartLines(catalog, cart)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	// Insertion order is preserved, never reordered.
	if lines[0].Product.ID != "shoes" || lines[1].Product.ID != "tee" {
		t.Errorf("line order = [%s, %s], want [shoes, tee]",
			lines[0].Product.ID, lines[1].Product.ID)
	}

	if !almostEqual(lines[0].Subtotal, 1799) {
		t.Errorf("shoes subtotal = %v, want 1799", lines[0].Subtotal)
	}
	if lines[1].Quantity != 3 || !almostEqual(lines[1].Subtotal, 2697) {
		t.Errorf("tee line = qty %d subtotal %v, want qty 3 subtotal 2697",
			lines[1].Quantity, lines[1].Subtotal)
	}
}

func TestBuildCartLinesDropsUnknownProducts(t *testing.T) {
	catalog := cartTestCatalog()
	cart := []CartItem{
		{ProductID: "tee", Quantity: 1},
		{ProductID: "deleted-product", Quantity: 5},
		{ProductID: "band", Quantity: 2},
	}

	lines := BuildCartLines(catalog, cart)

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (dangling entry must be dropped)", len(lines))
	}
	if lines[0].Product.ID != "tee" || lines[1].Product.ID != "band" {
		t.Errorf("line order = [%s, %s], want [tee, band]",
			lines[0].Product.ID, lines[1].Product.ID)
	}
}

func TestBuildCartLinesEmptyCart(t *testing.T) {
	if lines := BuildCartLines(cartTestCatalog(), nil); len(lines) != 0 {
		t.Errorf("got %d lines for empty cart, want 0", len(lines))
	}
}

func TestComputeCartSummary(t *testing.T) {
	tests := []struct {
		name      string
		lines     []CartLine
		wantItems int
		wantPrice float64
	}{
		{
			name:      "empty cart yields zero summary",
			lines:     nil,
			wantItems: 0,
			wantPrice: 0,
		},
		{
			name: "sums quantities and subtotals",
			lines: []CartLine{
				{Quantity: 2, Subtotal: 1798},
				{Quantity: 1, Subtotal: 499},
			},
			wantItems: 3,
			wantPrice: 2297,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCartSummary(tt.lines)
			if got.TotalItems != tt.wantItems || !almostEqual(got.TotalPrice, tt.wantPrice) {
				t.Errorf("ComputeCartSummary() = %+v, want {%d %v}",
					got, tt.wantItems, tt.wantPrice)
			}
		})
	}
}
