package core

// CartItem is a cart entry: a product reference plus a positive quantity.
// The cart collection holds at most one entry per product ID; an entry is
// removed outright when its quantity would drop to zero or below.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLine is a derived view pairing a resolved product with its cart
// quantity and subtotal. Subtotals are major currency units (rupees, not
// paise), matching what a price label shows.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartSummary aggregates a set of cart lines.
type CartSummary struct {
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// UnitPrice converts a product's stored minor-unit price to major units.
func UnitPrice(p Product) float64 {
	return float64(p.Price) / 100
}

// BuildCartLines resolves each cart entry against the product list and
// computes its subtotal. Entries whose product ID no longer resolves are
// dropped silently; a stale reference is not an error. Output order
// follows the cart's insertion order.
func BuildCartLines(products []Product, cart []CartItem) []CartLine {
	lines := make([]CartLine, 0, len(cart))
	for _, item := range cart {
		product, ok := FindProduct(products, item.ProductID)
		if !ok {
			continue
		}
		lines = append(lines, CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: UnitPrice(product) * float64(item.Quantity),
		})
	}
	return lines
}

// ComputeCartSummary totals quantities and subtotals across cart lines.
// An empty input yields the zero summary.
func ComputeCartSummary(lines []CartLine) CartSummary {
	var summary CartSummary
	for _, line := range lines {
		summary.TotalItems += line.Quantity
		summary.TotalPrice += line.Subtotal
	}
	return summary
}
