package shopfront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end smoke test through the meta-package surface.
func TestStorefrontFlow(t *testing.T) {
	cfg, err := NewConfig(WithName("smoke"))
	require.NoError(t, err)

	store, err := NewShopStore(cfg, NewMemoryStorage(), nil)
	require.NoError(t, err)

	products := store.Products()
	require.NotEmpty(t, products, "embedded catalog should seed the store")

	store.SetSearchText("nike")
	store.SetSortBy(SortPriceAsc)
	filtered := store.FilteredProducts()
	require.NotEmpty(t, filtered)
	for _, p := range filtered {
		assert.Equal(t, "Nike", p.Brand)
	}
	for i := 1; i < len(filtered); i++ {
		assert.LessOrEqual(t, filtered[i-1].Price, filtered[i].Price)
	}

	store.AddToCart(products[0].ID)
	store.AddToCart(products[0].ID)
	summary := store.Summary()
	assert.Equal(t, 2, summary.TotalItems)
	assert.InDelta(t, 2*UnitPrice(products[0]), summary.TotalPrice, 0.001)

	require.True(t, store.Login("demo@example.com", "password123"))
	require.NotNil(t, store.User())
	store.Logout()
	assert.Nil(t, store.User())
	assert.Equal(t, 2, store.Summary().TotalItems, "logout keeps the cart")
}

func TestDefaultCatalogBounds(t *testing.T) {
	min, max := CatalogBounds(DefaultCatalog())
	assert.Equal(t, int64(100), min, "display floor overlays the catalog minimum")
	assert.Greater(t, max, min)
}
