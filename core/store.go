package core

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// SectionKey identifies a collapsible filter sidebar section.
type SectionKey string

const (
	SectionBrand SectionKey = "brand"
	SectionPrice SectionKey = "price"
	SectionSize  SectionKey = "size"
	SectionColor SectionKey = "color"
)

// ViewMode selects how the product grid is rendered.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// AuthMode selects which form the auth modal shows.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// persistedState is the projection of store state written to the
// Storage slot on every change: the active session, the cart and the
// liked product IDs. Everything else reinitializes on startup.
type persistedState struct {
	Session *User      `json:"session"`
	Cart    []CartItem `json:"cart"`
	Likes   []string   `json:"likes"`
}

// ShopStore is the single shared state container behind a storefront:
// catalog, filter criteria, cart, likes, UI toggles and the mock auth
// session. All mutation goes through the action methods; consumers read
// state through the accessor methods and derive views with the pure
// engine functions.
//
// Every action commits atomically, then persists the durable projection
// and notifies subscribers. Reads are guarded by an RWMutex, so the
// store is safe to share across goroutines even though the expected
// usage is a single logical thread of control.
type ShopStore struct {
	mu sync.RWMutex

	catalog    []Product
	catalogMin int64
	catalogMax int64

	filters Filters
	likes   []string
	cart    []CartItem

	cartOpen         bool
	mobileFilterOpen bool
	brandFilterQuery string
	expandedSections map[SectionKey]bool
	viewMode         ViewMode
	authModalOpen    bool
	authMode         AuthMode

	user  *User
	creds []credential

	storage      Storage
	storageKey   string
	writeTimeout time.Duration
	logger       Logger
	telemetry    Telemetry

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// NewShopStore creates a store from configuration. The catalog comes
// from cfg.Catalog.File when set, otherwise the embedded seed catalog.
// A nil storage falls back to an in-memory backend, a nil logger to the
// no-op logger.
func NewShopStore(cfg *Config, storage Storage, logger Logger) (*ShopStore, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	catalog := DefaultCatalog()
	if cfg.Catalog.File != "" {
		loaded, err := LoadCatalogFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	return NewShopStoreWithCatalog(cfg, catalog, storage, logger), nil
}

// NewShopStoreWithCatalog creates a store over an explicit catalog.
// The persisted slot is read back before the store is returned, so the
// first render already sees the restored session, cart and likes.
func NewShopStoreWithCatalog(cfg *Config, catalog []Product, storage Storage, logger Logger) *ShopStore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	writeTimeout := cfg.Storage.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 2 * time.Second
	}
	storageKey := cfg.StorageKey
	if storageKey == "" {
		storageKey = DefaultStorageKey
	}

	products := make([]Product, len(catalog))
	copy(products, catalog)
	catalogMin, catalogMax := CatalogBounds(products)

	s := &ShopStore{
		catalog:      products,
		catalogMin:   catalogMin,
		catalogMax:   catalogMax,
		storage:      storage,
		storageKey:   storageKey,
		writeTimeout: writeTimeout,
		logger:       logger,
		telemetry:    &NoOpTelemetry{},
		subscribers:  make(map[int]func()),
		creds:        seedCredentials(),
	}
	s.filters = s.defaultFilters()
	s.expandedSections = defaultExpandedSections()
	s.viewMode = ViewModeGrid
	s.authMode = AuthModeLogin

	s.restore()
	return s
}

func (s *ShopStore) defaultFilters() Filters {
	return Filters{
		MinPrice: s.catalogMin,
		MaxPrice: s.catalogMax,
		SortBy:   SortRecent,
	}
}

func defaultExpandedSections() map[SectionKey]bool {
	return map[SectionKey]bool{
		SectionBrand: true,
		SectionPrice: true,
		SectionSize:  true,
		SectionColor: true,
	}
}

// restore merges the persisted projection into the initial state.
// Absent or malformed data falls back to defaults without surfacing an
// error; a broken slot must never keep the storefront from starting.
func (s *ShopStore) restore() {
	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	raw, err := s.storage.Get(ctx, s.storageKey)
	if err != nil {
		s.logger.Warn("Failed to read persisted state, starting fresh", map[string]interface{}{
			"operation": "restore",
			"key":       s.storageKey,
			"error":     err.Error(),
		})
		return
	}
	if raw == "" {
		return
	}

	var ps persistedState
	if err := json.Unmarshal([]byte(raw), &ps); err != nil {
		s.logger.Warn("Persisted state is malformed, starting fresh", map[string]interface{}{
			"operation": "restore",
			"key":       s.storageKey,
			"error":     err.Error(),
		})
		return
	}

	s.user = ps.Session
	s.cart = ps.Cart
	s.likes = ps.Likes

	s.logger.Debug("Restored persisted state", map[string]interface{}{
		"operation":  "restore",
		"key":        s.storageKey,
		"cart_items": len(ps.Cart),
		"likes":      len(ps.Likes),
		"session":    ps.Session != nil,
	})
}

// SetTelemetry configures an optional telemetry implementation, wired
// the same way as the logger: set it once before the store is shared.
// A nil value keeps the current one.
func (s *ShopStore) SetTelemetry(t Telemetry) {
	if t != nil {
		s.telemetry = t
	}
}

// persist writes the durable projection to the storage slot. Failures
// are logged and swallowed: the store keeps working in memory (a full
// slot or unreachable backend must never break an action).
func (s *ShopStore) persist(op string) {
	s.mu.RLock()
	ps := persistedState{
		Session: s.user,
		Cart:    s.cart,
		Likes:   s.likes,
	}
	s.mu.RUnlock()

	// The slot contract promises arrays, so empty collections must
	// serialize as [] rather than null for cross-process readers.
	if ps.Cart == nil {
		ps.Cart = []CartItem{}
	}
	if ps.Likes == nil {
		ps.Likes = []string{}
	}

	data, err := json.Marshal(ps)
	if err != nil {
		s.logger.Error("Failed to serialize persisted state", map[string]interface{}{
			"operation": op,
			"error":     err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	ctx, span := s.telemetry.StartSpan(ctx, "shop.persist")
	defer span.End()
	span.SetAttribute("key", s.storageKey)
	span.SetAttribute("operation", op)

	if err := s.storage.Set(ctx, s.storageKey, string(data), 0); err != nil {
		span.RecordError(err)
		s.logger.Warn("Failed to persist state, continuing in memory", map[string]interface{}{
			"operation": op,
			"key":       s.storageKey,
			"error":     err.Error(),
		})
	}
}

// commit runs the post-action pipeline: count the action, persist the
// projection, then notify subscribers. Called after the mutex is
// released so callbacks can re-read the store.
func (s *ShopStore) commit(op string) {
	s.telemetry.RecordMetric("shop.actions", 1, map[string]string{"operation": op})
	s.persist(op)
	s.notify()
}

// Subscribe registers a callback invoked after every committed action.
// The returned function unregisters it.
func (s *ShopStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *ShopStore) notify() {
	s.subMu.Lock()
	callbacks := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Accessors

// Products returns a copy of the catalog.
func (s *ShopStore) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// ProductByID resolves a single catalog product. Unknown IDs return an
// error wrapping ErrProductNotFound, classifiable with IsNotFound.
func (s *ShopStore) ProductByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := FindProduct(s.catalog, id)
	if !ok {
		return Product{}, &StoreError{
			Op:   "ShopStore.ProductByID",
			Kind: "catalog",
			ID:   id,
			Err:  ErrProductNotFound,
		}
	}
	return p, nil
}

// Filters returns the current filter criteria. Set slices are copied so
// callers cannot mutate filter state in place.
func (s *ShopStore) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFilters(s.filters)
}

func copyFilters(f Filters) Filters {
	out := f
	if f.Brands != nil {
		out.Brands = append([]string(nil), f.Brands...)
	}
	if f.Colors != nil {
		out.Colors = append([]string(nil), f.Colors...)
	}
	if f.Sizes != nil {
		out.Sizes = append([]SizeOption(nil), f.Sizes...)
	}
	return out
}

// Cart returns a copy of the cart entries in insertion order.
func (s *ShopStore) Cart() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CartItem(nil), s.cart...)
}

// Likes returns a copy of the liked product IDs.
func (s *ShopStore) Likes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.likes...)
}

// User returns the active session identity, or nil when signed out.
func (s *ShopStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// CatalogMinPrice returns the lower selectable price bound (minor units).
func (s *ShopStore) CatalogMinPrice() int64 { return s.catalogMin }

// CatalogMaxPrice returns the upper selectable price bound (minor units).
func (s *ShopStore) CatalogMaxPrice() int64 { return s.catalogMax }

func (s *ShopStore) CartOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cartOpen
}

func (s *ShopStore) MobileFilterOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mobileFilterOpen
}

func (s *ShopStore) BrandFilterQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brandFilterQuery
}

// ExpandedSections returns a copy of the sidebar section toggle map.
func (s *ShopStore) ExpandedSections() map[SectionKey]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[SectionKey]bool, len(s.expandedSections))
	for k, v := range s.expandedSections {
		out[k] = v
	}
	return out
}

func (s *ShopStore) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

func (s *ShopStore) AuthModalOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authModalOpen
}

func (s *ShopStore) AuthMode() AuthMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authMode
}

// Derived views

// FilteredProducts runs the filter engine over the catalog with the
// current criteria.
func (s *ShopStore) FilteredProducts() []Product {
	s.mu.RLock()
	products := s.catalog
	filters := copyFilters(s.filters)
	s.mu.RUnlock()
	return ComputeFilteredProducts(products, filters)
}

// CartLines resolves the cart against the catalog.
func (s *ShopStore) CartLines() []CartLine {
	s.mu.RLock()
	products := s.catalog
	cart := append([]CartItem(nil), s.cart...)
	s.mu.RUnlock()
	return BuildCartLines(products, cart)
}

// Summary aggregates the current cart lines.
func (s *ShopStore) Summary() CartSummary {
	return ComputeCartSummary(s.CartLines())
}

// Filter actions

// SetSearchText sets the free-text search criterion.
func (s *ShopStore) SetSearchText(value string) {
	s.mu.Lock()
	s.filters.SearchText = value
	s.mu.Unlock()
	s.commit("set_search_text")
}

// ToggleBrand toggles a brand's membership in the brand filter set.
func (s *ShopStore) ToggleBrand(brand string) {
	s.mu.Lock()
	s.filters.Brands = toggleValue(s.filters.Brands, brand)
	s.mu.Unlock()
	s.commit("toggle_brand")
}

// ToggleColor toggles a color's membership in the color filter set.
func (s *ShopStore) ToggleColor(color string) {
	s.mu.Lock()
	s.filters.Colors = toggleValue(s.filters.Colors, color)
	s.mu.Unlock()
	s.commit("toggle_color")
}

// ToggleSize toggles a size's membership in the size filter set.
func (s *ShopStore) ToggleSize(size SizeOption) {
	s.mu.Lock()
	s.filters.Sizes = toggleValue(s.filters.Sizes, size)
	s.mu.Unlock()
	s.commit("toggle_size")
}

// SetPriceRange sets the price window. Argument order is irrelevant:
// the smaller becomes the minimum and the larger the maximum, then both
// are clamped into the catalog bounds.
func (s *ShopStore) SetPriceRange(a, b int64) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	s.filters.MinPrice = clampPrice(lo, s.catalogMin, s.catalogMax)
	s.filters.MaxPrice = clampPrice(hi, s.catalogMin, s.catalogMax)
	s.mu.Unlock()
	s.commit("set_price_range")
}

// SetSortBy selects the product ordering.
func (s *ShopStore) SetSortBy(sortBy SortOption) {
	s.mu.Lock()
	s.filters.SortBy = sortBy
	s.mu.Unlock()
	s.commit("set_sort_by")
}

// ResetFilters restores every filter field to its initial default and
// clears the brand search query. Cart, likes and session are untouched.
func (s *ShopStore) ResetFilters() {
	s.mu.Lock()
	s.filters = s.defaultFilters()
	s.brandFilterQuery = ""
	s.mu.Unlock()
	s.commit("reset_filters")
}

// ToggleLike toggles a product ID in the likes set. The ID is not
// validated against the catalog.
func (s *ShopStore) ToggleLike(productID string) {
	s.mu.Lock()
	s.likes = toggleValue(s.likes, productID)
	s.mu.Unlock()
	s.commit("toggle_like")
}

// Cart actions

// AddToCart inserts a new entry with quantity 1, or bumps the quantity
// of an existing one. Opens the cart drawer either way.
func (s *ShopStore) AddToCart(productID string) {
	s.mu.Lock()
	found := false
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.cart = append(s.cart, CartItem{ProductID: productID, Quantity: 1})
	}
	s.cartOpen = true
	s.mu.Unlock()
	s.commit("add_to_cart")
}

// IncrementCartItem bumps the quantity of an existing entry. Unknown
// product IDs leave the cart unchanged.
func (s *ShopStore) IncrementCartItem(productID string) {
	s.mu.Lock()
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity++
			break
		}
	}
	s.mu.Unlock()
	s.commit("increment_cart_item")
}

// DecrementCartItem lowers the quantity of an entry, removing it from
// the cart entirely when the quantity reaches zero.
func (s *ShopStore) DecrementCartItem(productID string) {
	s.mu.Lock()
	next := s.cart[:0]
	for _, item := range s.cart {
		if item.ProductID == productID {
			item.Quantity--
		}
		if item.Quantity > 0 {
			next = append(next, item)
		}
	}
	s.cart = next
	s.mu.Unlock()
	s.commit("decrement_cart_item")
}

// RemoveFromCart removes an entry regardless of quantity.
func (s *ShopStore) RemoveFromCart(productID string) {
	s.mu.Lock()
	next := s.cart[:0]
	for _, item := range s.cart {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	s.cart = next
	s.mu.Unlock()
	s.commit("remove_from_cart")
}

// ClearCart empties the cart.
func (s *ShopStore) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()
	s.commit("clear_cart")
}

// UI actions

// SetCartOpen opens or closes the cart drawer.
func (s *ShopStore) SetCartOpen(open bool) {
	s.mu.Lock()
	s.cartOpen = open
	s.mu.Unlock()
	s.commit("set_cart_open")
}

// SetMobileFilterOpen opens or closes the mobile filter drawer.
func (s *ShopStore) SetMobileFilterOpen(open bool) {
	s.mu.Lock()
	s.mobileFilterOpen = open
	s.mu.Unlock()
	s.commit("set_mobile_filter_open")
}

// SetBrandFilterQuery sets the sidebar brand search query.
func (s *ShopStore) SetBrandFilterQuery(value string) {
	s.mu.Lock()
	s.brandFilterQuery = value
	s.mu.Unlock()
	s.commit("set_brand_filter_query")
}

// ToggleSection expands or collapses a filter sidebar section.
func (s *ShopStore) ToggleSection(section SectionKey) {
	s.mu.Lock()
	s.expandedSections[section] = !s.expandedSections[section]
	s.mu.Unlock()
	s.commit("toggle_section")
}

// SetViewMode switches between grid and list rendering.
func (s *ShopStore) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	s.viewMode = mode
	s.mu.Unlock()
	s.commit("set_view_mode")
}

// SetAuthModalOpen opens or closes the auth modal.
func (s *ShopStore) SetAuthModalOpen(open bool) {
	s.mu.Lock()
	s.authModalOpen = open
	s.mu.Unlock()
	s.commit("set_auth_modal_open")
}

// SetAuthMode switches the auth modal between login and signup.
func (s *ShopStore) SetAuthMode(mode AuthMode) {
	s.mu.Lock()
	s.authMode = mode
	s.mu.Unlock()
	s.commit("set_auth_mode")
}

// toggleValue implements a symmetric-difference membership toggle:
// present values are removed, absent values appended. The input slice
// is never mutated.
func toggleValue[T comparable](collection []T, value T) []T {
	for i, item := range collection {
		if item == value {
			return append(collection[:i:i], collection[i+1:]...)
		}
	}
	return append(collection[:len(collection):len(collection)], value)
}

func clampPrice(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
