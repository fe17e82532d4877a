// Package shopfront is a lightweight meta-package that re-exports the
// storefront state library. Most users only need this import:
//
//	import "github.com/shopfront-labs/shopfront"
//
// The implementation lives in github.com/shopfront-labs/shopfront/core;
// a ready-made logger is available in pkg/logger.
package shopfront

import (
	"github.com/shopfront-labs/shopfront/core"
)

// Re-export core types
type (
	// Catalog types
	Product    = core.Product
	SizeOption = core.SizeOption

	// Filter engine types
	Filters    = core.Filters
	SortOption = core.SortOption

	// Cart engine types
	CartItem    = core.CartItem
	CartLine    = core.CartLine
	CartSummary = core.CartSummary

	// State store types
	ShopStore  = core.ShopStore
	SectionKey = core.SectionKey
	ViewMode   = core.ViewMode
	AuthMode   = core.AuthMode
	User       = core.User

	// Configuration types
	Config            = core.Config
	Option            = core.Option
	StorageConfig     = core.StorageConfig
	CatalogConfig     = core.CatalogConfig
	LoggingConfig     = core.LoggingConfig
	DevelopmentConfig = core.DevelopmentConfig

	// Interfaces
	Logger    = core.Logger
	Storage   = core.Storage
	Telemetry = core.Telemetry
	Span      = core.Span
)

// Re-export constants
const (
	SortRecent    = core.SortRecent
	SortPriceAsc  = core.SortPriceAsc
	SortPriceDesc = core.SortPriceDesc
	SortNameAsc   = core.SortNameAsc
	SortNameDesc  = core.SortNameDesc

	ViewModeGrid = core.ViewModeGrid
	ViewModeList = core.ViewModeList

	AuthModeLogin  = core.AuthModeLogin
	AuthModeSignup = core.AuthModeSignup

	StorageProviderMemory = core.StorageProviderMemory
	StorageProviderFile   = core.StorageProviderFile
	StorageProviderRedis  = core.StorageProviderRedis

	DefaultStorageKey = core.DefaultStorageKey
)

// Re-export core functions
var (
	// Constructors
	NewShopStore            = core.NewShopStore
	NewShopStoreWithCatalog = core.NewShopStoreWithCatalog
	NewConfig               = core.NewConfig
	DefaultConfig           = core.DefaultConfig
	NewStorage              = core.NewStorage
	NewMemoryStorage        = core.NewMemoryStorage
	NewFileStorage          = core.NewFileStorage
	NewRedisStorage         = core.NewRedisStorage

	// Catalog
	DefaultCatalog  = core.DefaultCatalog
	ParseCatalog    = core.ParseCatalog
	LoadCatalogFile = core.LoadCatalogFile
	CatalogBounds   = core.CatalogBounds
	FindProduct     = core.FindProduct

	// Engines
	ComputeFilteredProducts = core.ComputeFilteredProducts
	BuildCartLines          = core.BuildCartLines
	ComputeCartSummary      = core.ComputeCartSummary
	UnitPrice               = core.UnitPrice
	FormatINR               = core.FormatINR

	// Configuration options
	WithName             = core.WithName
	WithStorageKey       = core.WithStorageKey
	WithStorageProvider  = core.WithStorageProvider
	WithRedisURL         = core.WithRedisURL
	WithFilePath         = core.WithFilePath
	WithStorageNamespace = core.WithStorageNamespace
	WithCatalogFile      = core.WithCatalogFile
	WithLogLevel         = core.WithLogLevel
	WithLogFormat        = core.WithLogFormat
	WithConfigFile       = core.WithConfigFile
	WithDevelopmentMode  = core.WithDevelopmentMode
)
