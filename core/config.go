package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage provider names accepted by StorageConfig.Provider.
const (
	StorageProviderMemory = "memory"
	StorageProviderFile   = "file"
	StorageProviderRedis  = "redis"
)

// DefaultStorageKey is the slot name the persisted projection is written
// under when none is configured.
const DefaultStorageKey = "shop-storage"

// Config holds all configuration options for the storefront library.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Environment variables (medium priority)
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := NewConfig(
//	    WithName("storefront"),
//	    WithStorageProvider("file"),
//	    WithFilePath("/var/lib/storefront"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// Name identifies this store instance in logs.
	Name string `json:"name" yaml:"name"`

	// StorageKey is the slot name for the persisted projection.
	StorageKey string `json:"storage_key" yaml:"storage_key"`

	// Storage selects and configures the persistence backend.
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Catalog configures where the product catalog is loaded from.
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Logging configuration.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Development configuration.
	Development DevelopmentConfig `json:"development" yaml:"development"`
}

// StorageConfig contains persistence backend configuration. The zero
// Provider means the in-memory backend, which keeps the library usable
// with no external services.
type StorageConfig struct {
	Provider     string        `json:"provider" yaml:"provider"`
	RedisURL     string        `json:"redis_url" yaml:"redis_url"`
	Namespace    string        `json:"namespace" yaml:"namespace"`
	FilePath     string        `json:"file_path" yaml:"file_path"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// CatalogConfig contains catalog source configuration. An empty File
// means the embedded seed catalog.
type CatalogConfig struct {
	File string `json:"file" yaml:"file"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DevelopmentConfig relaxes validation for local work, e.g. allowing the
// redis provider without a URL so a test can inject its own client.
type DevelopmentConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// Option is a functional option for configuring the library.
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:       "storefront",
		StorageKey: DefaultStorageKey,
		Storage: StorageConfig{
			Provider:     StorageProviderMemory,
			Namespace:    "storefront",
			WriteTimeout: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// NewConfig creates a configuration by applying defaults, environment
// variables and the given options, in that priority order, then
// validating the result.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()
	cfg.applyEnvironmentVariables()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvironmentVariables overlays SHOPFRONT_* environment variables
// onto the configuration. REDIS_URL is honored as a fallback for the
// Redis backend, matching common container conventions.
func (c *Config) applyEnvironmentVariables() {
	if v := os.Getenv("SHOPFRONT_NAME"); v != "" {
		c.Name = v
	}
	if v := os.Getenv("SHOPFRONT_STORAGE_KEY"); v != "" {
		c.StorageKey = v
	}
	if v := os.Getenv("SHOPFRONT_STORAGE_PROVIDER"); v != "" {
		c.Storage.Provider = v
	}
	if v := os.Getenv("SHOPFRONT_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	} else if v := os.Getenv("REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("SHOPFRONT_STORAGE_NAMESPACE"); v != "" {
		c.Storage.Namespace = v
	}
	if v := os.Getenv("SHOPFRONT_STORAGE_PATH"); v != "" {
		c.Storage.FilePath = v
	}
	if v := os.Getenv("SHOPFRONT_STORAGE_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Storage.WriteTimeout = d
		}
	}
	if v := os.Getenv("SHOPFRONT_CATALOG_FILE"); v != "" {
		c.Catalog.File = v
	}
	if v := os.Getenv("SHOPFRONT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SHOPFRONT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SHOPFRONT_DEV_MODE"); v != "" {
		c.Development.Enabled = parseBool(v)
	}
}

// LoadFromFile loads configuration from a JSON or YAML file.
// Values from the file overwrite whatever is currently set.
func (c *Config) LoadFromFile(path string) error {
	cleanPath := filepath.Clean(path)

	ext := filepath.Ext(cleanPath)
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file extension %s: %w", ext, ErrInvalidConfiguration)
	}

	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		cleanPath = filepath.Join(wd, cleanPath)
	}

	data, err := os.ReadFile(filepath.Clean(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", ErrInvalidConfiguration)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", ErrInvalidConfiguration)
		}
	}

	return nil
}

// Validate checks if the configuration is valid and returns an error if
// not. Called automatically by NewConfig() but safe to call manually
// after modifying configuration.
func (c *Config) Validate() error {
	if c.Name == "" {
		return &StoreError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: "store name is required",
			Err:     ErrMissingConfiguration,
		}
	}

	if c.StorageKey == "" {
		return &StoreError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: "storage key is required",
			Err:     ErrMissingConfiguration,
		}
	}

	switch c.Storage.Provider {
	case StorageProviderMemory:
	case StorageProviderFile:
		if c.Storage.FilePath == "" {
			return &StoreError{
				Op:      "Config.Validate",
				Kind:    "config",
				Message: "file path is required for the file storage provider",
				Err:     ErrMissingConfiguration,
			}
		}
	case StorageProviderRedis:
		if c.Storage.RedisURL == "" && !c.Development.Enabled {
			return &StoreError{
				Op:      "Config.Validate",
				Kind:    "config",
				Message: "redis URL is required for the redis storage provider",
				Err:     ErrMissingConfiguration,
			}
		}
	default:
		return &StoreError{
			Op:      "Config.Validate",
			Kind:    "config",
			Message: fmt.Sprintf("unknown storage provider: %s", c.Storage.Provider),
			Err:     ErrInvalidConfiguration,
		}
	}

	return nil
}

// parseBool converts a string to a boolean value.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
// Everything else is false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// Functional Options

// WithName sets the store instance name used in logs.
func WithName(name string) Option {
	return func(c *Config) error {
		c.Name = name
		return nil
	}
}

// WithStorageKey sets the slot name for the persisted projection.
func WithStorageKey(key string) Option {
	return func(c *Config) error {
		if key == "" {
			return &StoreError{
				Op:      "WithStorageKey",
				Kind:    "config",
				Message: "storage key cannot be empty",
				Err:     ErrInvalidConfiguration,
			}
		}
		c.StorageKey = key
		return nil
	}
}

// WithStorageProvider selects the persistence backend:
// "memory", "file" or "redis".
func WithStorageProvider(provider string) Option {
	return func(c *Config) error {
		c.Storage.Provider = provider
		return nil
	}
}

// WithRedisURL sets the Redis connection URL and selects the redis
// storage provider.
func WithRedisURL(url string) Option {
	return func(c *Config) error {
		c.Storage.Provider = StorageProviderRedis
		c.Storage.RedisURL = url
		return nil
	}
}

// WithFilePath sets the directory used by the file storage provider and
// selects it.
func WithFilePath(path string) Option {
	return func(c *Config) error {
		c.Storage.Provider = StorageProviderFile
		c.Storage.FilePath = path
		return nil
	}
}

// WithStorageNamespace sets the key namespace for shared backends such
// as Redis.
func WithStorageNamespace(namespace string) Option {
	return func(c *Config) error {
		c.Storage.Namespace = namespace
		return nil
	}
}

// WithCatalogFile points the store at a YAML catalog definition instead
// of the embedded seed catalog.
func WithCatalogFile(path string) Option {
	return func(c *Config) error {
		c.Catalog.File = path
		return nil
	}
}

// WithLogLevel sets the log level (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithLogFormat sets the log output format ("text" or "json").
func WithLogFormat(format string) Option {
	return func(c *Config) error {
		c.Logging.Format = format
		return nil
	}
}

// WithConfigFile loads configuration from a file. File values land
// between environment variables and any options applied after this one.
func WithConfigFile(path string) Option {
	return func(c *Config) error {
		return c.LoadFromFile(path)
	}
}

// WithDevelopmentMode enables development mode, which relaxes some
// validation so tests can inject their own backends.
func WithDevelopmentMode(enabled bool) Option {
	return func(c *Config) error {
		c.Development.Enabled = enabled
		return nil
	}
}
