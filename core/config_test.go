package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "storefront", cfg.Name)
	assert.Equal(t, DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, StorageProviderMemory, cfg.Storage.Provider)
	assert.Equal(t, "storefront", cfg.Storage.Namespace)
	assert.Equal(t, 2*time.Second, cfg.Storage.WriteTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestNewConfigAppliesEnvironment(t *testing.T) {
	t.Setenv("SHOPFRONT_NAME", "env-store")
	t.Setenv("SHOPFRONT_STORAGE_KEY", "env-slot")
	t.Setenv("SHOPFRONT_LOG_LEVEL", "debug")
	t.Setenv("SHOPFRONT_DEV_MODE", "yes")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-store", cfg.Name)
	assert.Equal(t, "env-slot", cfg.StorageKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Development.Enabled)
}

func TestOptionsOverrideEnvironment(t *testing.T) {
	t.Setenv("SHOPFRONT_NAME", "env-store")

	cfg, err := NewConfig(WithName("option-store"))
	require.NoError(t, err)

	assert.Equal(t, "option-store", cfg.Name)
}

func TestRedisURLFallbackEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://fallback:6379")

	cfg, err := NewConfig(WithStorageProvider(StorageProviderRedis))
	require.NoError(t, err)
	assert.Equal(t, "redis://fallback:6379", cfg.Storage.RedisURL)

	t.Setenv("SHOPFRONT_REDIS_URL", "redis://primary:6379")
	cfg, err = NewConfig(WithStorageProvider(StorageProviderRedis))
	require.NoError(t, err)
	assert.Equal(t, "redis://primary:6379", cfg.Storage.RedisURL,
		"SHOPFRONT_REDIS_URL takes precedence over REDIS_URL")
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			opts:    nil,
			wantErr: false,
		},
		{
			name:    "empty storage key rejected",
			opts:    []Option{WithStorageKey("")},
			wantErr: true,
		},
		{
			name:    "redis provider requires URL",
			opts:    []Option{WithStorageProvider(StorageProviderRedis)},
			wantErr: true,
		},
		{
			name: "redis provider allowed without URL in dev mode",
			opts: []Option{
				WithStorageProvider(StorageProviderRedis),
				WithDevelopmentMode(true),
			},
			wantErr: false,
		},
		{
			name:    "redis provider with URL",
			opts:    []Option{WithRedisURL("redis://localhost:6379")},
			wantErr: false,
		},
		{
			name:    "file provider requires path",
			opts:    []Option{WithStorageProvider(StorageProviderFile)},
			wantErr: true,
		},
		{
			name:    "file provider with path",
			opts:    []Option{WithFilePath("/tmp/shop")},
			wantErr: false,
		},
		{
			name:    "unknown provider rejected",
			opts:    []Option{WithStorageProvider("cassandra")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsConfigurationError(err),
					"validation failure should classify as a configuration error, got %v", err)
				assert.Nil(t, cfg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cfg)
			}
		})
	}
}

func TestLoadFromFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"name":"json-store","storage_key":"json-slot","logging":{"level":"warn"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "json-store", cfg.Name)
	assert.Equal(t, "json-slot", cfg.StorageKey)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "name: yaml-store\nstorage:\n  provider: file\n  file_path: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := NewConfig(WithConfigFile(path))
	require.NoError(t, err)

	assert.Equal(t, "yaml-store", cfg.Name)
	assert.Equal(t, StorageProviderFile, cfg.Storage.Provider)
	assert.Equal(t, dir, cfg.Storage.FilePath)
}

func TestLoadFromFileRejectsUnknownExtension(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFromFile("config.toml")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestOptionsAfterConfigFileWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"file-store"}`), 0o600))

	cfg, err := NewConfig(WithConfigFile(path), WithName("late-option"))
	require.NoError(t, err)
	assert.Equal(t, "late-option", cfg.Name)
}
