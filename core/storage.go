package core

import "fmt"

// NewStorage builds the Storage backend selected by the configuration.
// With the redis provider in development mode and no URL configured, the
// caller is expected to inject a backend built with
// NewRedisStorageWithClient instead.
func NewStorage(cfg *Config, logger Logger) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	switch cfg.Storage.Provider {
	case "", StorageProviderMemory:
		s := NewMemoryStorage()
		s.SetLogger(logger)
		return s, nil
	case StorageProviderFile:
		s, err := NewFileStorage(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		s.SetLogger(logger)
		return s, nil
	case StorageProviderRedis:
		return NewRedisStorage(RedisStorageOptions{
			RedisURL:  cfg.Storage.RedisURL,
			Namespace: cfg.Storage.Namespace,
			Logger:    logger,
		})
	default:
		return nil, &StoreError{
			Op:      "storage.New",
			Kind:    "storage",
			Message: fmt.Sprintf("unknown storage provider: %s", cfg.Storage.Provider),
			Err:     ErrInvalidConfiguration,
		}
	}
}
