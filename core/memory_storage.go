package core

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-process implementation of the Storage interface.
// It is the default backend: state survives for the life of the process
// only, which matches a browser tab that never persisted anything.
type MemoryStorage struct {
	mu     sync.RWMutex
	store  map[string]memoryEntry
	logger Logger
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		store:  make(map[string]memoryEntry),
		logger: &NoOpLogger{},
	}
}

// SetLogger configures the logger for this backend.
func (m *MemoryStorage) SetLogger(logger Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// Get retrieves a value. Missing or expired keys return ("", nil).
func (m *MemoryStorage) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists {
		m.logger.Debug("Storage miss", map[string]interface{}{
			"operation": "storage_get",
			"key":       key,
			"result":    "miss",
		})
		return "", nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.logger.Debug("Storage entry expired", map[string]interface{}{
			"operation":  "storage_get",
			"key":        key,
			"result":     "expired",
			"expired_at": entry.expiresAt.Format(time.RFC3339),
		})
		return "", nil
	}

	return entry.value, nil
}

// Set stores a value with optional TTL.
func (m *MemoryStorage) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.store[key] = entry

	m.logger.Debug("Storage set", map[string]interface{}{
		"operation":  "storage_set",
		"key":        key,
		"value_size": len(value),
		"has_ttl":    ttl > 0,
	})
	return nil
}

// Delete removes a value.
func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, existed := m.store[key]
	delete(m.store, key)

	m.logger.Debug("Storage delete", map[string]interface{}{
		"operation": "storage_delete",
		"key":       key,
		"existed":   existed,
	})
	return nil
}

// Exists checks if a key exists and is not expired.
func (m *MemoryStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}
