package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileStorage implements the Storage interface on top of a directory,
// one file per key. It is meant for single-process desktop or CLI
// targets where state should survive restarts without a server.
//
// TTLs are not enforced; the persisted shop projection never uses them.
type FileStorage struct {
	dir    string
	mu     sync.Mutex
	logger Logger
}

// NewFileStorage creates a file-backed storage rooted at dir, creating
// the directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0o700); err != nil {
		return nil, NewStoreError("storage.NewFile", "storage",
			fmt.Errorf("failed to create storage directory %s: %w", cleanDir, err))
	}
	return &FileStorage{
		dir:    cleanDir,
		logger: &NoOpLogger{},
	}, nil
}

// SetLogger configures the logger for this backend.
func (f *FileStorage) SetLogger(logger Logger) {
	if logger != nil {
		f.logger = logger
	}
}

// path maps a slot key to a file path. Path separators in keys are
// flattened so a key can never escape the storage directory.
func (f *FileStorage) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, safe+".json")
}

// Get retrieves a value. A missing file returns ("", nil).
func (f *FileStorage) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		f.logger.Debug("Storage miss", map[string]interface{}{
			"operation": "storage_get",
			"key":       key,
			"result":    "miss",
		})
		return "", nil
	}
	if err != nil {
		return "", &StoreError{
			Op:   "FileStorage.Get",
			Kind: "storage",
			ID:   key,
			Err:  err,
		}
	}
	return string(data), nil
}

// Set writes the value through a temp file and rename so a crash cannot
// leave a half-written slot behind.
func (f *FileStorage) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return &StoreError{Op: "FileStorage.Set", Kind: "storage", ID: key, Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		return &StoreError{Op: "FileStorage.Set", Kind: "storage", ID: key, Err: err}
	}

	f.logger.Debug("Storage set", map[string]interface{}{
		"operation":  "storage_set",
		"key":        key,
		"value_size": len(value),
		"path":       target,
	})
	return nil
}

// Delete removes a value. Deleting a missing key is not an error.
func (f *FileStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return &StoreError{Op: "FileStorage.Delete", Kind: "storage", ID: key, Err: err}
	}
	return nil
}

// Exists checks if a key has a stored value.
func (f *FileStorage) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, err := os.Stat(f.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Op: "FileStorage.Exists", Kind: "storage", ID: key, Err: err}
	}
	return true, nil
}
