package core

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStorage implements the Storage interface using Redis, letting
// several processes share one persisted shop slot, e.g. a CLI and a web
// frontend backed by the same Redis. Keys are namespaced
// ("<namespace>:<key>") so a shared instance can host multiple stores
// without collisions.
type RedisStorage struct {
	client    *redis.Client
	namespace string
	logger    Logger
}

// RedisStorageOptions configures the Redis storage backend.
type RedisStorageOptions struct {
	RedisURL  string
	Namespace string // Key namespace, defaults to "storefront"
	Logger    Logger // Optional logger
}

// NewRedisStorage creates a Redis-backed storage. The connection is
// verified with a Ping before the backend is returned.
func NewRedisStorage(opts RedisStorageOptions) (*RedisStorage, error) {
	logger := opts.Logger
	if logger == nil {
		logger = &NoOpLogger{}
	}

	if opts.RedisURL == "" {
		logger.Error("Failed to initialize Redis storage", map[string]interface{}{
			"error":      "Redis URL is required",
			"error_type": "ErrInvalidConfiguration",
		})
		return nil, fmt.Errorf("redis URL is required: %w", ErrInvalidConfiguration)
	}

	redisOpt, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		logger.Error("Failed to parse Redis URL", map[string]interface{}{
			"error":     err,
			"redis_url": opts.RedisURL,
		})
		return nil, fmt.Errorf("invalid Redis URL: %w", ErrInvalidConfiguration)
	}

	client := redis.NewClient(redisOpt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", map[string]interface{}{
			"error": err,
			"addr":  redisOpt.Addr,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", ErrStorageUnavailable)
	}

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "storefront"
	}

	logger.Debug("Redis storage initialized", map[string]interface{}{
		"addr":      redisOpt.Addr,
		"db":        redisOpt.DB,
		"namespace": namespace,
	})

	return &RedisStorage{
		client:    client,
		namespace: namespace,
		logger:    logger,
	}, nil
}

// NewRedisStorageWithClient wraps an existing client, mainly for tests.
func NewRedisStorageWithClient(client *redis.Client, namespace string) *RedisStorage {
	if namespace == "" {
		namespace = "storefront"
	}
	return &RedisStorage{
		client:    client,
		namespace: namespace,
		logger:    &NoOpLogger{},
	}
}

// SetLogger configures the logger for this backend.
func (r *RedisStorage) SetLogger(logger Logger) {
	if logger != nil {
		r.logger = logger
	}
}

func (r *RedisStorage) buildKey(key string) string {
	return r.namespace + ":" + key
}

// Get retrieves a value. A missing key returns ("", nil).
func (r *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.buildKey(key)).Result()
	if err == redis.Nil {
		r.logger.Debug("Storage miss", map[string]interface{}{
			"operation": "storage_get",
			"key":       key,
			"result":    "miss",
		})
		return "", nil
	}
	if err != nil {
		return "", &StoreError{Op: "RedisStorage.Get", Kind: "storage", ID: key, Err: err}
	}
	return value, nil
}

// Set stores a value with optional TTL.
func (r *RedisStorage) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.buildKey(key), value, ttl).Err(); err != nil {
		return &StoreError{Op: "RedisStorage.Set", Kind: "storage", ID: key, Err: err}
	}

	r.logger.Debug("Storage set", map[string]interface{}{
		"operation":  "storage_set",
		"key":        key,
		"value_size": len(value),
		"has_ttl":    ttl > 0,
	})
	return nil
}

// Delete removes a value.
func (r *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.buildKey(key)).Err(); err != nil {
		return &StoreError{Op: "RedisStorage.Delete", Kind: "storage", ID: key, Err: err}
	}
	return nil
}

// Exists checks if a key exists.
func (r *RedisStorage) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.buildKey(key)).Result()
	if err != nil {
		return false, &StoreError{Op: "RedisStorage.Exists", Kind: "storage", ID: key, Err: err}
	}
	return n > 0, nil
}

// Close releases the underlying Redis connection.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
