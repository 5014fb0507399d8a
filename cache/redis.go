package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/holiy930561/LenDon"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultKeyPrefix namespaces every key this package writes.
	DefaultKeyPrefix = "lendon:"

	defaultOpTimeout = 2 * time.Second
	scanBatch        = 100
)

// RedisCache is a Redis-backed result cache.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
	logger    *zap.Logger
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string      // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       int         // TTL in seconds (0 = no expiration)
	KeyPrefix string      // Prefix for all keys (default: "lendon:")
	Logger    *zap.Logger // Receives read errors that degrade to misses
}

// NewRedisCache creates a new Redis cache with the given configuration.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, &lendon.CacheError{Message: "invalid redis url", Cause: err}
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, &lendon.CacheError{Message: "redis unreachable", Cause: err}
	}

	c := NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix)
	if cfg.Logger != nil {
		c.logger = cfg.Logger
	}
	return c, nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   defaultOpTimeout,
		logger:    zap.NewNop(),
	}
}

// Get retrieves a value from Redis. Errors are logged and reported as misses.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	val, err := c.client.Get(ctx, c.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return val, true
}

// Set stores a value in Redis.
func (c *RedisCache) Set(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if err := c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err(); err != nil {
		return &lendon.CacheError{Message: "redis set failed", Cause: err}
	}
	return nil
}

// Entries lists every key under the prefix with SCAN and fetches values
// in batches with MGET. Keys are returned without the prefix.
func (c *RedisCache) Entries() (map[string]string, error) {
	ctx := context.Background()
	result := make(map[string]string)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, &lendon.CacheError{Message: "redis scan failed", Cause: err}
		}

		if len(keys) > 0 {
			values, err := c.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, &lendon.CacheError{Message: "redis mget failed", Cause: err}
			}
			for i, v := range values {
				// Keys may expire between SCAN and MGET.
				s, ok := v.(string)
				if !ok {
					continue
				}
				result[strings.TrimPrefix(keys[i], c.keyPrefix)] = s
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return result, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

// Verify RedisCache implements Enumerable
var _ Enumerable = (*RedisCache)(nil)
