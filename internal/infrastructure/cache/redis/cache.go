// Package redis provides the Redis cache implementation.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	// scanBatchSize is the COUNT hint passed to SCAN while enumerating a pattern.
	scanBatchSize = 100
	// deleteBatchSize bounds the number of keys sent in a single DEL.
	deleteBatchSize = 500
	// startupPingTimeout bounds the connectivity check done at construction.
	startupPingTimeout = 5 * time.Second
)

// Config holds Redis connection configuration.
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	DB         int
	DefaultTTL time.Duration

	// DialTimeout bounds establishing a connection. Zero uses the client default.
	DialTimeout time.Duration
	// RequestTimeout bounds each read and write on the wire. Zero uses the client default.
	RequestTimeout time.Duration
	// MaxRetries is the number of command retries; -1 disables retries.
	MaxRetries int

	// Logger receives connection state changes and operation failures.
	// The zero value discards everything.
	Logger zerolog.Logger
}

// Addr returns the store address in host:port format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Cache implements the cache.Cache interface for Redis.
type Cache struct {
	client     *redis.Client
	defaultTTL time.Duration

	closeOnce sync.Once
}

// NewCache creates a new Redis cache instance.
// An unreachable store is logged but not treated as an error: operations fail
// individually until the transport reconnects.
func NewCache(cfg Config) (*Cache, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("redis host and port are required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Addr(),
		Username:        cfg.Username,
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.RequestTimeout,
		WriteTimeout:    cfg.RequestTimeout,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: reconnectStep,
		MaxRetryBackoff: maxReconnectDelay,
	})
	client.AddHook(newReconnectHook(cfg.Logger))

	ctx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		cfg.Logger.Warn().
			Err(err).
			Str("addr", cfg.Addr()).
			Msg("redis unreachable at startup, cache operations will fall back to defaults")
	}

	return &Cache{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// ttlOrDefault maps 0 to the default TTL and negative values to no expiry.
func (c *Cache) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return c.defaultTTL
	}
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Get retrieves a value from Redis by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Key not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return val, nil
}

// Set stores a value in Redis with an optional TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, c.ttlOrDefault(ttl)).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key from Redis.
func (c *Cache) Delete(ctx context.Context, key string) (bool, error) {
	result, err := c.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return result > 0, nil
}

// DeletePattern removes all keys matching the given pattern.
// Keys are collected with SCAN first, then deleted; no DEL is sent when nothing matches.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	keys, err := c.scanKeys(ctx, pattern)
	if err != nil {
		return 0, err
	}

	var deleted int64
	for start := 0; start < len(keys); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(keys))
		result, err := c.client.Del(ctx, keys[start:end]...).Result()
		if err != nil {
			return deleted, fmt.Errorf("failed to delete keys: %w", err)
		}
		deleted += result
	}

	return deleted, nil
}

// scanKeys enumerates every key matching pattern. SCAN may repeat keys, so results are deduplicated.
func (c *Cache) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	var cursor uint64
	seen := make(map[string]struct{})
	var keys []string

	for {
		batch, nextCursor, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys with pattern %s: %w", pattern, err)
		}

		for _, k := range batch {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return keys, nil
}

// Exists reports whether key is present.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key %s: %w", key, err)
	}
	return n > 0, nil
}

// Expire sets a TTL on key.
func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to expire key %s: %w", key, err)
	}
	return nil
}

// MGet retrieves several keys with a single MGET.
func (c *Cache) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget %d keys: %w", len(keys), err)
	}

	out := make([][]byte, len(keys))
	for i, v := range vals {
		if i >= len(out) {
			break
		}
		switch val := v.(type) {
		case string:
			out[i] = []byte(val)
		case []byte:
			out[i] = val
		}
	}
	return out, nil
}

// MSet stores several keys in one pipeline. Each key gets the same TTL.
func (c *Cache) MSet(ctx context.Context, values map[string][]byte, ttl time.Duration) error {
	if len(values) == 0 {
		return nil
	}

	ttl = c.ttlOrDefault(ttl)
	_, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, k, v, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mset %d keys: %w", len(values), err)
	}
	return nil
}

// Incr increments the counter at key.
func (c *Cache) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to incr key %s: %w", key, err)
	}
	return n, nil
}

// Decr decrements the counter at key.
func (c *Cache) Decr(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Decr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to decr key %s: %w", key, err)
	}
	return n, nil
}

// HSet stores a hash field.
func (c *Cache) HSet(ctx context.Context, key, field string, value []byte) error {
	if err := c.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("failed to hset %s/%s: %w", key, field, err)
	}
	return nil
}

// HGet retrieves a hash field.
func (c *Cache) HGet(ctx context.Context, key, field string) ([]byte, error) {
	val, err := c.client.HGet(ctx, key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hget %s/%s: %w", key, field, err)
	}
	return val, nil
}

// HGetAll retrieves every field of a hash.
func (c *Cache) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	vals, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to hgetall %s: %w", key, err)
	}

	out := make(map[string][]byte, len(vals))
	for f, v := range vals {
		out[f] = []byte(v)
	}
	return out, nil
}

// LPush prepends values to a list.
func (c *Cache) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	n, err := c.client.LPush(ctx, key, toArgs(values)...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to lpush %s: %w", key, err)
	}
	return n, nil
}

// LRange returns a slice of a list.
func (c *Cache) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	vals, err := c.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to lrange %s: %w", key, err)
	}
	return toBytes(vals), nil
}

// SAdd adds set members.
func (c *Cache) SAdd(ctx context.Context, key string, members ...[]byte) (int64, error) {
	n, err := c.client.SAdd(ctx, key, toArgs(members)...).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to sadd %s: %w", key, err)
	}
	return n, nil
}

// SMembers returns the members of a set.
func (c *Cache) SMembers(ctx context.Context, key string) ([][]byte, error) {
	vals, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to smembers %s: %w", key, err)
	}
	return toBytes(vals), nil
}

// Publish sends a message on a channel.
func (c *Cache) Publish(ctx context.Context, channel string, message []byte) (int64, error) {
	n, err := c.client.Publish(ctx, channel, message).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish to %s: %w", channel, err)
	}
	return n, nil
}

// FlushAll removes every key from every database.
func (c *Cache) FlushAll(ctx context.Context) error {
	if err := c.client.FlushAll(ctx).Err(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

// Ping checks if the Redis connection is alive.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection. Only the first call reaches the client.
func (c *Cache) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if cerr := c.client.Close(); cerr != nil && !errors.Is(cerr, redis.ErrClosed) {
			err = fmt.Errorf("failed to close redis connection: %w", cerr)
		}
	})
	return err
}

// GetClient returns the underlying Redis client (for testing purposes).
func (c *Cache) GetClient() *redis.Client {
	return c.client
}

func toArgs(values [][]byte) []interface{} {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return args
}

func toBytes(vals []string) [][]byte {
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out
}
