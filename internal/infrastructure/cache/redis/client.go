// Package redis provides the Redis cache client implementation.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/unifiedui/school-service/internal/core/cache"
)

var (
	errEmptyKey       = errors.New("key is required")
	errEmptyField     = errors.New("hash field is required")
	errNonPositiveTTL = errors.New("ttl must be positive")
)

// Client implements the cache.Client interface on top of a cache.Cache.
// Every call is contained by run: failures are logged and turned into the
// operation's zero value.
type Client struct {
	cache  cache.Cache
	logger zerolog.Logger
}

var _ cache.Client = (*Client)(nil)

// NewClient creates a new Redis cache client.
func NewClient(cfg Config) (*Client, error) {
	c, err := NewCache(cfg)
	if err != nil {
		return nil, err
	}

	return NewClientWithCache(c, cfg.Logger), nil
}

// NewClientWithCache wraps an existing cache.Cache.
func NewClientWithCache(c cache.Cache, logger zerolog.Logger) *Client {
	return &Client{
		cache:  c,
		logger: logger,
	}
}

// GetCache returns the underlying Cache implementation.
func (c *Client) GetCache() cache.Cache {
	return c.cache
}

// run executes fn and converts any error or panic into fallback.
func run[T any](c *Client, op, key string, fallback T, fn func() (T, error)) (result T) {
	defer func() {
		if r := recover(); r != nil {
			c.fail(op, key, fmt.Errorf("panic: %v", r))
			result = fallback
		}
	}()

	v, err := fn()
	if err != nil {
		c.fail(op, key, err)
		return fallback
	}
	return v
}

// exec is run for operations without a result.
func exec(c *Client, op, key string, fn func() error) {
	run(c, op, key, struct{}{}, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

func (c *Client) fail(op, key string, err error) {
	c.logger.Warn().
		Err(err).
		Str("op", op).
		Str("key", key).
		Msg("cache operation failed")
}

func encode(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

func encodeAll(values []any) ([][]byte, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		data, err := encode(v)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// rawValid drops entries that are not valid JSON, logging each one.
func (c *Client) rawValid(op, key string, vals [][]byte) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(vals))
	for _, v := range vals {
		if !json.Valid(v) {
			c.fail(op, key, errors.New("decode: stored payload is not valid JSON"))
			continue
		}
		out = append(out, json.RawMessage(v))
	}
	return out
}

// Get decodes the value at key into dest.
func (c *Client) Get(ctx context.Context, key string, dest any) bool {
	return run(c, "get", key, false, func() (bool, error) {
		if key == "" {
			return false, errEmptyKey
		}
		data, err := c.cache.Get(ctx, key)
		if err != nil || data == nil {
			return false, err
		}
		if err := json.Unmarshal(data, dest); err != nil {
			return false, fmt.Errorf("decode: %w", err)
		}
		return true, nil
	})
}

// Set encodes and stores value.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	exec(c, "set", key, func() error {
		if key == "" {
			return errEmptyKey
		}
		data, err := encode(value)
		if err != nil {
			return err
		}
		return c.cache.Set(ctx, key, data, ttl)
	})
}

// Delete removes key.
func (c *Client) Delete(ctx context.Context, key string) {
	exec(c, "del", key, func() error {
		_, err := c.cache.Delete(ctx, key)
		return err
	})
}

// DeletePattern removes every key matching pattern.
func (c *Client) DeletePattern(ctx context.Context, pattern string) {
	exec(c, "del_pattern", pattern, func() error {
		n, err := c.cache.DeletePattern(ctx, pattern)
		if err != nil {
			return err
		}
		c.logger.Debug().Str("pattern", pattern).Int64("deleted", n).Msg("cache pattern deleted")
		return nil
	})
}

// Exists reports whether key is present.
func (c *Client) Exists(ctx context.Context, key string) bool {
	return run(c, "exists", key, false, func() (bool, error) {
		return c.cache.Exists(ctx, key)
	})
}

// Expire sets a TTL on key.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) {
	exec(c, "expire", key, func() error {
		if ttl <= 0 {
			return errNonPositiveTTL
		}
		return c.cache.Expire(ctx, key, ttl)
	})
}

// MGet retrieves several raw values aligned with keys.
func (c *Client) MGet(ctx context.Context, keys ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(keys))
	if len(keys) == 0 {
		return out
	}

	joined := strings.Join(keys, ",")
	vals := run(c, "mget", joined, [][]byte(nil), func() ([][]byte, error) {
		return c.cache.MGet(ctx, keys...)
	})

	for i, v := range vals {
		if i >= len(out) || v == nil {
			continue
		}
		if !json.Valid(v) {
			c.fail("mget", keys[i], errors.New("decode: stored payload is not valid JSON"))
			continue
		}
		out[i] = json.RawMessage(v)
	}
	return out
}

// MSet encodes and stores several values in one round trip.
func (c *Client) MSet(ctx context.Context, values map[string]any, ttl time.Duration) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	exec(c, "mset", strings.Join(keys, ","), func() error {
		encoded := make(map[string][]byte, len(values))
		for k, v := range values {
			if k == "" {
				return errEmptyKey
			}
			data, err := encode(v)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			encoded[k] = data
		}
		return c.cache.MSet(ctx, encoded, ttl)
	})
}

// Incr increments the counter at key.
// A zero result means either a failure or a counter that was at -1.
func (c *Client) Incr(ctx context.Context, key string) int64 {
	return run(c, "incr", key, int64(0), func() (int64, error) {
		return c.cache.Incr(ctx, key)
	})
}

// Decr decrements the counter at key.
func (c *Client) Decr(ctx context.Context, key string) int64 {
	return run(c, "decr", key, int64(0), func() (int64, error) {
		return c.cache.Decr(ctx, key)
	})
}

// HSet encodes and stores a hash field.
func (c *Client) HSet(ctx context.Context, key, field string, value any) {
	exec(c, "hset", key, func() error {
		if field == "" {
			return errEmptyField
		}
		data, err := encode(value)
		if err != nil {
			return err
		}
		return c.cache.HSet(ctx, key, field, data)
	})
}

// HGet decodes a hash field into dest.
func (c *Client) HGet(ctx context.Context, key, field string, dest any) bool {
	return run(c, "hget", key, false, func() (bool, error) {
		if field == "" {
			return false, errEmptyField
		}
		data, err := c.cache.HGet(ctx, key, field)
		if err != nil || data == nil {
			return false, err
		}
		if err := json.Unmarshal(data, dest); err != nil {
			return false, fmt.Errorf("decode %s: %w", field, err)
		}
		return true, nil
	})
}

// HGetAll returns every field of the hash at key.
func (c *Client) HGetAll(ctx context.Context, key string) map[string]json.RawMessage {
	return run(c, "hgetall", key, map[string]json.RawMessage{}, func() (map[string]json.RawMessage, error) {
		vals, err := c.cache.HGetAll(ctx, key)
		if err != nil {
			return nil, err
		}
		out := make(map[string]json.RawMessage, len(vals))
		for f, v := range vals {
			if !json.Valid(v) {
				c.fail("hgetall", key, fmt.Errorf("decode %s: stored payload is not valid JSON", f))
				continue
			}
			out[f] = json.RawMessage(v)
		}
		return out, nil
	})
}

// LPush encodes and prepends values.
func (c *Client) LPush(ctx context.Context, key string, values ...any) int64 {
	return run(c, "lpush", key, int64(0), func() (int64, error) {
		encoded, err := encodeAll(values)
		if err != nil {
			return 0, err
		}
		return c.cache.LPush(ctx, key, encoded...)
	})
}

// LRange returns list elements in store order, which is newest first for LPush.
func (c *Client) LRange(ctx context.Context, key string, start, stop int64) []json.RawMessage {
	return run(c, "lrange", key, []json.RawMessage{}, func() ([]json.RawMessage, error) {
		vals, err := c.cache.LRange(ctx, key, start, stop)
		if err != nil {
			return nil, err
		}
		return c.rawValid("lrange", key, vals), nil
	})
}

// SAdd encodes and adds set members.
func (c *Client) SAdd(ctx context.Context, key string, members ...any) int64 {
	return run(c, "sadd", key, int64(0), func() (int64, error) {
		encoded, err := encodeAll(members)
		if err != nil {
			return 0, err
		}
		return c.cache.SAdd(ctx, key, encoded...)
	})
}

// SMembers returns the members of the set at key.
func (c *Client) SMembers(ctx context.Context, key string) []json.RawMessage {
	return run(c, "smembers", key, []json.RawMessage{}, func() ([]json.RawMessage, error) {
		vals, err := c.cache.SMembers(ctx, key)
		if err != nil {
			return nil, err
		}
		return c.rawValid("smembers", key, vals), nil
	})
}

// Publish encodes and publishes message on channel.
func (c *Client) Publish(ctx context.Context, channel string, message any) int64 {
	return run(c, "publish", channel, int64(0), func() (int64, error) {
		data, err := encode(message)
		if err != nil {
			return 0, err
		}
		return c.cache.Publish(ctx, channel, data)
	})
}

// FlushAll wipes the whole keyspace.
func (c *Client) FlushAll(ctx context.Context) {
	exec(c, "flushall", "*", func() error {
		c.logger.Warn().Msg("flushing entire cache keyspace")
		return c.cache.FlushAll(ctx)
	})
}

// Ping checks if the cache connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.cache.Ping(ctx)
}

// Close closes the cache client connection.
func (c *Client) Close() error {
	return c.cache.Close()
}
