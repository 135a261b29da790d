// Package cache defines the cache client interface.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Client is a higher-level cache client that wraps the Cache interface.
// Values are encoded as JSON. No method returns an error or panics on a store
// failure: the failure is logged and the method yields its zero value, so a
// broken cache is indistinguishable from an empty one.
type Client interface {
	// GetCache returns the underlying Cache implementation.
	GetCache() Cache

	// Get decodes the value at key into dest and reports whether it was found.
	// Missing keys, store errors and undecodable payloads all report false.
	Get(ctx context.Context, key string, dest any) bool

	// Set encodes and stores a value. If ttl is 0, the default TTL is used.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string)

	// DeletePattern removes all keys matching the given glob pattern.
	// Best effort: keys created while the deletion runs may survive.
	DeletePattern(ctx context.Context, pattern string)

	// Exists reports whether the key is present. Returns false on error.
	Exists(ctx context.Context, key string) bool

	// Expire sets a TTL on an existing key. ttl must be positive.
	Expire(ctx context.Context, key string, ttl time.Duration)

	// MGet retrieves several raw JSON values, aligned with keys.
	// Entries that are missing or unreadable are nil.
	MGet(ctx context.Context, keys ...string) []json.RawMessage

	// MSet encodes and stores several values in one pipelined round trip.
	MSet(ctx context.Context, values map[string]any, ttl time.Duration)

	// Incr increments a counter. Returns 0 on error.
	Incr(ctx context.Context, key string) int64

	// Decr decrements a counter. Returns 0 on error.
	Decr(ctx context.Context, key string) int64

	// HSet encodes and stores a hash field.
	HSet(ctx context.Context, key, field string, value any)

	// HGet decodes a hash field into dest and reports whether it was found.
	HGet(ctx context.Context, key, field string, dest any) bool

	// HGetAll returns every field of a hash as raw JSON. Empty on error.
	HGetAll(ctx context.Context, key string) map[string]json.RawMessage

	// LPush encodes and prepends values to a list. Returns the new length, 0 on error.
	LPush(ctx context.Context, key string, values ...any) int64

	// LRange returns list elements between start and stop, newest first.
	LRange(ctx context.Context, key string, start, stop int64) []json.RawMessage

	// SAdd encodes and adds set members. Returns the number added, 0 on error.
	SAdd(ctx context.Context, key string, members ...any) int64

	// SMembers returns the members of a set as raw JSON. Empty on error.
	SMembers(ctx context.Context, key string) []json.RawMessage

	// Publish encodes and publishes a message. Returns the receiver count, 0 on error.
	Publish(ctx context.Context, channel string, message any) int64

	// FlushAll wipes the whole keyspace.
	FlushAll(ctx context.Context)

	// Ping checks if the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache client connection. Safe to call more than once.
	Close() error
}
