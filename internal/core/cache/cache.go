// Package cache defines the cache interface and factory.
package cache

import (
	"context"
	"time"
)

// Cache defines the raw store operations behind a Client.
// Values are opaque byte payloads and every failure is returned to the caller.
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns nil if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the default TTL is used.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes all keys matching the given glob pattern.
	// Matching keys are enumerated first and deleted in a second round trip,
	// so keys created in between may survive. Returns the number of keys deleted.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// MGet retrieves several keys in one request.
	// The result is aligned with keys; missing keys yield nil.
	MGet(ctx context.Context, keys ...string) ([][]byte, error)

	// MSet stores several keys in one pipelined round trip.
	MSet(ctx context.Context, values map[string][]byte, ttl time.Duration) error

	// Incr increments the integer at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Decr decrements the integer at key and returns the new value.
	Decr(ctx context.Context, key string) (int64, error)

	// HSet stores a field of the hash at key.
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGet retrieves a field of the hash at key.
	// Returns nil if the field does not exist.
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HGetAll retrieves every field of the hash at key.
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// LPush prepends values to the list at key and returns the new length.
	LPush(ctx context.Context, key string, values ...[]byte) (int64, error)

	// LRange returns the elements of the list at key between start and stop, inclusive.
	LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error)

	// SAdd adds members to the set at key and returns how many were new.
	SAdd(ctx context.Context, key string, members ...[]byte) (int64, error)

	// SMembers returns every member of the set at key, unordered.
	SMembers(ctx context.Context, key string) ([][]byte, error)

	// Publish sends a message on a channel and returns the number of receivers.
	Publish(ctx context.Context, channel string, message []byte) (int64, error)

	// FlushAll wipes the whole keyspace.
	FlushAll(ctx context.Context) error

	// Ping checks if the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
