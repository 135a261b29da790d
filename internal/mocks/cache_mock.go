// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/unifiedui/school-service/internal/core/cache"
)

// MockCache is a mock implementation of cache.Cache.
type MockCache struct {
	mock.Mock
}

var _ cache.Cache = (*MockCache)(nil)

func bytesOrNil(args mock.Arguments, i int) []byte {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]byte)
}

func bytesSliceOrNil(args mock.Arguments, i int) [][]byte {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([][]byte)
}

// Get retrieves a value from the cache.
func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	return bytesOrNil(args, 0), args.Error(1)
}

// Set stores a value in the cache.
func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

// Delete removes a value from the cache.
func (m *MockCache) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// DeletePattern removes all values matching the pattern.
func (m *MockCache) DeletePattern(ctx context.Context, pattern string) (int64, error) {
	args := m.Called(ctx, pattern)
	return args.Get(0).(int64), args.Error(1)
}

// Exists checks for a key.
func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Expire sets a TTL.
func (m *MockCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	args := m.Called(ctx, key, ttl)
	return args.Error(0)
}

// MGet retrieves several values.
func (m *MockCache) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	args := m.Called(ctx, keys)
	return bytesSliceOrNil(args, 0), args.Error(1)
}

// MSet stores several values.
func (m *MockCache) MSet(ctx context.Context, values map[string][]byte, ttl time.Duration) error {
	args := m.Called(ctx, values, ttl)
	return args.Error(0)
}

// Incr increments a counter.
func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// Decr decrements a counter.
func (m *MockCache) Decr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// HSet stores a hash field.
func (m *MockCache) HSet(ctx context.Context, key, field string, value []byte) error {
	args := m.Called(ctx, key, field, value)
	return args.Error(0)
}

// HGet retrieves a hash field.
func (m *MockCache) HGet(ctx context.Context, key, field string) ([]byte, error) {
	args := m.Called(ctx, key, field)
	return bytesOrNil(args, 0), args.Error(1)
}

// HGetAll retrieves a whole hash.
func (m *MockCache) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

// LPush prepends to a list.
func (m *MockCache) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	args := m.Called(ctx, key, values)
	return args.Get(0).(int64), args.Error(1)
}

// LRange reads a list.
func (m *MockCache) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	args := m.Called(ctx, key, start, stop)
	return bytesSliceOrNil(args, 0), args.Error(1)
}

// SAdd adds set members.
func (m *MockCache) SAdd(ctx context.Context, key string, members ...[]byte) (int64, error) {
	args := m.Called(ctx, key, members)
	return args.Get(0).(int64), args.Error(1)
}

// SMembers reads a set.
func (m *MockCache) SMembers(ctx context.Context, key string) ([][]byte, error) {
	args := m.Called(ctx, key)
	return bytesSliceOrNil(args, 0), args.Error(1)
}

// Publish publishes a message.
func (m *MockCache) Publish(ctx context.Context, channel string, message []byte) (int64, error) {
	args := m.Called(ctx, channel, message)
	return args.Get(0).(int64), args.Error(1)
}

// FlushAll wipes the keyspace.
func (m *MockCache) FlushAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping checks the cache connection.
func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the cache connection.
func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCacheClient is a mock implementation of cache.Client.
type MockCacheClient struct {
	mock.Mock
	cache *MockCache
}

var _ cache.Client = (*MockCacheClient)(nil)

// NewMockCacheClient creates a new MockCacheClient.
func NewMockCacheClient() *MockCacheClient {
	return &MockCacheClient{
		cache: &MockCache{},
	}
}

// GetCache returns the underlying cache.
func (m *MockCacheClient) GetCache() cache.Cache {
	return m.cache
}

// Get retrieves a value from the cache.
func (m *MockCacheClient) Get(ctx context.Context, key string, dest any) bool {
	args := m.Called(ctx, key, dest)
	return args.Bool(0)
}

// Set stores a value in the cache.
func (m *MockCacheClient) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

// Delete removes a value from the cache.
func (m *MockCacheClient) Delete(ctx context.Context, key string) {
	m.Called(ctx, key)
}

// DeletePattern removes all values matching the pattern.
func (m *MockCacheClient) DeletePattern(ctx context.Context, pattern string) {
	m.Called(ctx, pattern)
}

// Exists checks for a key.
func (m *MockCacheClient) Exists(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

// Expire sets a TTL.
func (m *MockCacheClient) Expire(ctx context.Context, key string, ttl time.Duration) {
	m.Called(ctx, key, ttl)
}

// MGet retrieves several values.
func (m *MockCacheClient) MGet(ctx context.Context, keys ...string) []json.RawMessage {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return make([]json.RawMessage, len(keys))
	}
	return args.Get(0).([]json.RawMessage)
}

// MSet stores several values.
func (m *MockCacheClient) MSet(ctx context.Context, values map[string]any, ttl time.Duration) {
	m.Called(ctx, values, ttl)
}

// Incr increments a counter.
func (m *MockCacheClient) Incr(ctx context.Context, key string) int64 {
	args := m.Called(ctx, key)
	return args.Get(0).(int64)
}

// Decr decrements a counter.
func (m *MockCacheClient) Decr(ctx context.Context, key string) int64 {
	args := m.Called(ctx, key)
	return args.Get(0).(int64)
}

// HSet stores a hash field.
func (m *MockCacheClient) HSet(ctx context.Context, key, field string, value any) {
	m.Called(ctx, key, field, value)
}

// HGet retrieves a hash field.
func (m *MockCacheClient) HGet(ctx context.Context, key, field string, dest any) bool {
	args := m.Called(ctx, key, field, dest)
	return args.Bool(0)
}

// HGetAll retrieves a whole hash.
func (m *MockCacheClient) HGetAll(ctx context.Context, key string) map[string]json.RawMessage {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return map[string]json.RawMessage{}
	}
	return args.Get(0).(map[string]json.RawMessage)
}

// LPush prepends to a list.
func (m *MockCacheClient) LPush(ctx context.Context, key string, values ...any) int64 {
	args := m.Called(ctx, key, values)
	return args.Get(0).(int64)
}

// LRange reads a list.
func (m *MockCacheClient) LRange(ctx context.Context, key string, start, stop int64) []json.RawMessage {
	args := m.Called(ctx, key, start, stop)
	if args.Get(0) == nil {
		return []json.RawMessage{}
	}
	return args.Get(0).([]json.RawMessage)
}

// SAdd adds set members.
func (m *MockCacheClient) SAdd(ctx context.Context, key string, members ...any) int64 {
	args := m.Called(ctx, key, members)
	return args.Get(0).(int64)
}

// SMembers reads a set.
func (m *MockCacheClient) SMembers(ctx context.Context, key string) []json.RawMessage {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return []json.RawMessage{}
	}
	return args.Get(0).([]json.RawMessage)
}

// Publish publishes a message.
func (m *MockCacheClient) Publish(ctx context.Context, channel string, message any) int64 {
	args := m.Called(ctx, channel, message)
	return args.Get(0).(int64)
}

// FlushAll wipes the keyspace.
func (m *MockCacheClient) FlushAll(ctx context.Context) {
	m.Called(ctx)
}

// Ping checks the cache connection.
func (m *MockCacheClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the cache connection.
func (m *MockCacheClient) Close() error {
	args := m.Called()
	return args.Error(0)
}
