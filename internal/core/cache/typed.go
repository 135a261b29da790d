package cache

import (
	"context"
	"encoding/json"
)

// GetAs retrieves the value at key decoded as T.
// The boolean is false when the key is missing or the cache is unavailable.
func GetAs[T any](ctx context.Context, c Client, key string) (T, bool) {
	var v T
	if !c.Get(ctx, key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// MGetAs retrieves several keys decoded as T, aligned with keys.
// Entries that are missing or cannot be decoded are nil.
func MGetAs[T any](ctx context.Context, c Client, keys ...string) []*T {
	raw := c.MGet(ctx, keys...)
	out := make([]*T, len(keys))
	for i := range out {
		if i >= len(raw) || raw[i] == nil {
			continue
		}
		var v T
		if err := json.Unmarshal(raw[i], &v); err != nil {
			continue
		}
		out[i] = &v
	}
	return out
}

// Decode decodes raw JSON entries as T, dropping entries that fail to decode.
// Useful for LRange and SMembers results.
func Decode[T any](raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
