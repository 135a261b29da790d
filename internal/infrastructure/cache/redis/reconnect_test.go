package redis

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconnectDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 50 * time.Millisecond},
		{2, 100 * time.Millisecond},
		{10, 500 * time.Millisecond},
		{40, 2 * time.Second},
		{41, 2 * time.Second},
		{1000, 2 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReconnectDelay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestReconnectHook_TracksState(t *testing.T) {
	buf := &bytes.Buffer{}
	hook := newReconnectHook(zerolog.New(buf))
	ctx := context.Background()

	fail := true
	dial := hook.DialHook(func(context.Context, string, string) (net.Conn, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		client, server := net.Pipe()
		server.Close()
		return client, nil
	})

	assert.Equal(t, StateConnected, hook.State())

	_, err := dial(ctx, "tcp", "cache:6379")
	require.Error(t, err)
	assert.Equal(t, StateReconnecting, hook.State())
	assert.Equal(t, int64(1), hook.failures.Load())
	assert.Contains(t, buf.String(), "redis connection lost, reconnecting")

	_, err = dial(ctx, "tcp", "cache:6379")
	require.Error(t, err)
	assert.Equal(t, int64(2), hook.failures.Load())

	fail = false
	conn, err := dial(ctx, "tcp", "cache:6379")
	require.NoError(t, err)
	conn.Close()

	assert.Equal(t, StateConnected, hook.State())
	assert.Equal(t, int64(0), hook.failures.Load())
	assert.Contains(t, buf.String(), "redis connection restored")
}

func TestReconnectHook_WaitRespectsContext(t *testing.T) {
	hook := newReconnectHook(zerolog.Nop())
	hook.failures.Store(100)
	hook.lastFailure.Store(time.Now().UnixNano())

	called := false
	dial := hook.DialHook(func(context.Context, string, string) (net.Conn, error) {
		called = true
		return nil, errors.New("unreachable")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := dial(ctx, "tcp", "cache:6379")

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReconnectHook_IdleClientRedialsImmediately(t *testing.T) {
	hook := newReconnectHook(zerolog.Nop())
	hook.failures.Store(40)
	hook.lastFailure.Store(time.Now().Add(-3 * time.Second).UnixNano())

	called := false
	dial := hook.DialHook(func(context.Context, string, string) (net.Conn, error) {
		called = true
		client, server := net.Pipe()
		server.Close()
		return client, nil
	})

	start := time.Now()
	conn, err := dial(context.Background(), "tcp", "cache:6379")
	require.NoError(t, err)
	conn.Close()

	assert.True(t, called)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, int64(0), hook.failures.Load())
}

func TestReconnectHook_RemainingDelay(t *testing.T) {
	hook := newReconnectHook(zerolog.Nop())
	now := time.Now()
	assert.Equal(t, time.Duration(0), hook.remainingDelay(now))

	hook.failures.Store(10)
	hook.lastFailure.Store(now.Add(-200 * time.Millisecond).UnixNano())
	assert.Equal(t, 300*time.Millisecond, hook.remainingDelay(now))

	hook.lastFailure.Store(now.Add(-time.Second).UnixNano())
	assert.LessOrEqual(t, hook.remainingDelay(now), time.Duration(0))
}

func TestConnState_String(t *testing.T) {
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "reconnecting", StateReconnecting.String())
}
