package redis

import (
	"context"
	"net"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	reconnectStep     = 50 * time.Millisecond
	maxReconnectDelay = 2 * time.Second
)

// ReconnectDelay returns the wait before the given redial attempt: attempt*50ms, capped at 2s.
func ReconnectDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	d := time.Duration(attempt) * reconnectStep
	if d > maxReconnectDelay {
		return maxReconnectDelay
	}
	return d
}

// ConnState is the connection state tracked by the dial hook.
type ConnState int32

const (
	// StateConnected means the last dial succeeded.
	StateConnected ConnState = iota
	// StateReconnecting means at least one dial failed since the last success.
	StateReconnecting
)

// String implements fmt.Stringer.
func (s ConnState) String() string {
	if s == StateReconnecting {
		return "reconnecting"
	}
	return "connected"
}

// reconnectHook spaces out redials after failures and logs state transitions.
// The delay counts from the last failed dial, so a client idle past it redials at once.
// It never blocks longer than the caller's context allows.
type reconnectHook struct {
	logger      zerolog.Logger
	failures    atomic.Int64
	lastFailure atomic.Int64 // unix nanos
	state       atomic.Int32
}

var _ redis.Hook = (*reconnectHook)(nil)

func newReconnectHook(logger zerolog.Logger) *reconnectHook {
	return &reconnectHook{logger: logger}
}

// State returns the current connection state.
func (h *reconnectHook) State() ConnState {
	return ConnState(h.state.Load())
}

// remainingDelay returns how much of the backoff is still owed at now.
func (h *reconnectHook) remainingDelay(now time.Time) time.Duration {
	delay := ReconnectDelay(int(h.failures.Load()))
	if delay <= 0 {
		return 0
	}
	return delay - now.Sub(time.Unix(0, h.lastFailure.Load()))
}

// DialHook implements redis.Hook.
func (h *reconnectHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if wait := h.remainingDelay(time.Now()); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		conn, err := next(ctx, network, addr)
		if err != nil {
			h.lastFailure.Store(time.Now().UnixNano())
			attempt := h.failures.Add(1)
			if ConnState(h.state.Swap(int32(StateReconnecting))) == StateConnected {
				h.logger.Warn().Err(err).Str("addr", addr).Msg("redis connection lost, reconnecting")
			}
			h.logger.Debug().
				Err(err).
				Int64("attempt", attempt).
				Dur("next_delay", ReconnectDelay(int(attempt))).
				Msg("redis dial failed")
			return nil, err
		}

		h.failures.Store(0)
		if ConnState(h.state.Swap(int32(StateConnected))) == StateReconnecting {
			h.logger.Info().Str("addr", addr).Msg("redis connection restored")
		}
		return conn, nil
	}
}

// ProcessHook implements redis.Hook.
func (h *reconnectHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

// ProcessPipelineHook implements redis.Hook.
func (h *reconnectHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}
