package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/school-service/internal/core/cache"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
)

const minInFlightTTL = time.Minute

// RateLimitConfig holds the limits applied per tenant.
// A zero Requests disables the windowed limit; a zero MaxInFlight disables the in-flight limit.
type RateLimitConfig struct {
	Requests    int64
	Window      time.Duration
	MaxInFlight int64
}

// RateLimitMiddleware enforces per-tenant limits with cache counters.
// Counters that cannot be read (the cache answers 0) never reject a request.
type RateLimitMiddleware struct {
	cacheClient cache.Client
	cfg         RateLimitConfig
	now         func() time.Time
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware.
func NewRateLimitMiddleware(cacheClient cache.Client, cfg RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		cacheClient: cacheClient,
		cfg:         cfg,
		now:         time.Now,
	}
}

// WindowKey returns the counter key of the fixed window containing at.
func WindowKey(tenantID, clientIP string, at time.Time, window time.Duration) string {
	start := at.UnixNano() / int64(window)
	return fmt.Sprintf("ratelimit:%s:%s:%d", tenantID, clientIP, start)
}

// InFlightKey returns the gauge key counting a tenant's requests in progress.
func InFlightKey(tenantID string) string {
	return fmt.Sprintf("inflight:%s", tenantID)
}

// InFlightTTL bounds the lifetime of the in-flight gauge: the window, but at least a minute.
func InFlightTTL(window time.Duration) time.Duration {
	return max(window, minInFlightTTL)
}

// Limit returns a gin middleware applying the windowed and in-flight limits.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		tenantID := GetTenantID(c)

		if m.cfg.Requests > 0 && m.cfg.Window > 0 {
			key := WindowKey(tenantID, c.ClientIP(), m.now(), m.cfg.Window)
			count := m.cacheClient.Incr(ctx, key)
			if count == 1 {
				m.cacheClient.Expire(ctx, key, m.cfg.Window)
			}

			if count > 0 {
				remaining := m.cfg.Requests - count
				if remaining < 0 {
					remaining = 0
				}
				c.Header("X-RateLimit-Limit", strconv.FormatInt(m.cfg.Requests, 10))
				c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}

			if count > m.cfg.Requests {
				c.Header("Retry-After", strconv.Itoa(int(m.cfg.Window.Seconds())))
				logger := GetRequestLogger(c)
				logger.Warn().
					Str("tenant_id", tenantID).
					Int64("count", count).
					Msg("request rate limit exceeded")
				HandleError(c, domainerrors.NewRateLimitedError(tenantID))
				return
			}
		}

		if m.cfg.MaxInFlight > 0 {
			key := InFlightKey(tenantID)
			inFlight := m.cacheClient.Incr(ctx, key)
			if inFlight > 0 {
				// Slots leaked by a dead process drain once the gauge goes idle.
				m.cacheClient.Expire(ctx, key, InFlightTTL(m.cfg.Window))
				// The gauge must come down even when the client hangs up.
				defer m.cacheClient.Decr(context.WithoutCancel(ctx), key)
			}

			if inFlight > m.cfg.MaxInFlight {
				logger := GetRequestLogger(c)
				logger.Warn().
					Str("tenant_id", tenantID).
					Int64("in_flight", inFlight).
					Msg("in-flight limit exceeded")
				HandleError(c, domainerrors.NewRateLimitedError(tenantID))
				return
			}
		}

		c.Next()
	}
}
