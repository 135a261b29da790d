package middleware_test

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/core/cache"
	"github.com/unifiedui/school-service/internal/testutils"
)

func rateLimitedRouter(client cache.Client, cfg middleware.RateLimitConfig, handler gin.HandlerFunc) *gin.Engine {
	router := testutils.SetupTestRouter()
	group := router.Group("/tenants/:tenantId")
	group.Use(middleware.NewTenantMiddleware().ExtractTenant())
	group.Use(middleware.NewRateLimitMiddleware(client, cfg).Limit())
	group.GET("/ping", handler)
	return router
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func fromIP(ip string) map[string]string {
	return map[string]string{"X-Forwarded-For": ip}
}

func TestRateLimit_WindowedLimit(t *testing.T) {
	mr, client, _ := testutils.NewCacheClient(t)
	router := rateLimitedRouter(client, middleware.RateLimitConfig{Requests: 2, Window: time.Minute}, ok)

	for i := 0; i < 2; i++ {
		w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, fromIP("192.0.2.1"))
		testutils.AssertStatusCode(t, http.StatusOK, w)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(1-i), w.Header().Get("X-RateLimit-Remaining"))
	}

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, fromIP("192.0.2.1"))
	testutils.AssertStatusCode(t, http.StatusTooManyRequests, w)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	var body middleware.ErrorResponse
	testutils.ParseJSONResponse(t, w, &body)
	assert.Equal(t, "RATE_LIMITED", body.Code)

	// Separate clients and tenants have their own windows.
	w = testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, fromIP("192.0.2.2"))
	testutils.AssertStatusCode(t, http.StatusOK, w)
	w = testutils.PerformRequest(router, http.MethodGet, "/tenants/t2/ping", nil, fromIP("192.0.2.1"))
	testutils.AssertStatusCode(t, http.StatusOK, w)

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		ttl := mr.TTL(key)
		assert.True(t, ttl > 0 && ttl <= time.Minute, "key %s ttl %s", key, ttl)
	}
}

func TestRateLimit_FailsOpenWhenCacheUnavailable(t *testing.T) {
	mr, client, buf := testutils.NewCacheClient(t)
	router := rateLimitedRouter(client, middleware.RateLimitConfig{Requests: 1, Window: time.Minute, MaxInFlight: 1}, ok)
	mr.SetError("ERR forced failure")

	for i := 0; i < 3; i++ {
		w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
		testutils.AssertStatusCode(t, http.StatusOK, w)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	assert.Contains(t, buf.String(), "cache operation failed")
}

func TestRateLimit_InFlightLimit(t *testing.T) {
	mr, client, _ := testutils.NewCacheClient(t)
	key := middleware.InFlightKey("t1")

	var seen string
	router := rateLimitedRouter(client, middleware.RateLimitConfig{MaxInFlight: 3}, func(c *gin.Context) {
		seen, _ = mr.Get(key)
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Equal(t, "1", seen)
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	require.NoError(t, mr.Set(key, "3"))
	w = testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusTooManyRequests, w)

	got, err = mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestRateLimit_InFlightGaugeExpires(t *testing.T) {
	mr, client, _ := testutils.NewCacheClient(t)
	key := middleware.InFlightKey("t1")

	// The first request leaves slots behind, as a crashed process would.
	leak := true
	router := rateLimitedRouter(client, middleware.RateLimitConfig{MaxInFlight: 3}, func(c *gin.Context) {
		if leak {
			leak = false
			for i := 0; i < 3; i++ {
				client.Incr(c.Request.Context(), key)
			}
		}
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
	ttl := mr.TTL(key)
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl %s", ttl)

	w = testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusTooManyRequests, w)

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists(key))

	w = testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
}

func TestInFlightTTL(t *testing.T) {
	assert.Equal(t, time.Minute, middleware.InFlightTTL(0))
	assert.Equal(t, time.Minute, middleware.InFlightTTL(10*time.Second))
	assert.Equal(t, 5*time.Minute, middleware.InFlightTTL(5*time.Minute))
}

func TestRateLimit_Disabled(t *testing.T) {
	mr, client, _ := testutils.NewCacheClient(t)
	router := rateLimitedRouter(client, middleware.RateLimitConfig{}, ok)

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1/ping", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Empty(t, mr.Keys())
}

func TestWindowKey(t *testing.T) {
	at := time.Date(2026, 9, 1, 8, 0, 30, 0, time.UTC)

	same := middleware.WindowKey("t1", "192.0.2.1", at.Add(20*time.Second), time.Minute)
	next := middleware.WindowKey("t1", "192.0.2.1", at.Add(40*time.Second), time.Minute)

	assert.Equal(t, middleware.WindowKey("t1", "192.0.2.1", at, time.Minute), same)
	assert.NotEqual(t, same, next)
	assert.Contains(t, same, "ratelimit:t1:192.0.2.1:")
}
