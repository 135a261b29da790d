package middleware_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/testutils"
)

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	mw := middleware.NewLoggingMiddlewareWithLogger(zerolog.New(buf))

	router := testutils.SetupTestRouter()
	router.Use(mw.RequestLogger(), mw.Logger())
	router.GET("/tenants/:tenantId", func(c *gin.Context) {
		logger := middleware.GetRequestLogger(c)
		logger.Info().Msg("handled")
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/t1", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)

	requestID := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"request_id":"`+requestID+`"`)
	assert.Contains(t, buf.String(), `"tenant_id":"t1"`)
	assert.Contains(t, buf.String(), "request completed")
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	mw := middleware.NewLoggingMiddlewareWithLogger(zerolog.Nop())

	router := testutils.SetupTestRouter()
	router.Use(mw.RequestLogger())
	router.GET("/", ok)

	w := testutils.PerformRequest(router, http.MethodGet, "/", nil, map[string]string{"X-Request-ID": "req-1"})
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))
}
