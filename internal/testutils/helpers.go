// Package testutils provides test utilities and helpers.
package testutils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	rediscache "github.com/unifiedui/school-service/internal/infrastructure/cache/redis"
)

// SetupTestRouter creates a new Gin router for testing.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// NewCacheClient starts an in-memory store and returns a cache client bound to it.
// Log output of the client is captured in the returned buffer.
func NewCacheClient(t *testing.T) (*miniredis.Miniredis, *rediscache.Client, *bytes.Buffer) {
	t.Helper()

	mr := miniredis.RunT(t)
	buf := &bytes.Buffer{}

	client, err := rediscache.NewClient(rediscache.Config{
		Host:        mr.Host(),
		Port:        mr.Port(),
		DefaultTTL:  time.Minute,
		DialTimeout: time.Second,
		MaxRetries:  -1,
		Logger:      zerolog.New(buf),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client, buf
}

// PerformRequest performs an HTTP request against a test router.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// BearerHeader returns an Authorization header for the given token.
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// ParseJSONResponse parses a JSON response body.
func ParseJSONResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), v)
	require.NoError(t, err, "failed to parse JSON response")
}

// AssertStatusCode asserts the response status code.
func AssertStatusCode(t *testing.T, expected int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, expected, w.Code, "unexpected status code: %s", w.Body.String())
}
