package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/school-service/internal/api/middleware"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/testutils"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", domainerrors.NewNotFoundError("student", "s-1"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", domainerrors.NewValidationError("bad grade", ""), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"rate limited", domainerrors.NewRateLimitedError("t1"), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := testutils.SetupTestRouter()
			router.GET("/", func(c *gin.Context) { middleware.HandleError(c, tt.err) })

			w := testutils.PerformRequest(router, http.MethodGet, "/", nil, nil)

			assert.Equal(t, tt.wantCode, w.Code)
			var body middleware.ErrorResponse
			testutils.ParseJSONResponse(t, w, &body)
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	router := testutils.SetupTestRouter()
	router.Use(middleware.NewErrorMiddleware().Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := testutils.PerformRequest(router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
