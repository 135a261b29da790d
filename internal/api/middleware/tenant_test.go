package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/testutils"
)

func TestTenantMiddleware_ExtractTenant(t *testing.T) {
	router := testutils.SetupTestRouter()
	var got string
	router.GET("/tenants/:tenantId", middleware.NewTenantMiddleware().ExtractTenant(), func(c *gin.Context) {
		got = middleware.GetTenantID(c)
		c.Status(http.StatusOK)
	})

	w := testutils.PerformRequest(router, http.MethodGet, "/tenants/school-42", nil, nil)
	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Equal(t, "school-42", got)
}

func TestTenantMiddleware_RejectsGlobCharacters(t *testing.T) {
	router := testutils.SetupTestRouter()
	router.GET("/tenants/:tenantId", middleware.NewTenantMiddleware().ExtractTenant(), ok)

	for _, id := range []string{"school*", "a%3Fb", "x%5B1%5D"} {
		w := testutils.PerformRequest(router, http.MethodGet, "/tenants/"+id, nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
	}
}
