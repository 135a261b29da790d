package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/school-service/internal/api/dto"
	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/core/cache"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/domain/models"
	"github.com/unifiedui/school-service/internal/services/dashboard"
	"github.com/unifiedui/school-service/internal/services/students"
)

// AdminHandler exposes cache maintenance operations.
type AdminHandler struct {
	cacheClient cache.Client
	dashboard   dashboard.Service
	students    students.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cacheClient cache.Client, dashboardService dashboard.Service, studentsService students.Service) *AdminHandler {
	return &AdminHandler{
		cacheClient: cacheClient,
		dashboard:   dashboardService,
		students:    studentsService,
	}
}

// WarmCache handles POST /admin/cache/warm.
// @Summary Pre-compute dashboards
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.WarmCacheRequest true "Tenants"
// @Success 200 {object} dto.WarmCacheResponse
// @Router /api/v1/school-service/admin/cache/warm [post]
func (h *AdminHandler) WarmCache(c *gin.Context) {
	var req dto.WarmCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid request body", err.Error()))
		return
	}

	summaries, err := h.dashboard.GetSummaries(c.Request.Context(), req.TenantIDs)
	if err != nil {
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("student store", err))
		return
	}

	c.JSON(http.StatusOK, dto.WarmCacheResponse{Warmed: len(summaries)})
}

// KeyExists handles GET /admin/cache/keys/:key.
// @Summary Check a cache key
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param key path string true "Cache key"
// @Success 200 {object} dto.KeyExistsResponse
// @Router /api/v1/school-service/admin/cache/keys/{key} [get]
func (h *AdminHandler) KeyExists(c *gin.Context) {
	key := c.Param("key")

	c.JSON(http.StatusOK, dto.KeyExistsResponse{
		Key:    key,
		Exists: h.cacheClient.Exists(c.Request.Context(), key),
	})
}

// ListTenants handles GET /admin/tenants.
// @Summary List tenants with invalidated caches
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ActiveTenantsResponse
// @Router /api/v1/school-service/admin/tenants [get]
func (h *AdminHandler) ListTenants(c *gin.Context) {
	tenants := h.dashboard.ActiveTenants(c.Request.Context())
	sort.Strings(tenants)

	c.JSON(http.StatusOK, dto.ActiveTenantsResponse{Tenants: tenants})
}

// CachedStudents handles GET /admin/tenants/:tenantId/students.
// @Summary List a tenant's cached students
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} dto.CachedStudentsResponse
// @Router /api/v1/school-service/admin/tenants/{tenantId}/students [get]
func (h *AdminHandler) CachedStudents(c *gin.Context) {
	cached := h.students.Cached(c.Request.Context(), middleware.GetTenantID(c))

	out := make([]*dto.StudentResponse, 0, len(cached))
	for _, student := range cached {
		out = append(out, dto.NewStudentResponse(&student))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	c.JSON(http.StatusOK, dto.CachedStudentsResponse{Students: out, Count: len(out)})
}

// InvalidateTenant handles DELETE /admin/tenants/:tenantId/cache.
// @Summary Drop a tenant's cached entries
// @Tags Admin
// @Security BearerAuth
// @Param tenantId path string true "Tenant ID"
// @Param reason query string false "Recorded reason"
// @Success 204
// @Router /api/v1/school-service/admin/tenants/{tenantId}/cache [delete]
func (h *AdminHandler) InvalidateTenant(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantID(c)
	reason := c.DefaultQuery("reason", "manual")

	h.dashboard.Invalidate(ctx, tenantID, reason)
	h.dashboard.RecordActivity(ctx, &models.Activity{
		Type:     models.ActivityCacheInvalidated,
		TenantID: tenantID,
		Summary:  "cache invalidated: " + reason,
	})

	c.Status(http.StatusNoContent)
}

// FlushCache handles DELETE /admin/cache.
// @Summary Drop every cache entry
// @Tags Admin
// @Security BearerAuth
// @Success 204
// @Router /api/v1/school-service/admin/cache [delete]
func (h *AdminHandler) FlushCache(c *gin.Context) {
	h.cacheClient.FlushAll(c.Request.Context())
	logger := middleware.GetRequestLogger(c)
	logger.Warn().Msg("cache flushed by admin request")

	c.Status(http.StatusNoContent)
}
