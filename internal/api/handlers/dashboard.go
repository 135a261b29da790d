package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedui/school-service/internal/api/dto"
	"github.com/unifiedui/school-service/internal/api/middleware"
	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
	"github.com/unifiedui/school-service/internal/services/dashboard"
)

// DashboardHandler serves tenant dashboards and activity feeds.
type DashboardHandler struct {
	dashboard dashboard.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboardService,
	}
}

// GetDashboard handles GET /tenants/:tenantId/dashboard.
// @Summary Get tenant dashboard
// @Description Returns the cached dashboard summary, computing it when absent
// @Tags Dashboard
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} models.DashboardSummary
// @Failure 429 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /api/v1/school-service/tenants/{tenantId}/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	summary, err := h.dashboard.GetSummary(c.Request.Context(), tenantID)
	if err != nil {
		logger := middleware.GetRequestLogger(c)
		logger.Error().Err(err).Msg("failed to load dashboard")
		middleware.HandleError(c, domainerrors.NewServiceUnavailableError("student store", err))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetActivity handles GET /tenants/:tenantId/activity.
// @Summary Get recent activity
// @Description Returns the newest entries of the tenant's activity feed
// @Tags Dashboard
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param limit query int false "Maximum entries (1-100)"
// @Success 200 {object} dto.ActivityResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/school-service/tenants/{tenantId}/activity [get]
func (h *DashboardHandler) GetActivity(c *gin.Context) {
	var query dto.ActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, domainerrors.NewValidationError("invalid query", err.Error()))
		return
	}

	activities := h.dashboard.RecentActivity(c.Request.Context(), middleware.GetTenantID(c), query.Limit)

	c.JSON(http.StatusOK, dto.ActivityResponse{
		Activities: activities,
		Count:      len(activities),
	})
}
