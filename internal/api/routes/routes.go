// Package routes defines the HTTP routes for the school service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/unifiedui/school-service/internal/api/handlers"
	"github.com/unifiedui/school-service/internal/api/middleware"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/school-service"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	DashboardHandler *handlers.DashboardHandler
	StudentsHandler  *handlers.StudentsHandler
	AdminHandler     *handlers.AdminHandler
	AuthMiddleware   *middleware.AuthMiddleware
	RateLimit        *middleware.RateLimitMiddleware
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	tenantMw := middleware.NewTenantMiddleware()

	v1 := r.Group(BasePath)
	{
		// Health check routes (no auth required)
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Tenant-scoped routes
		tenants := v1.Group("/tenants/:tenantId")
		tenants.Use(tenantMw.ExtractTenant())
		if cfg.RateLimit != nil {
			tenants.Use(cfg.RateLimit.Limit())
		}
		{
			tenants.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
			tenants.GET("/activity", cfg.DashboardHandler.GetActivity)

			tenants.GET("/students", cfg.StudentsHandler.ListStudents)
			tenants.POST("/students", cfg.StudentsHandler.CreateStudent)
			tenants.GET("/students/:studentId", cfg.StudentsHandler.GetStudent)
		}

		// Admin routes only exist when a service key is configured.
		if cfg.AdminHandler != nil && cfg.AuthMiddleware != nil && cfg.AuthMiddleware.Enabled() {
			admin := v1.Group("/admin")
			admin.Use(cfg.AuthMiddleware.Authenticate())
			{
				admin.POST("/cache/warm", cfg.AdminHandler.WarmCache)
				admin.GET("/cache/keys/:key", cfg.AdminHandler.KeyExists)
				admin.DELETE("/cache", cfg.AdminHandler.FlushCache)

				admin.GET("/tenants", cfg.AdminHandler.ListTenants)
				adminTenant := admin.Group("/tenants/:tenantId")
				adminTenant.Use(tenantMw.ExtractTenant())
				adminTenant.GET("/students", cfg.AdminHandler.CachedStudents)
				adminTenant.DELETE("/cache", cfg.AdminHandler.InvalidateTenant)
			}
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware, cors middleware.CORSConfig) {
	r.Use(middleware.NewCORSMiddleware(cors))
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())

	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())

	Setup(r, cfg)
}
