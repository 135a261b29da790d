// Package main is the entry point for the school service.
// @title School Service API
// @version 1.0
// @description Tenant dashboards and student records served through a Redis cache in front of MongoDB.

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer service key for admin routes
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unifiedui/school-service/docs"
	"github.com/unifiedui/school-service/internal/api/handlers"
	"github.com/unifiedui/school-service/internal/api/middleware"
	"github.com/unifiedui/school-service/internal/api/routes"
	"github.com/unifiedui/school-service/internal/config"
	"github.com/unifiedui/school-service/internal/core/cache"
	"github.com/unifiedui/school-service/internal/core/docdb"
	rediscache "github.com/unifiedui/school-service/internal/infrastructure/cache/redis"
	"github.com/unifiedui/school-service/internal/infrastructure/docdb/mongodb"
	"github.com/unifiedui/school-service/internal/pkg/logger"
	"github.com/unifiedui/school-service/internal/services/dashboard"
	"github.com/unifiedui/school-service/internal/services/students"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()

	// The cache client never fails on an unreachable store; it degrades instead.
	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close cache client")
		}
	}()

	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := docDBClient.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("failed to close document db client")
		}
	}()

	if err := docDBClient.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	dashboardService, err := dashboard.NewService(&dashboard.Config{
		CacheClient: cacheClient,
		Students:    docDBClient.Students(),
		TTL:         cfg.Cache.TTL,
		Logger:      logger.Component("dashboard"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dashboard service")
	}

	studentsService, err := students.NewService(&students.Config{
		CacheClient: cacheClient,
		Students:    docDBClient.Students(),
		Dashboard:   dashboardService,
		Logger:      logger.Component("students"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize students service")
	}

	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(cfg, cacheClient, docDBClient, dashboardService, studentsService)

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:           cfg.Host,
			Port:           cfg.Port,
			Username:       cfg.Username,
			Password:       cfg.Password,
			DB:             cfg.DB,
			DefaultTTL:     cfg.TTL,
			DialTimeout:    cfg.DialTimeout,
			RequestTimeout: cfg.RequestTimeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger.Component("cache"),
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB:
		// CosmosDB speaks the MongoDB protocol.
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, cacheClient cache.Client, docDBClient docdb.Client, dashboardService dashboard.Service, studentsService students.Service) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddlewareWithLogger(logger.Component("http"))
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(cacheClient, docDBClient),
		DashboardHandler: handlers.NewDashboardHandler(dashboardService),
		StudentsHandler:  handlers.NewStudentsHandler(studentsService),
		AdminHandler:     handlers.NewAdminHandler(cacheClient, dashboardService, studentsService),
		AuthMiddleware:   middleware.NewAuthMiddleware(cfg.Admin.APIKey),
		RateLimit: middleware.NewRateLimitMiddleware(cacheClient, middleware.RateLimitConfig{
			Requests:    cfg.RateLimit.Requests,
			Window:      cfg.RateLimit.Window,
			MaxInFlight: cfg.RateLimit.MaxInFlight,
		}),
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw, middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins))

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
