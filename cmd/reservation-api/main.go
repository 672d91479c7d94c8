package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/couchconnector/buildingrez-api/api/swagger"
	"github.com/couchconnector/buildingrez-api/internal/handler"
	"github.com/couchconnector/buildingrez-api/internal/middleware"
	"github.com/couchconnector/buildingrez-api/internal/repository"
	"github.com/couchconnector/buildingrez-api/internal/service"
	"github.com/couchconnector/buildingrez-api/pkg/cache"
	"github.com/couchconnector/buildingrez-api/pkg/config"
	"github.com/couchconnector/buildingrez-api/pkg/database"
	"github.com/couchconnector/buildingrez-api/pkg/logger"
	corsmiddleware "github.com/couchconnector/buildingrez-api/pkg/middleware/cors"
	reqidmiddleware "github.com/couchconnector/buildingrez-api/pkg/middleware/requestid"
)

// @title Building Reservation API
// @version 1.0.0
// @description Room reservation scheduling and conflict resolution service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is an optimisation, not a dependency: when it is unreachable the
	// service runs uncached.
	var cacheRepo service.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Availability.CacheTTL, logr, cfg.Availability.CacheEnabled)

	buildingRepo := repository.NewBuildingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	buildingSvc := service.NewBuildingService(buildingRepo, roomRepo, logr)
	availabilitySvc := service.NewAvailabilityService(roomRepo, cacheSvc, nil, logr)
	reservationSvc := service.NewReservationService(slotRepo, roomRepo, cacheSvc, metricsSvc, nil, logr)
	seriesSvc := service.NewSeriesService(slotRepo, roomRepo, cacheSvc, metricsSvc, cfg.Series, nil, logr)
	dashboardSvc := service.NewDashboardService(slotRepo, buildingRepo, roomRepo, logr)
	exportSvc := service.NewExportService(slotRepo, logr)

	buildingHandler := handler.NewBuildingHandler(buildingSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	seriesHandler := handler.NewSeriesHandler(seriesSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/buildings", buildingHandler.List)
		api.GET("/buildings/:id/floors", buildingHandler.Floors)
		api.GET("/availability", availabilityHandler.Search)
		api.POST("/reservations", reservationHandler.Submit)
	}

	admin := api.Group("/admin", middleware.AdminGate(cfg.Admin.GateHeader))
	{
		admin.GET("/dashboard", dashboardHandler.Stats)
		admin.GET("/rooms", buildingHandler.Rooms)
		admin.GET("/rooms/:id/schedule", reservationHandler.RoomSchedule)

		admin.GET("/reservations", reservationHandler.List)
		admin.GET("/reservations/blocks", reservationHandler.PendingBlocks)
		admin.POST("/reservations/blocks/approve", reservationHandler.ApproveBlock)
		admin.POST("/reservations/blocks/reject", reservationHandler.RejectBlock)
		admin.POST("/reservations/:id/approve", reservationHandler.Approve)
		admin.POST("/reservations/:id/reject", reservationHandler.Reject)
		admin.DELETE("/reservations/:id", reservationHandler.Cancel)
		if cfg.Export.Enabled {
			admin.GET("/reservations/export", exportHandler.Reservations)
		}

		admin.GET("/series", seriesHandler.List)
		admin.POST("/series", seriesHandler.Create)
		admin.DELETE("/series", seriesHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
