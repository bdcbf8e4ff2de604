package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/coursedesk/coursedesk-api/api/swagger"
	"github.com/coursedesk/coursedesk-api/internal/handler"
	"github.com/coursedesk/coursedesk-api/internal/livingapps"
	"github.com/coursedesk/coursedesk-api/internal/middleware"
	"github.com/coursedesk/coursedesk-api/internal/repository"
	"github.com/coursedesk/coursedesk-api/internal/service"
	"github.com/coursedesk/coursedesk-api/pkg/cache"
	"github.com/coursedesk/coursedesk-api/pkg/config"
	"github.com/coursedesk/coursedesk-api/pkg/logger"
	corsmiddleware "github.com/coursedesk/coursedesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/coursedesk/coursedesk-api/pkg/middleware/requestid"
)

// @title CourseDesk API
// @version 1.0.0
// @description Admin dashboard API for course management over the LivingApps record service
// @BasePath /api/v1
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

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Overview.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, overview caching disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Overview.CacheTTL, logr, true)
		}
	}

	client := livingapps.NewClient(cfg.LivingApps, logr, metricsSvc)

	instructorRepo := repository.NewInstructorRepository(client, cfg.LivingApps.Apps.Instructors)
	roomRepo := repository.NewRoomRepository(client, cfg.LivingApps.Apps.Rooms)
	participantRepo := repository.NewParticipantRepository(client, cfg.LivingApps.Apps.Participants)
	courseRepo := repository.NewCourseRepository(client, cfg.LivingApps.Apps.Courses)
	registrationRepo := repository.NewRegistrationRepository(client, cfg.LivingApps.Apps.Registrations)

	instructorSvc := service.NewInstructorService(instructorRepo, validate, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, logr)
	participantSvc := service.NewParticipantService(participantRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, instructorRepo, roomRepo, cfg.LivingApps.Apps, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, participantRepo, courseRepo, cfg.LivingApps.Apps, validate, logr)
	overviewSvc := service.NewOverviewService(courseRepo, registrationRepo, cacheSvc, cfg.Overview, logr)
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)
	exportSvc := service.NewExportService(courseSvc, participantSvc, registrationSvc, logr)

	instructorHandler := handler.NewInstructorHandler(instructorSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	participantHandler := handler.NewParticipantHandler(participantSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, overviewSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, overviewSvc)
	overviewHandler := handler.NewOverviewHandler(overviewSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/overview", overviewHandler.Summary)
	api.GET("/metrics/system", metricsHandler.Snapshot)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.JWT(authSvc))
	}

	registerCRUD := func(group *gin.RouterGroup, path string, h interface {
		List(*gin.Context)
		Get(*gin.Context)
		Create(*gin.Context)
		Update(*gin.Context)
		Delete(*gin.Context)
	}) {
		api.GET(path, h.List)
		api.GET(path+"/:id", h.Get)
		group.POST(path, h.Create)
		group.PUT(path+"/:id", h.Update)
		group.DELETE(path+"/:id", h.Delete)
	}

	registerCRUD(protected, "/instructors", instructorHandler)
	registerCRUD(protected, "/rooms", roomHandler)
	registerCRUD(protected, "/participants", participantHandler)
	registerCRUD(protected, "/courses", courseHandler)
	registerCRUD(protected, "/registrations", registrationHandler)

	if cfg.Exports.Enabled {
		exports := protected.Group("/exports")
		exports.GET("/courses.csv", exportHandler.CoursesCSV)
		exports.GET("/courses.pdf", exportHandler.CoursesPDF)
		exports.GET("/participants.csv", exportHandler.ParticipantsCSV)
		exports.GET("/registrations.csv", exportHandler.RegistrationsCSV)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
