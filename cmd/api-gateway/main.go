package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/simseminar-api/api/swagger"
	"github.com/noah-isme/simseminar-api/internal/handler"
	"github.com/noah-isme/simseminar-api/internal/middleware"
	"github.com/noah-isme/simseminar-api/internal/models"
	"github.com/noah-isme/simseminar-api/internal/repository"
	"github.com/noah-isme/simseminar-api/internal/service"
	"github.com/noah-isme/simseminar-api/pkg/cache"
	"github.com/noah-isme/simseminar-api/pkg/config"
	"github.com/noah-isme/simseminar-api/pkg/database"
	"github.com/noah-isme/simseminar-api/pkg/jobs"
	"github.com/noah-isme/simseminar-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/simseminar-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/simseminar-api/pkg/middleware/requestid"
	"github.com/noah-isme/simseminar-api/pkg/storage"
)

// @title SIM Seminar API
// @version 1.0.0
// @description Seminar registration and review workflow for the informatics department
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	}

	files, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare upload storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	userRepo := repository.NewUserRepository(db)
	seminarRepo := repository.NewSeminarRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, nil, logr)

	notificationService := service.NewNotificationService(notificationRepo, jobs.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	}, logr)

	seminarService := service.NewSeminarService(seminarRepo, reviewRepo, userRepo, userRepo, files, notificationService, nil, logr, service.SeminarConfig{
		MaxProposalBytes: cfg.Uploads.MaxProposalBytes,
		AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
	})
	reviewService := service.NewReviewService(reviewRepo, seminarRepo, userRepo, files, notificationService, nil, logr, service.ReviewConfig{
		MaxReviewBytes: cfg.Uploads.MaxReviewBytes,
		AllowedMIMEs:   cfg.Uploads.AllowedMIMEs,
	})
	quotaService := service.NewQuotaService(quotaRepo, userRepo, cacheService, cfg.Quota.CacheTTL, logr)
	dashboardService := service.NewDashboardService(seminarRepo, reviewRepo, userRepo, quotaService, cacheService, cfg.Dashboard.CacheTTL, logr)
	exportService := service.NewExportService(seminarRepo, logr)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	seminarHandler := handler.NewSeminarHandler(seminarService, signer)
	reviewHandler := handler.NewReviewHandler(reviewService, signer)
	quotaHandler := handler.NewQuotaHandler(quotaService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	exportHandler := handler.NewExportHandler(exportService)
	fileHandler := handler.NewFileHandler(files, signer)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationService.StartQueue(ctx)
	defer notificationService.StopQueue()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/login-mahasiswa", authHandler.LoginMahasiswa)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", middleware.JWT(authService), authHandler.Logout)
		auth.POST("/change-password", middleware.JWT(authService), authHandler.ChangePassword)
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	api.GET("/files/:token", fileHandler.Download)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))

	users := protected.Group("/users")
	{
		users.GET("", middleware.RequireRoles(models.RoleAdmin), userHandler.List)
		users.GET("/dosen", userHandler.ListDosen)
		users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), userHandler.Get)
		users.POST("", middleware.RequireRoles(models.RoleAdmin), userHandler.Create)
		users.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Update)
		users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)
	}

	seminars := protected.Group("/seminars")
	{
		seminars.POST("", middleware.RequireRoles(models.RoleMahasiswa), seminarHandler.Register)
		seminars.GET("", seminarHandler.List)
		seminars.GET("/:id", seminarHandler.Detail)
		seminars.PUT("/:id/jadwal", middleware.RequireRoles(models.RoleMahasiswa, models.RoleAdmin), seminarHandler.Schedule)
		seminars.POST("/:id/selesai", middleware.RequireRoles(models.RoleAdmin), seminarHandler.Complete)
		seminars.GET("/:id/proposal", seminarHandler.ProposalLink)
		seminars.POST("/:id/reviews", middleware.RequireRoles(models.RoleDosen), reviewHandler.Submit)
		seminars.GET("/:id/reviews", reviewHandler.ListBySeminar)
	}

	protected.PUT("/reviews/:id", middleware.RequireRoles(models.RoleDosen), reviewHandler.Update)

	kuota := protected.Group("/kuota")
	{
		kuota.GET("", quotaHandler.GetAll)
		kuota.POST("/reset", middleware.RequireRoles(models.RoleAdmin), quotaHandler.Reset)
		kuota.GET("/:jenis", quotaHandler.GetByCategory)
		kuota.PUT("/:jenis", middleware.RequireRoles(models.RoleAdmin), quotaHandler.Configure)
	}

	protected.GET("/dashboard", dashboardHandler.Home)

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
		notifications.PATCH("/:id/read", notificationHandler.MarkRead)
	}

	protected.GET("/export/seminars",
		middleware.RequireRoles(models.RoleAdmin),
		middleware.Audit(userRepo, models.AuditActionExport, "seminars"),
		exportHandler.Recap)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
