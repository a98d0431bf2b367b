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
	"go.uber.org/zap"

	_ "github.com/noah-isme/fileflow-portal-api/api/swagger"
	"github.com/noah-isme/fileflow-portal-api/internal/dto"
	"github.com/noah-isme/fileflow-portal-api/internal/handler"
	"github.com/noah-isme/fileflow-portal-api/internal/middleware"
	"github.com/noah-isme/fileflow-portal-api/internal/models"
	"github.com/noah-isme/fileflow-portal-api/internal/repository"
	"github.com/noah-isme/fileflow-portal-api/internal/service"
	"github.com/noah-isme/fileflow-portal-api/pkg/cache"
	"github.com/noah-isme/fileflow-portal-api/pkg/config"
	"github.com/noah-isme/fileflow-portal-api/pkg/database"
	"github.com/noah-isme/fileflow-portal-api/pkg/jobs"
	"github.com/noah-isme/fileflow-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/fileflow-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/fileflow-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/fileflow-portal-api/pkg/storage"
)

// @title FileFlow Portal API
// @version 1.0.0
// @description Intake portal that relays fiscal documents to the accounting office FTP store.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	metricsSvc := service.NewMetricsService()
	validate := dto.NewValidator()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			cfg.Cache.Enabled = false
		} else {
			defer client.Close()
			cacheRepo = repository.NewCacheRepository(client, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled)

	dialer, err := newDialer(cfg.FTP, logr)
	if err != nil {
		logr.Fatal("failed to prepare remote store", zap.Error(err))
	}

	registry := service.NewCategoryRegistry(cfg.FTP.CategoryAccounts)
	if missing := registry.Unconfigured(); len(missing) > 0 {
		logr.Warn("categories without remote account will be rejected", zap.Strings("categories", missing))
	}

	companyRepo := repository.NewCompanyRepository(db)
	userRepo := repository.NewUserRepository(db, cfg.Auth.UsersTable)
	submissionRepo := repository.NewSubmissionRepository(db)

	companySvc := service.NewCompanyService(companyRepo, cacheSvc, validate, logr)
	userSvc := service.NewUserService(userRepo, cacheSvc, validate, logr)
	submissionSvc := service.NewSubmissionService(submissionRepo, companySvc, registry, validate, metricsSvc)
	reportSvc := service.NewReportService(companyRepo, submissionRepo, registry, metricsSvc, logr)
	relaySvc := service.NewRelayService(registry, companyRepo, submissionRepo, dialer, service.RelayConfig{
		DirPollAttempts:  cfg.FTP.DirPollAttempts,
		DirPollInterval:  cfg.FTP.DirPollInterval,
		MaxFileSizeBytes: cfg.Upload.MaxFileSizeBytes,
	}, metricsSvc, logr)
	if cfg.Upload.RecordRetries > 0 {
		recordQueue := jobs.NewQueue("submission-records", relaySvc.RetryRecord, jobs.QueueConfig[models.Submission]{
			Workers:    1,
			BufferSize: 256,
			MaxRetries: cfg.Upload.RecordRetries,
			RetryDelay: cfg.Upload.RecordRetryDelay,
			Logger:     logr,
			OnDiscard:  relaySvc.DiscardRecord,
		})
		recordQueue.Start(context.Background())
		defer recordQueue.Stop()
		relaySvc.WithRecordRetry(recordQueue)
	}
	identitySvc := service.NewIdentityService(cfg.Auth.JWTSecret)

	uploadHandler := handler.NewUploadHandler(relaySvc)
	companyHandler := handler.NewCompanyHandler(companySvc)
	userHandler := handler.NewUserHandler(userSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	categoryHandler := handler.NewCategoryHandler(registry)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/health", "/ready", "/metrics"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/")
	api.Use(middleware.Identity(identitySvc, cfg.Auth.RequireToken))
	{
		api.POST("/upload/:tipoArquivo/:empresaId/:mes", uploadHandler.Upload)

		api.GET("/tipos-arquivos", categoryHandler.List)

		api.GET("/empresas", companyHandler.List)
		api.GET("/empresas/:id/tipos-arquivos", companyHandler.Categories)
		api.PUT("/empresas/:id/tipos-arquivos", middleware.Audit(logr, "company.categories.replace", "empresas"), companyHandler.ReplaceCategories)

		api.GET("/usuarios", userHandler.List)
		api.POST("/usuarios", middleware.Audit(logr, "user.create", "usuarios"), userHandler.Create)
		api.PUT("/usuarios/:id", middleware.Audit(logr, "user.rename", "usuarios"), userHandler.Update)
		api.GET("/usuarios/:id/empresas", userHandler.Companies)
		api.PUT("/usuarios/:id/empresas", middleware.Audit(logr, "user.companies.replace", "usuarios"), userHandler.ReplaceCompanies)
		api.GET("/usuarios-auth", userHandler.IdentityUsers)

		api.GET("/uploads", submissionHandler.List)
		api.GET("/uploads/situacao", submissionHandler.Status)

		api.GET("/relatorios/envios", reportHandler.Submissions)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "remote", dialer.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newDialer(cfg config.FTPConfig, logr *zap.Logger) (storage.Dialer, error) {
	var dialer storage.Dialer
	if cfg.LocalDir != "" {
		local, err := storage.NewLocalDialer(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		logr.Warn("remote store replaced by local directory", zap.String("dir", cfg.LocalDir))
		dialer = local
	} else {
		dialer = storage.NewFTPDialer(cfg)
	}
	if cfg.BreakerEnabled {
		dialer = storage.NewBreakerDialer(dialer, cfg.BreakerFailures, cfg.BreakerOpenFor, logr)
	}
	return dialer, nil
}
