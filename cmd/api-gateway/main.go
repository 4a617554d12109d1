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
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/aina-app/aina-api/api/swagger"
	"github.com/aina-app/aina-api/internal/handler"
	"github.com/aina-app/aina-api/internal/middleware"
	"github.com/aina-app/aina-api/internal/repository"
	"github.com/aina-app/aina-api/internal/service"
	"github.com/aina-app/aina-api/pkg/cache"
	"github.com/aina-app/aina-api/pkg/config"
	"github.com/aina-app/aina-api/pkg/database"
	"github.com/aina-app/aina-api/pkg/export"
	"github.com/aina-app/aina-api/pkg/jobs"
	"github.com/aina-app/aina-api/pkg/logger"
	corsmiddleware "github.com/aina-app/aina-api/pkg/middleware/cors"
	reqidmiddleware "github.com/aina-app/aina-api/pkg/middleware/requestid"
	"github.com/aina-app/aina-api/pkg/openagenda"
	"github.com/aina-app/aina-api/pkg/storage"
)

// @title AiNa Calendar API
// @version 1.0.0
// @description Event aggregation engine for shopkeepers
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := cfg.Calendar.Location()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, hidden events will not be cached", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close() //nolint:errcheck

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	eventRepo := repository.NewEventRepository(db)
	hiddenRepo := repository.NewHiddenEventRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.HiddenCacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(cfg.JWT, logr)
	calendarSvc := service.NewCalendarService(eventRepo, validate, logr)
	hiddenSvc := service.NewHiddenEventService(hiddenRepo, cacheSvc, cfg.Calendar.HiddenCacheTTL, loc, validate, logr)
	localSvc := service.NewLocalEventService(openagenda.NewClient(cfg.OpenAgenda, nil), businessRepo, metricsSvc, logr)
	aggregationSvc := service.NewAggregationService(eventRepo, localSvc, hiddenSvc, metricsSvc, logr, service.AggregationConfig{
		Location:       loc,
		DaysAhead:      cfg.Calendar.DaysAhead,
		DashboardLimit: cfg.Calendar.DashboardLimit,
		LocalLimit:     cfg.OpenAgenda.Limit,
	})
	exportSvc := service.NewExportService(aggregationSvc, export.NewICSExporter("AiNa"), export.NewCSVExporter(';'), export.NewPDFExporter(25, 60, 30, 22, 55, 85), loc)
	feedSvc := service.NewFeedService(storage.NewFeedSigner(cfg.Feeds.SignedURLSecret, cfg.Feeds.SignedURLTTL), exportSvc, logr)

	if cfg.Reminders.Enabled {
		reminderSvc := service.NewReminderService(businessRepo, hiddenSvc, notificationRepo, logr, service.ReminderConfig{
			Schedule: cfg.Reminders.Schedule,
			LeadDays: cfg.Reminders.LeadDays,
			Location: loc,
		})
		queue := jobs.NewQueue("reminders", reminderSvc.HandleJob, jobs.QueueConfig{
			Workers:    cfg.Reminders.Workers,
			MaxRetries: 3,
			RetryDelay: time.Minute,
			Logger:     logr,
		})
		queue.Start(ctx)
		defer queue.Stop()
		if err := reminderSvc.Schedule(ctx, queue); err != nil {
			return err
		}
		defer reminderSvc.Stop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metricsSvc, readinessChecks(db, redisClient))
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	eventHandler := handler.NewEventHandler(aggregationSvc, calendarSvc, loc)
	hiddenHandler := handler.NewHiddenEventHandler(hiddenSvc)
	exportHandler := handler.NewExportHandler(exportSvc, loc)
	feedHandler := handler.NewFeedHandler(feedSvc, cfg.APIPrefix)

	api := r.Group(cfg.APIPrefix)
	api.GET("/feeds/:token", feedHandler.Serve)

	events := api.Group("/events")
	events.Use(middleware.JWT(authSvc), middleware.RequireRoles(middleware.RoleAuthenticated))
	{
		events.GET("/upcoming", eventHandler.Upcoming)
		events.GET("/calendar", eventHandler.Calendar)
		events.GET("/year/:year", eventHandler.Year)
		events.GET("/export", exportHandler.Export)
		events.POST("/feed", feedHandler.Issue)

		events.GET("/hidden", hiddenHandler.List)
		events.POST("/hidden", middleware.Audit(logr, "hide", "hidden_event"), hiddenHandler.Hide)
		events.DELETE("/hidden/:key", middleware.Audit(logr, "restore", "hidden_event"), hiddenHandler.Restore)

		events.GET("", eventHandler.List)
		events.POST("", middleware.Audit(logr, "create", "event"), eventHandler.Create)
		events.GET("/:id", eventHandler.Get)
		events.PUT("/:id", middleware.Audit(logr, "update", "event"), eventHandler.Update)
		events.DELETE("/:id", middleware.Audit(logr, "delete", "event"), eventHandler.Delete)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func readinessChecks(db *sqlx.DB, redisClient *redis.Client) map[string]handler.ReadinessCheck {
	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return checks
}
