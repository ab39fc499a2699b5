package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	analyticsapp "github.com/retailboard/backend/internal/application/analytics"
	reportapp "github.com/retailboard/backend/internal/application/report"
	"github.com/retailboard/backend/internal/infrastructure/cache"
	"github.com/retailboard/backend/internal/infrastructure/config"
	"github.com/retailboard/backend/internal/infrastructure/logger"
	"github.com/retailboard/backend/internal/infrastructure/persistence"
	"github.com/retailboard/backend/internal/interfaces/http/handler"
	"github.com/retailboard/backend/internal/interfaces/http/middleware"
	"github.com/retailboard/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Retail Board Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Strings("brands", cfg.Brand.Prefixes),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	dailyRepo := persistence.NewGormDailyReportRepository(db.DB)
	therapistRepo := persistence.NewGormTherapistReportRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	orgRepo := persistence.NewGormOrgRepository(db.DB)

	// Snapshot cache: Redis when enabled, in-process otherwise
	var snapshotCache analyticsapp.SnapshotCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisSnapshotCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Analytics.SnapshotTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		snapshotCache = redisCache
		log.Info("Redis snapshot cache enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("ttl", cfg.Analytics.SnapshotTTL),
		)
	} else {
		snapshotCache = cache.NewInMemorySnapshotCache(cfg.Analytics.SnapshotTTL)
		log.Info("In-memory snapshot cache enabled", zap.Duration("ttl", cfg.Analytics.SnapshotTTL))
	}

	// Initialize application services
	analyticsService := analyticsapp.NewService(dailyRepo, therapistRepo, budgetRepo, orgRepo, snapshotCache, log)
	dailyService := reportapp.NewDailyReportService(dailyRepo, analyticsService, log)
	therapistService := reportapp.NewTherapistReportService(therapistRepo, log)
	budgetService := reportapp.NewBudgetService(budgetRepo, analyticsService, log)
	orgService := reportapp.NewOrgService(orgRepo, analyticsService, log)

	// Initialize handlers
	dailyHandler := handler.NewDailyReportHandler(dailyService)
	therapistHandler := handler.NewTherapistReportHandler(therapistService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	orgHandler := handler.NewOrgHandler(orgService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, cfg.Brand.DefaultBrand())
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health", "/api/v1/ping"))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(dailyHandler).
		Register(therapistHandler).
		Register(budgetHandler).
		Register(orgHandler).
		Register(analyticsHandler).
		Register(systemHandler)
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
