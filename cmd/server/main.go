package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freightquote/internal/config"
	"freightquote/internal/handlers"
	"freightquote/internal/middleware"
	"freightquote/internal/repositories/mongodb"
	"freightquote/internal/services"
	"freightquote/pkg/cache"
	"freightquote/pkg/database"
	"freightquote/pkg/logger"
	"freightquote/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		AppName: cfg.App.Name,
		Caller:  cfg.Log.Caller,
		Colors:  cfg.Log.Colors,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	auditLogger, err := logger.NewAuditLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Output: cfg.Log.AuditOutput,
	})
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}

	// Connect to MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.CreateIndexes(ctx); err != nil {
		appLogger.Fatalf("Failed to create indexes: %v", err)
	}

	// Connect to Redis; the repositories fall back to mongo when the cache
	// is unavailable, so this is not fatal.
	var cacheService mongodb.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	// Initialize repositories
	rateRepo := mongodb.NewRateRepository(db.Database, cacheService)
	locationRepo := mongodb.NewLocationRepository(db.Database, cacheService)
	containerTypeRepo := mongodb.NewContainerTypeRepository(db.Database, cacheService)

	// Initialize services
	rateService := services.NewRateService(rateRepo, locationRepo, containerTypeRepo, db, appLogger, auditLogger)
	quoteService := services.NewQuoteService(rateRepo, appLogger)
	locationService := services.NewLocationService(locationRepo, appLogger, auditLogger)
	containerTypeService := services.NewContainerTypeService(containerTypeRepo, appLogger, auditLogger)

	// Seed reference data
	if cfg.App.SeedData {
		seedService := services.NewSeedService(locationRepo, containerTypeRepo, appLogger)
		if err := seedService.SeedReferenceData(ctx); err != nil {
			appLogger.Fatalf("Failed to seed reference data: %v", err)
		}
	}

	// Initialize handlers
	rateHandler := handlers.NewRateHandler(rateService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	locationHandler := handlers.NewLocationHandler(locationService)
	containerTypeHandler := handlers.NewContainerTypeHandler(containerTypeService)

	// Initialize Gin router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			appLogger.Fatalf("Failed to set trusted proxies: %v", err)
		}
	}

	// Global middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupQuoteRoutes(v1, quoteHandler)
		routes.SetupRateRoutes(v1, rateHandler)
		routes.SetupLocationRoutes(v1, locationHandler)
		routes.SetupContainerTypeRoutes(v1, containerTypeHandler)
	}

	// Health check. The cache is optional, so a dead Redis degrades the
	// report without failing it.
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		cacheStatus := "disabled"
		if redisCache != nil {
			cacheStatus = "healthy"
			if err := redisCache.Ping(c.Request.Context()); err != nil {
				cacheStatus = "unhealthy"
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"cache":   cacheStatus,
			"version": cfg.App.Version,
		})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithField("port", cfg.App.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}
