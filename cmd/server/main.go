package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appsync "github.com/viamoe/haady-business-sub003/internal/application/sync"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/auth"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/config"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/ecommerce"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/logger"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/persistence"
	"github.com/viamoe/haady-business-sub003/internal/infrastructure/synclock"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/handler"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/middleware"
	"github.com/viamoe/haady-business-sub003/internal/interfaces/http/router"
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

	log.Info("Starting catalog sync backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with GORM logging routed through zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis backs the per-store sync lock
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis connection", zap.Error(err))
		}
	}()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	cancelPing()
	log.Info("Redis connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	sourceLinkRepo := persistence.NewGormSourceLinkRepository(db.DB)
	syncRunRepo := persistence.NewGormSyncRunRepository(db.DB)

	// Platform adapters
	sallaConfig := ecommerce.NewSallaConfig()
	sallaConfig.PerPage = cfg.Sync.PageSize
	sallaConfig.TimeoutSeconds = int(cfg.Sync.FetchTimeout.Seconds())
	sallaAdapter, err := ecommerce.NewSallaAdapter(sallaConfig)
	if err != nil {
		log.Fatal("Failed to initialize Salla adapter", zap.Error(err))
	}

	zidConfig := ecommerce.NewZidConfig()
	zidConfig.PageSize = cfg.Sync.PageSize
	zidConfig.TimeoutSeconds = int(cfg.Sync.FetchTimeout.Seconds())
	zidAdapter, err := ecommerce.NewZidAdapter(zidConfig)
	if err != nil {
		log.Fatal("Failed to initialize Zid adapter", zap.Error(err))
	}

	registry := ecommerce.NewCatalogSourceRegistry()
	registry.Register(sallaAdapter)
	registry.Register(zidAdapter)

	// Application services
	storeLock := synclock.NewRedisStoreLock(redisClient, cfg.Sync.LockTTL)
	syncService := appsync.NewCatalogSyncService(registry, productRepo, sourceLinkRepo, syncRunRepo, storeLock, log)

	// HTTP surface
	verifier := auth.NewJWTVerifier(cfg.JWT)
	syncHandler := handler.NewSyncHandler(syncService, cfg.Sync.RunHistoryLimit)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.New(router.Config{
		Logger:        log,
		Verifier:      verifier,
		SyncHandler:   syncHandler,
		SystemHandler: systemHandler,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

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
