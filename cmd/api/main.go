package main

// @title Pereval API
// @version 1.0.0
// @description REST API для отправки и получения данных о горных перевалах: пользователь, район, координаты, уровни сложности и изображения.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/pereval-service/docs"
	"github.com/pereval-service/internal/config"
	httpDelivery "github.com/pereval-service/internal/delivery/http"
	"github.com/pereval-service/internal/delivery/http/handler"
	"github.com/pereval-service/internal/domain/repository"
	"github.com/pereval-service/internal/pkg/logger"
	"github.com/pereval-service/internal/repository/cache"
	"github.com/pereval-service/internal/repository/media"
	"github.com/pereval-service/internal/repository/sqlstore"
	"github.com/pereval-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Pereval API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("media_storage", cfg.Media.Storage),
		zap.Bool("atomic_submit", cfg.Workflow.Atomic),
	)

	// 3. Connect to database
	db, err := sqlstore.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatal("Failed to apply database schema", zap.Error(err))
		}
	}

	// 4. Connect to Redis (optional)
	checks := map[string]handler.HealthChecker{"database": db}
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(ctx, &cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheRepo = cache.NewCacheRepository(redisClient)
		checks["redis"] = redisClient
	} else {
		log.Info("Redis disabled, pereval cache is off")
		cacheRepo = cache.NewNoopCache()
	}

	// 5. Media storage
	storage, err := media.NewStorage(&cfg.Media, log)
	if err != nil {
		log.Fatal("Failed to initialize media storage", zap.Error(err))
	}

	// 6. Initialize Repositories
	repos := usecase.Repositories{
		Users:      sqlstore.NewUserRepository(db),
		Areas:      sqlstore.NewAreaRepository(db),
		Perevals:   sqlstore.NewPerevalRepository(db),
		Levels:     sqlstore.NewLevelRepository(db),
		Images:     sqlstore.NewImageRepository(db),
		Transactor: sqlstore.NewTransactor(db),
	}

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	perevalUC := usecase.NewPerevalUseCase(
		repos,
		storage,
		cacheRepo,
		usecase.Options{
			Atomic:          cfg.Workflow.Atomic,
			ImageUpdateMode: cfg.Workflow.ImageUpdateMode,
			CacheTTL:        cfg.Cache.PerevalTTL,
		},
		log,
	)

	// 8. Initialize HTTP Handlers
	perevalHandler := handler.NewPerevalHandler(perevalUC, cfg.Media.URL, log)
	healthHandler := handler.NewHealthHandler(checks, log)

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, perevalHandler, healthHandler)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
