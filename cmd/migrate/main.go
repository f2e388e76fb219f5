package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pereval-service/internal/config"
	"github.com/pereval-service/internal/pkg/logger"
	"github.com/pereval-service/internal/repository/sqlstore"
)

// Применяет схему БД для настроенного драйвера и завершается.
// Нужен, когда DB_AUTO_MIGRATE=false.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	db, err := sqlstore.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed", zap.String("driver", cfg.Database.Driver))
}
