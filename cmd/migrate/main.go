package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/pkg/config"
	"github.com/iac-studio/converge/pkg/database"
	"github.com/iac-studio/converge/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat, logger.WithService("converge-migrate"))
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL, cfg.Verbose())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := runMigrations(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}

func runMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	if err := db.AutoMigrate(&models.Execution{}, &models.ServiceOutcome{}); err != nil {
		return err
	}
	// listing the executions of an environment, newest first
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_executions_environment_created
		ON executions(environment_id, created_at DESC)
		WHERE deleted_at IS NULL
	`).Error
}
