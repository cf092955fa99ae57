// Package database opens the gorm connection and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inspection-back/internal/models"
	"inspection-back/migrations"
)

// InitDB connects to PostgreSQL. SQL statements are traced when debug is set.
func InitDB(dsn string, debug bool) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), debug)
}

// Open opens a gorm handle on an arbitrary dialector.
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// Migrate runs all pending goose migrations against the PostgreSQL database at dsn.
func Migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// AutoMigrate creates the schema from the gorm models. It backs the
// in-memory databases used by tests and local experiments.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Client{},
		&models.Job{},
		&models.Report{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}
