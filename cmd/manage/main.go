// Command manage runs administrative tasks against the database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"inspection-back/internal/auth"
	"inspection-back/internal/config"
	"inspection-back/internal/database"
	"inspection-back/internal/logging"
	"inspection-back/internal/repository"
	"inspection-back/internal/service"
)

func main() {
	createSuperuser := flag.Bool("create-superuser", false, "create a staff account with superuser rights")
	migrateOnly := flag.Bool("migrate", false, "apply pending migrations and exit")
	email := flag.String("email", "", "superuser email")
	password := flag.String("password", "", "superuser password")
	flag.Parse()

	cfg, _, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if *migrateOnly {
		return
	}

	if !*createSuperuser {
		flag.Usage()
		os.Exit(2)
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	users := service.NewUserService(repository.NewUserRepo(db), auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL), logger)
	u, err := users.CreateSuperuser(ctx, *email, *password)
	if err != nil {
		logger.Fatal("failed to create superuser", zap.Error(err))
	}
	logger.Info("superuser created", zap.Uint("id", u.ID), zap.String("email", u.Email))
}
