package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/jobdeck-dev/jobdeck/db"
	"github.com/jobdeck-dev/jobdeck/internal/auth"
	"github.com/jobdeck-dev/jobdeck/internal/config"
	"github.com/jobdeck-dev/jobdeck/internal/jsearch"
	"github.com/jobdeck-dev/jobdeck/internal/logger"
	"github.com/jobdeck-dev/jobdeck/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.NewConfig()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	conn, err := db.Connect(cfg.Database.DSN)

	if err != nil {
		appLogger.Fatal("failed to connect to database", "error", err.Error())
	}

	if err := db.Migrate(conn); err != nil {
		appLogger.Fatal("failed to migrate database", "error", err.Error())
	}

	jwtManager, err := auth.NewManager(cfg.JWT.Secret)

	if err != nil {
		appLogger.Fatal("failed to initialize session manager", "error", err.Error())
	}

	fetcher := jsearch.NewClient(cfg.JSearch, appLogger)

	r := router.New(cfg, conn, jwtManager, fetcher, appLogger)

	appLogger.Info("starting server", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		appLogger.Fatal("failed to start server", "error", err.Error())
	}
}
