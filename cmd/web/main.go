package main

import (
	"empylo_backend/internal/app"
	"empylo_backend/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; configuration falls back to
	// config/config.yaml.
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	app.Run()
}
