package main

import (
	"log"

	"github.com/joho/godotenv"

	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/config"
	"sheetdiff/ui"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	service := app.NewCompareService(logger)
	api := ui.NewApp(logger, service)

	if err := api.Run(appConfig.Server.APIPort); err != nil {
		log.Fatalf("API server stopped: %v", err)
	}
}
