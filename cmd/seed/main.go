package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"sheetdiff/adapters/postgres"
	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/config"
	"sheetdiff/ports"
)

// Seeds the dashboard database from one comparison run. Requires
// DATABASE_URL plus OLD_FILE and NEW_FILE.
func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if appConfig.Database.URL == "" {
		log.Fatal("DATABASE_URL is required for seeding")
	}
	if appConfig.Compare.OldFile == "" || appConfig.Compare.NewFile == "" {
		log.Fatal("OLD_FILE and NEW_FILE are required for seeding")
	}

	ctx := context.Background()

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		log.Fatalf("failed to connect to dashboard database: %v", err)
	}
	defer db.Close()

	store := postgres.NewDashboardRepository(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to create dashboard schema: %v", err)
	}

	service := app.NewCompareService(logger)
	run, err := service.Run(ctx, app.RunRequest{
		OldPath:    appConfig.Compare.OldFile,
		NewPath:    appConfig.Compare.NewFile,
		KeyColumns: appConfig.Compare.KeyColumns,
		Sheet:      ports.SheetSelector{Name: appConfig.Compare.Sheet},
	})
	if err != nil {
		log.Fatalf("comparison failed: %v", err)
	}

	if err := store.SaveComparison(ctx, run.Record()); err != nil {
		log.Fatalf("failed to store comparison: %v", err)
	}
	logger.Info("seeded dashboard with comparison %s (%s)", run.ID, run.Label)
}
