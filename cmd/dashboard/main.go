package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"sheetdiff/adapters/postgres"
	"sheetdiff/app"
	"sheetdiff/internal"
	"sheetdiff/internal/config"
	"sheetdiff/internal/testkit"
	"sheetdiff/ports"
	"sheetdiff/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	service := app.NewCompareService(logger)

	runs, err := loadRuns(ctx, logger, service, appConfig)
	if err != nil {
		log.Fatalf("failed to prepare comparison: %v", err)
	}

	var store ports.DashboardStorePort
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Fatalf("failed to connect to dashboard database: %v", err)
		}
		defer db.Close()

		store = postgres.NewDashboardRepository(db)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to create dashboard schema: %v", err)
		}
		for _, run := range runs {
			if err := store.SaveComparison(ctx, run.Record()); err != nil {
				log.Fatalf("failed to store comparison: %v", err)
			}
		}
		logger.Info("stored %d comparison(s) in dashboard database", len(runs))
	}

	server, err := ui.NewServer(logger, store)
	if err != nil {
		log.Fatalf("failed to create dashboard server: %v", err)
	}
	server.SetRuns(runs)

	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("dashboard server stopped: %v", err)
	}
}

// loadRuns compares the configured snapshot pair, falling back to generated
// sample data when no files are configured so the dashboard always has
// something to show
func loadRuns(ctx context.Context, logger *internal.Logger, service *app.CompareService, appConfig *config.Config) ([]*app.RunResult, error) {
	oldFile := appConfig.Compare.OldFile
	newFile := appConfig.Compare.NewFile

	if oldFile == "" || newFile == "" {
		logger.Info("OLD_FILE/NEW_FILE not set, generating sample data")
		dir, err := os.MkdirTemp("", "sheetdiff-sample")
		if err != nil {
			return nil, err
		}
		kit := testkit.NewTestKit(42)
		oldFile, newFile, err = kit.WriteSampleWorkbooks(dir)
		if err != nil {
			return nil, err
		}
	}

	run, err := service.Run(ctx, app.RunRequest{
		OldPath:    oldFile,
		NewPath:    newFile,
		KeyColumns: appConfig.Compare.KeyColumns,
		Sheet:      ports.SheetSelector{Name: appConfig.Compare.Sheet},
	})
	if err != nil {
		return nil, err
	}
	return []*app.RunResult{run}, nil
}
