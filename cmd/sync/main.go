package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tender-sync/internal/app"
	"tender-sync/internal/config"
	"tender-sync/internal/database/migration"
)

// One-shot sync run for cron jobs and manual imports. Exits non-zero
// when the run itself fails; per-entry errors are counted in the run
// log, not fatal.
func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	container, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := (migration.Runner{}).Run(ctx, container.DB.SQLDB()); err != nil {
		logger.Fatalf("migrations failed: %v", err)
	}

	summary, err := container.Sync.Run(ctx)
	if err != nil {
		logger.Fatalf("sync run failed: %v", err)
	}

	logger.Printf("sync finished | fetched=%d in_scope=%d inserted=%d updated=%d skipped=%d matches=%d errors=%d",
		summary.EntriesFetched, summary.EntriesInScope, summary.RecordsInserted,
		summary.RecordsUpdated, summary.RecordsSkipped, summary.MatchesCreated, len(summary.Errors))
}
