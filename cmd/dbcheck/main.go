// Dbcheck opens the configured database, applies the schema and counts the
// stored assessments. It is meant to be run against a production copy before
// deploying a schema change.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/logging"
	"github.com/RaheesAhmed/growthcompass/internal/sqlite"
	"github.com/joho/godotenv"
)

func run(ctx context.Context, logger *slog.Logger) error {
	url, ok := os.LookupEnv("GROWTHCOMPASS_SQLITE_URL")
	if !ok {
		return errors.New("GROWTHCOMPASS_SQLITE_URL is not set")
	}

	start := time.Now()
	db, err := sqlite.NewDatabase(ctx, url, logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(closeErr))
		}
	}()

	var count int
	if err = db.ReadOnly.QueryRowContext(ctx, "SELECT COUNT(*) FROM assessments").Scan(&count); err != nil {
		return errors.Wrap(err, "count assessments")
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "database check passed",
		slog.Int("assessments", count),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func main() {
	_ = godotenv.Load()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if err := run(ctx, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "database check failed", errors.SlogError(err))
		os.Exit(1)
	}
}
