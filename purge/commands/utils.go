package commands

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/beesaferoot/gorm-purge/internal/config"
	"github.com/beesaferoot/gorm-purge/internal/logger"
	"github.com/beesaferoot/gorm-purge/purge"
	"github.com/beesaferoot/gorm-purge/purge/store"
)

func getConfig() (config.Config, error) {
	return config.Load()
}

// openStore connects to the configured database. The returned func closes it.
func openStore(cfg config.Config) (*store.GormStore, func(), error) {
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %v", err)
	}
	return store.New(db).WithBatchSize(cfg.Purge.BatchSize), func() { _ = sqlDB.Close() }, nil
}

func newLogger(cfg config.Config) *zap.Logger {
	return logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
}

// printFailure writes what an operator needs to resume: the failing step, its
// cause and the steps that already took effect.
func printFailure(w io.Writer, report *purge.Report, err error) {
	if report == nil {
		return
	}

	if report.FailedStep > 0 {
		fmt.Fprintf(w, "FAILED at step %d (%s): %v\n", report.FailedStep, report.FailedIn, err)
	} else {
		fmt.Fprintf(w, "FAILED while %s: %v\n", report.FailedIn, err)
	}

	if report.RolledBack {
		fmt.Fprintln(w, "The transaction was rolled back; no rows were removed. Re-run once the cause is fixed.")
	} else if len(report.Steps) > 0 {
		fmt.Fprintln(w, "Completed steps:")
		for _, s := range report.Steps {
			if s.Skipped {
				fmt.Fprintf(w, "  %2d  %-22s  skipped\n", s.Number, s.Collection)
				continue
			}
			fmt.Fprintf(w, "  %2d  %-22s  %d row(s)\n", s.Number, s.Collection, s.Rows)
		}
	}

	if revErr, ok := asRevocation(err); ok && revErr.RequiresOperator() {
		fmt.Fprintf(w, "Application data for %s is gone but the identity account remains. Remove it manually or re-run this command.\n", revErr.UserID)
	} else if !report.RolledBack && report.FailedStep > 0 {
		fmt.Fprintln(w, "Deletes are idempotent; re-run this command to resume.")
	}
}
