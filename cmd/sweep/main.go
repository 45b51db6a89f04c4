package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/davidleathers/transaction-synthesis-engine/internal/infrastructure/telemetry"
)

// sweep removes empty partition files (CSV files holding only a header)
// left behind by (chunk, profile) pairs with no matching customers.
func main() {
	var (
		dir    = flag.String("dir", "out", "Directory containing partition CSV files")
		dryRun = flag.Bool("dry-run", false, "Report what would be deleted without deleting")
		level  = flag.String("log-level", "info", "Log level")
	)
	flag.Parse()

	logger, err := telemetry.NewLogger(*level, "development")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	checked, deleted, err := sweepDir(*dir, *dryRun, logger)
	if err != nil {
		logger.Fatal("sweep failed", zap.Error(err))
	}
	logger.Info("sweep complete",
		zap.Int("files_checked", checked),
		zap.Int("files_deleted", deleted),
		zap.Bool("dry_run", *dryRun))
}

func sweepDir(dir string, dryRun bool, logger *zap.Logger) (checked, deleted int, err error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, 0, fmt.Errorf("scanning %s: %w", dir, err)
	}

	for _, path := range paths {
		checked++
		empty, err := isEmptyCSV(path)
		if err != nil {
			// Unreadable files are kept, not deleted.
			logger.Warn("could not inspect file", zap.String("path", path), zap.Error(err))
			continue
		}
		if !empty {
			logger.Debug("keeping partition", zap.String("path", path))
			continue
		}
		if dryRun {
			logger.Info("would delete empty partition", zap.String("path", path))
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Warn("could not delete file", zap.String("path", path), zap.Error(err))
			continue
		}
		deleted++
		logger.Info("deleted empty partition", zap.String("path", path))
	}
	return checked, deleted, nil
}

// isEmptyCSV reports whether the file holds a header row and nothing else.
func isEmptyCSV(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	if _, err := r.Read(); err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return false, nil
}
