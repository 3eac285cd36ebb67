// ABOUTME: Data migration between liftlog storage backends.
// ABOUTME: Copies users, exercises, routines and weight ledgers from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users     int
	Exercises int
	Routines  int
	Days      int
	Weights   int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	data, err := CollectExport(src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if err := ImportInto(dst, data); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}

	summary := &MigrateSummary{
		Users:     len(data.Users),
		Exercises: len(data.Exercises),
		Routines:  len(data.Routines),
		Weights:   len(data.Weights),
	}
	for _, r := range data.Routines {
		summary.Days += len(r.Days)
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
