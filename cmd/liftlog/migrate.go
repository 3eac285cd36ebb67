// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Reads everything from one backend and writes it into an empty other one.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all liftlog data from one storage backend to another.

Both backends use the configured data directory. The destination must be
empty unless --force is given; duplicate records still fail.

USAGE:

  liftlog migrate --from sqlite --to badger --dry-run   # Preview counts
  liftlog migrate --from sqlite --to badger             # Copy
  liftlog migrate --from sqlite --to charm              # Push to Charm Cloud

AFTER MIGRATION:

  Set "backend" in ~/.config/liftlog/config.json (or LIFTLOG_BACKEND) to
  the new backend.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}
		out := cmd.OutOrStdout()

		src, err := openBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			data, err := storage.CollectExport(src)
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			days := 0
			for _, r := range data.Routines {
				days += len(r.Days)
			}
			printSummary(out, &storage.MigrateSummary{
				Users:     len(data.Users),
				Exercises: len(data.Exercises),
				Routines:  len(data.Routines),
				Days:      days,
				Weights:   len(data.Weights),
			})
			return nil
		}

		if migrateTo == config.BackendBadger && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(cfg.KVDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to merge)", cfg.KVDir())
			}
		}

		dst, err := openBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		if !migrateForce {
			users, err := dst.ListUsers()
			if err != nil {
				return err
			}
			exercises, err := dst.ListExercises()
			if err != nil {
				return err
			}
			if len(users) > 0 || len(exercises) > 0 {
				return fmt.Errorf("destination %s already holds data (use --force to merge)", migrateTo)
			}
		}

		var summary *storage.MigrateSummary
		err = bulkWrite(dst, func() error {
			var err error
			summary, err = storage.MigrateData(src, dst)
			return err
		})
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %s to %s\n", migrateFrom, migrateTo)
		printSummary(out, summary)
		return nil
	},
}

// openBackend opens an uncached repository for backend with the current config.
func openBackend(backend string) (storage.Repository, error) {
	c := *cfg
	c.Backend = backend
	c.CacheMB = -1
	return c.OpenStorage()
}

func printSummary(out io.Writer, s *storage.MigrateSummary) {
	fmt.Fprintf(out, "  users      %d\n", s.Users)
	fmt.Fprintf(out, "  exercises  %d\n", s.Exercises)
	fmt.Fprintf(out, "  routines   %d\n", s.Routines)
	fmt.Fprintf(out, "  days       %d\n", s.Days)
	fmt.Fprintf(out, "  weights    %d\n", s.Weights)
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendSQLite, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendBadger, "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a destination that already has data")
	rootCmd.AddCommand(migrateCmd)
}
