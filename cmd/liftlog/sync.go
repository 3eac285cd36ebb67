// ABOUTME: CLI commands for Charm Cloud sync of the charm backend.
// ABOUTME: Supports link, status, now and reset on the engine the config opens.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/kvstore"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/spf13/cobra"
)

var syncResetConfirm bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync liftlog data across devices",
	Long: `Sync liftlog data across devices using Charm Cloud.

Only the charm backend syncs. Select it with "backend": "charm" in
~/.config/liftlog/config.json, LIFTLOG_BACKEND=charm, or --backend charm.

Data is encrypted with your SSH key before upload.

COMMANDS:

  link     Link this device to your Charm account
  status   Show the Charm account and local record counts
  now      Sync immediately
  reset    Replace local data with the cloud copy (destructive)

Data syncs automatically after each write.`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		charmCmd := exec.Command("charm", "link")
		charmCmd.Stdin = os.Stdin
		charmCmd.Stdout = cmd.OutOrStdout()
		charmCmd.Stderr = cmd.ErrOrStderr()

		if err := charmCmd.Run(); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Device linked to Charm")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := charmEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		id, err := engine.ID()
		if err != nil {
			color.New(color.FgYellow).Fprintln(out, "Not linked to Charm")
			fmt.Fprintln(out, "\nRun 'liftlog sync link' to connect to Charm.")
			return nil
		}

		host := cfg.CharmHost
		if host == "" {
			host = os.Getenv("CHARM_HOST")
		}
		if host == "" {
			host = "cloud.charm.sh"
		}

		users, err := app.Repo().ListUsers()
		if err != nil {
			return err
		}
		exercises, err := app.Repo().ListExercises()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Server:", host)
		fmt.Fprintln(out)
		color.New(color.FgGreen).Fprintln(out, "✓ Connected to Charm")
		fmt.Fprintf(out, "  Users:     %d\n", len(users))
		fmt.Fprintf(out, "  Exercises: %d\n", len(exercises))
		return nil
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Sync with Charm Cloud immediately",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := charmEngine()
		if err != nil {
			return err
		}
		if err := engine.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Synced with Charm Cloud")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local data and restore from cloud",
	Long: `Delete all local liftlog data and restore it from Charm Cloud.

This is a destructive operation. Use it to reset a device to the cloud state.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := charmEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !syncResetConfirm {
			fmt.Fprintln(out, "This will DELETE all local liftlog data and restore from cloud.")
			fmt.Fprint(out, "Continue? [y/N]: ")
			response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Canceled.")
				return nil
			}
		}

		if err := engine.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		color.New(color.FgGreen).Fprintln(out, "✓ Local data reset and restored from cloud")
		return nil
	},
}

// charmEngine returns the Charm engine behind the open tracker.
func charmEngine() (*kvstore.CharmEngine, error) {
	engine, ok := kvstore.CharmOf(app.Repo())
	if !ok {
		return nil, fmt.Errorf("sync needs the %s backend (current: %s)", config.BackendCharm, cfg.GetBackend())
	}
	return engine, nil
}

// bulkWrite runs fn with per-write sync off when repo is Charm-backed,
// syncing once at the end.
func bulkWrite(repo storage.Repository, fn func() error) error {
	if engine, ok := kvstore.CharmOf(repo); ok {
		return engine.Bulk(fn)
	}
	return fn()
}

func init() {
	syncResetCmd.Flags().BoolVarP(&syncResetConfirm, "yes", "y", false, "skip confirmation prompt")
	syncCmd.AddCommand(syncLinkCmd, syncStatusCmd, syncNowCmd, syncResetCmd)
	rootCmd.AddCommand(syncCmd)
}
