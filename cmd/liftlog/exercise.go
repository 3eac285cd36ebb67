// ABOUTME: CLI commands for managing exercises.
// ABOUTME: Exercises are global and keep their history when unlinked from days.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := app.AddExercise(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added exercise %s\n", e.Name)
		fmt.Fprintf(out, "  %s\n", faint.Sprint(shortID(e.ID.String())))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises with their latest weight",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := app.Repo().ListExercises()
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}
		for _, e := range exercises {
			latest := "-"
			w, ok, err := app.Ledger().Latest(e.ID)
			if err != nil {
				return err
			}
			if ok {
				latest = formatAmount(w.Amount)
			}
			fmt.Fprintf(out, "%s %s %s\n", faint.Sprint(shortID(e.ID.String())), padRight(e.Name, 20), latest)
		}
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <exercise>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise and its weight history",
	Long: `Delete an exercise by name, ID or ID prefix.

CAUTION:

  The exercise's whole weight history and its links to days are deleted.
  There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := app.FindExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %w", err)
		}
		if err := app.Repo().DeleteExercise(e.ID.String()); err != nil {
			return fmt.Errorf("failed to delete exercise: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted exercise %s\n", e.Name)
		return nil
	},
}

func init() {
	exerciseCmd.AddCommand(exerciseAddCmd, exerciseListCmd, exerciseDeleteCmd)
	rootCmd.AddCommand(exerciseCmd)
}
