// ABOUTME: CLI commands for recording and browsing the weight ledger.
// ABOUTME: log appends one record; history lists, edits and deletes records.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	logReps      int
	logSets      int
	historyLimit int
	editAmount   float64
	editReps     int
	editSets     int
)

var logCmd = &cobra.Command{
	Use:   "log <exercise> <amount>",
	Short: "Record a weight for an exercise",
	Long: `Record a weight for an exercise, matched by name or ID.

Reps and sets are optional and stored only when given.

EXAMPLES:

  liftlog log Squat 100
  liftlog log "Bench Press" 62.5 --reps 8 --sets 3
  liftlog log Deadlift 140 --date 2024-05-01   # Backdate to noon that day`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %s", args[1])
		}
		if amount < 0 {
			return fmt.Errorf("invalid amount: %s (must not be negative)", args[1])
		}

		w, err := app.Log(args[0], amount, optionalFlag(cmd, "reps", logReps), optionalFlag(cmd, "sets", logSets))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", args[0])
		fmt.Fprintf(out, "  %s %s %s\n", faint.Sprint(shortID(w.ID.String())), formatAmount(w.Amount), formatCounts(w.Reps, w.Sets))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:     "history <exercise>",
	Aliases: []string{"h"},
	Short:   "Show an exercise's weight history, newest first",
	Long: `Show the weight history of an exercise, newest first.

OUTPUT FORMAT:

  ID  TIMESTAMP  AMOUNT  SETS × REPS`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, weights, err := app.History(args[0], historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(weights) == 0 {
			fmt.Fprintf(out, "No weights recorded for %s.\n", e.Name)
			return nil
		}
		for _, w := range weights {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(shortID(w.ID.String())),
				faint.Sprint(w.CreatedAt.Local().Format("2006-01-02 15:04")),
				padRight(formatAmount(w.Amount), 7),
				formatCounts(w.Reps, w.Sets))
		}
		return nil
	},
}

var historyEditCmd = &cobra.Command{
	Use:   "edit <weight-id>",
	Short: "Correct a recorded weight",
	Long: `Correct the amount, reps or sets of a recorded weight.

Only the flags you pass change. The record keeps its place in history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := app.Repo().GetWeight(args[0])
		if err != nil {
			return fmt.Errorf("weight not found: %w", err)
		}
		if cmd.Flags().Changed("amount") {
			w.Amount = editAmount
		}
		if cmd.Flags().Changed("reps") {
			w.Reps = optionalFlag(cmd, "reps", editReps)
		}
		if cmd.Flags().Changed("sets") {
			w.Sets = optionalFlag(cmd, "sets", editSets)
		}

		if err := app.Repo().UpdateWeight(w); err != nil {
			return fmt.Errorf("failed to update weight: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s: %s %s\n",
			shortID(w.ID.String()), formatAmount(w.Amount), formatCounts(w.Reps, w.Sets))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <exercise> <weight-id>",
	Aliases: []string{"rm"},
	Short:   "Delete one record from an exercise's history",
	Long: `Delete one weight record. The weight may be a full ID or, while it
still exists, an ID prefix. Deleting an already deleted record by full ID
succeeds without changes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := app.FindExercise(args[0])
		if err != nil {
			return fmt.Errorf("exercise not found: %w", err)
		}

		weightID, err := uuid.Parse(args[1])
		if err != nil {
			w, err := app.Repo().GetWeight(args[1])
			if err != nil {
				return fmt.Errorf("weight not found: %w", err)
			}
			weightID = w.ID
		}

		if err := app.Ledger().Delete(e.ID, weightID); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s from %s\n", shortID(weightID.String()), e.Name)
		return nil
	},
}

// optionalFlag returns &v when the named flag was set and positive.
func optionalFlag(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) || v <= 0 {
		return nil
	}
	return &v
}

func init() {
	logCmd.Flags().IntVarP(&logReps, "reps", "r", 0, "repetitions per set")
	logCmd.Flags().IntVarP(&logSets, "sets", "s", 0, "number of sets")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	historyEditCmd.Flags().Float64Var(&editAmount, "amount", 0, "new amount")
	historyEditCmd.Flags().IntVar(&editReps, "reps", 0, "new reps (0 clears)")
	historyEditCmd.Flags().IntVar(&editSets, "sets", 0, "new sets (0 clears)")

	historyCmd.AddCommand(historyEditCmd, historyDeleteCmd)
	rootCmd.AddCommand(logCmd, historyCmd)
}
