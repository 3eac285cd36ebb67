// ABOUTME: CLI command showing what to train today.
// ABOUTME: Resolves the schedule and prints the day's exercises with their latest weights.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/schedule"
	"github.com/harperreed/liftlog/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	todayRoutine string
	todayDay     string
)

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show today's workout",
	Long: `Show the day to train today and the latest weight of each exercise.

HOW THE DAY IS CHOSEN (first match wins):

  1. --day: that day, whatever its weekday
  2. --routine: its day for today, else its first day
  3. the first routine with a day for today's weekday
  4. the first routine's first day

EXAMPLES:

  liftlog today
  liftlog today --routine Strength
  liftlog today --date 2024-05-03      # What would Friday look like?`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		today, res, board, err := resolveToday(todayRoutine, todayDay)
		if err != nil {
			return err
		}
		renderToday(cmd.OutOrStdout(), today, res, board)
		return nil
	},
}

// resolveToday runs the schedule for the current user with an optional
// routine (name or ID) and day (ID) selection.
func resolveToday(routine, day string) (clock.Today, schedule.Result, []tracker.Entry, error) {
	u, err := currentUser()
	if err != nil {
		return clock.Today{}, schedule.Result{}, nil, err
	}

	routineID := ""
	if routine != "" {
		r, err := findRoutine(routine)
		if err != nil {
			return clock.Today{}, schedule.Result{}, nil, fmt.Errorf("routine not found: %w", err)
		}
		routineID = r.ID.String()
	}

	sel, err := app.Select(routineID, day)
	if err != nil {
		return clock.Today{}, schedule.Result{}, nil, err
	}

	today, res, err := app.Today(u.ID, sel)
	if err != nil {
		return today, res, nil, err
	}
	board, err := app.Board(res)
	if err != nil {
		return today, res, nil, err
	}
	return today, res, board, nil
}

func renderToday(out io.Writer, today clock.Today, res schedule.Result, board []tracker.Entry) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan, color.Bold)

	bold.Fprintln(out, today.String())

	switch res.Outcome {
	case schedule.NoRoutines:
		fmt.Fprintln(out, "No routines yet. Create one with 'liftlog routine add <name>'.")
		return
	case schedule.NoDays:
		fmt.Fprintf(out, "%s has no days yet. Add one with 'liftlog day add \"%s\" <weekday>'.\n",
			res.Routine.Name, res.Routine.Name)
		return
	}

	fmt.Fprintf(out, "%s · %s %s\n\n",
		cyan.Sprint(res.Routine.Name),
		res.Day.Weekday.Short(),
		faint.Sprintf("(%s)", describeSource(res.Source)))

	if len(board) == 0 {
		fmt.Fprintf(out, "  %s\n", faint.Sprint("(no exercises)"))
		return
	}
	for _, entry := range board {
		latest := "-"
		counts := ""
		if entry.HasHistory {
			latest = formatAmount(entry.Latest.Amount)
			counts = formatCounts(entry.Latest.Reps, entry.Latest.Sets)
		}
		line := fmt.Sprintf("  %s %s %s", padRight(entry.Exercise.Name, 20), padRight(latest, 7), counts)
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

func describeSource(src schedule.Source) string {
	switch src {
	case schedule.SourceDay:
		return "selected day"
	case schedule.SourceRoutine:
		return "selected routine"
	case schedule.SourceToday:
		return "scheduled today"
	case schedule.SourceFallback:
		return "nothing scheduled today, showing first day"
	default:
		return string(src)
	}
}

func init() {
	todayCmd.Flags().StringVar(&todayRoutine, "routine", "", "routine name or ID to train from")
	todayCmd.Flags().StringVar(&todayDay, "day", "", "day ID to train, whatever its weekday")
	rootCmd.AddCommand(todayCmd)
}
