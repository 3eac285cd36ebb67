// ABOUTME: CLI commands for routines and their training days.
// ABOUTME: Covers routine add/list/rename/delete and day add/delete/link/unlink.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/schedule"
	"github.com/spf13/cobra"
)

var dayLinkCreate bool

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage routines",
}

var routineAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a routine for the current user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}
		r, err := app.CreateRoutine(u.ID, args[0])
		if err != nil {
			return fmt.Errorf("failed to create routine: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Created routine %s\n", r.Name)
		fmt.Fprintf(out, "  %s\n", faint.Sprint(shortID(r.ID.String())))
		return nil
	},
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List routines with their days and exercises",
	Long: `List the current user's routines.

OUTPUT FORMAT:

  ID  ROUTINE
      ID  WEEKDAY  EXERCISES

  IDs are 8-character prefixes usable wherever an ID is expected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}
		routines, err := app.Routines(u.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(routines) == 0 {
			fmt.Fprintln(out, "No routines found.")
			return nil
		}

		bold := color.New(color.Bold)
		for _, r := range routines {
			fmt.Fprintf(out, "%s %s\n", faint.Sprint(shortID(r.ID.String())), bold.Sprint(r.Name))
			if len(r.Days) == 0 {
				fmt.Fprintf(out, "  %s\n", faint.Sprint("(no days)"))
			}
			for _, d := range schedule.SortedDays(r) {
				names := make([]string, 0, len(d.Exercises))
				for _, e := range d.Exercises {
					names = append(names, e.Name)
				}
				fmt.Fprintf(out, "  %s %s %v\n",
					faint.Sprint(shortID(d.ID.String())),
					padRight(d.Weekday.Short(), 4),
					names)
			}
		}
		return nil
	},
}

var routineRenameCmd = &cobra.Command{
	Use:   "rename <routine> <new-name>",
	Short: "Rename a routine",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := findRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %w", err)
		}
		renamed, err := app.RenameRoutine(r.ID.String(), args[1])
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Renamed %s to %s\n", r.Name, renamed.Name)
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <routine>",
	Aliases: []string{"rm"},
	Short:   "Delete a routine with its days",
	Long: `Delete a routine by name, ID or ID prefix.

Its days and their exercise links go with it. Exercises and their weight
history are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := findRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %w", err)
		}
		if err := app.DeleteRoutine(r.ID.String()); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted routine %s\n", r.Name)
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"d"},
	Short:   "Manage the training days of a routine",
}

var dayAddCmd = &cobra.Command{
	Use:   "add <routine> <weekday>",
	Short: "Add a weekday to a routine",
	Long: `Add a training day to a routine. A routine has at most one day per weekday.

Weekdays may be full or three-letter names in any case: monday, Mon, MONDAY.

EXAMPLES:

  liftlog day add Strength monday
  liftlog day add 3f2a9c1e fri`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		weekday, err := models.ParseWeekday(args[1])
		if err != nil {
			return err
		}
		r, err := findRoutine(args[0])
		if err != nil {
			return fmt.Errorf("routine not found: %w", err)
		}
		d, err := app.AddDay(r.ID.String(), weekday)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added %s to %s\n", weekday, r.Name)
		fmt.Fprintf(out, "  %s\n", faint.Sprint(shortID(d.ID.String())))
		return nil
	},
}

var dayDeleteCmd = &cobra.Command{
	Use:     "delete <day-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a day and its exercise links",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := app.Repo().GetDay(args[0])
		if err != nil {
			return fmt.Errorf("day not found: %w", err)
		}
		if err := app.RemoveDay(d.ID.String()); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", d.Weekday)
		return nil
	},
}

var dayLinkCmd = &cobra.Command{
	Use:   "link <day-id> <exercise>",
	Short: "Put an exercise on a day",
	Long: `Put an exercise on a day. The exercise is matched by name or ID.

Use --create to add the exercise first when it does not exist yet.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, e, err := app.LinkExercise(args[0], args[1], dayLinkCreate)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Linked %s to %s\n", e.Name, d.Weekday)
		return nil
	},
}

var dayUnlinkCmd = &cobra.Command{
	Use:   "unlink <day-id> <exercise>",
	Short: "Take an exercise off a day",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.UnlinkExercise(args[0], args[1]); err != nil {
			return err
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Unlinked %s\n", args[1])
		return nil
	},
}

func init() {
	dayLinkCmd.Flags().BoolVar(&dayLinkCreate, "create", false, "create the exercise if it does not exist")

	routineCmd.AddCommand(routineAddCmd, routineListCmd, routineRenameCmd, routineDeleteCmd)
	dayCmd.AddCommand(dayAddCmd, dayDeleteCmd, dayLinkCmd, dayUnlinkCmd)
	rootCmd.AddCommand(routineCmd, dayCmd)
}
