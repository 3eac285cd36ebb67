// ABOUTME: CLI command launching the interactive train screen.
// ABOUTME: Adjust each exercise with +/- and save one record per commit.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/liftlog/internal/tui"
	"github.com/spf13/cobra"
)

var (
	trainRoutine string
	trainDay     string
	trainDefault float64
	trainTheme   string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train today's workout interactively",
	Long: `Open today's workout in an interactive screen.

Each exercise starts at its latest weight, or --default when it has none.
Adjustments stay on screen until you save them; only saving writes a record.

KEYS:

  ↑/↓ or k/j   move between exercises
  + or -       adjust by 2.5
  r / R        add / remove a rep
  s / S        add / remove a set
  enter        save the shown value
  esc          discard the unsaved change
  q            quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trainTheme != "" && !tui.SetTheme(trainTheme) {
			return fmt.Errorf("unknown theme: %s (use default or dracula)", trainTheme)
		}

		today, res, _, err := resolveToday(trainRoutine, trainDay)
		if err != nil {
			return err
		}

		model, err := tui.NewTrainModel(app, today, res, trainDefault)
		if err != nil {
			return err
		}

		p := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("train screen failed: %w", err)
		}
		return nil
	},
}

func init() {
	trainCmd.Flags().StringVar(&trainRoutine, "routine", "", "routine name or ID to train from")
	trainCmd.Flags().StringVar(&trainDay, "day", "", "day ID to train, whatever its weekday")
	trainCmd.Flags().Float64Var(&trainDefault, "default", 20, "starting weight for exercises with no history")
	trainCmd.Flags().StringVar(&trainTheme, "theme", "", "color theme: default or dracula")
	rootCmd.AddCommand(trainCmd)
}
