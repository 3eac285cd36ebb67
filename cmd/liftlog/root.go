// ABOUTME: Root Cobra command for liftlog CLI.
// ABOUTME: Loads config, sets up logging, and opens the tracker via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"

	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/config"
	"github.com/harperreed/liftlog/internal/logging"
	"github.com/harperreed/liftlog/internal/tracker"
	"github.com/spf13/cobra"
)

// noStore marks commands that open their own storage, or none.
const noStore = "no-store"

var (
	cfg       *config.Config
	app       *tracker.Tracker
	logCloser io.Closer

	flagBackend  string
	flagDataDir  string
	flagUser     string
	flagDate     string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "liftlog",
	Short: "Workout routine and weight progression tracker",
	Long: `Liftlog tracks workout routines and the weights you lift.

HOW IT FITS TOGETHER:

  Routine    a named plan owned by a user, e.g. "Push Pull Legs"
  Day        a weekday inside a routine (at most one per weekday)
  Exercise   a global movement, e.g. "Squat", shared by any day
  Weight     one entry in an exercise's history: amount, optional reps/sets

QUICK START:

  $ liftlog routine add Strength
  $ liftlog day add Strength monday
  $ liftlog day link <day-id> Squat --create
  $ liftlog today                       # What to train today
  $ liftlog log Squat 100 --reps 5      # Record a weight
  $ liftlog train                       # Adjust and save interactively

SCHEDULE:

  'today' picks the day for today's weekday from your routines. Without one
  it falls back to the first routine's first day. Use --routine or --day
  to choose explicitly, and --date to pretend it is another day.

BACKENDS:

  sqlite (default)  ~/.local/share/liftlog/liftlog.db
  badger            embedded key/value store in <data-dir>/kv
  charm             Charm Cloud key/value store, synced on every write

  Configure in ~/.config/liftlog/config.json or with LIFTLOG_* variables.

MCP INTEGRATION:

  Run 'liftlog mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "liftlog": { "command": "liftlog", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		// A failed RunE skips PostRun, so an earlier tracker may still be open.
		_ = closeApp()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cfg)

		logCloser = logging.Setup(logging.Params{
			LogFileName:   cfg.LogFile,
			LogToStderr:   cfg.LogFile == "",
			LogLevel:      cfg.GetLogLevel(),
			LogFormatJSON: false,
		})

		if cmd.Annotations[noStore] != "" {
			return nil
		}

		clk, err := newClock()
		if err != nil {
			return err
		}

		repo, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		app = tracker.New(repo, clk)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func closeApp() error {
	var err error
	if app != nil {
		err = app.Close()
		app = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return err
}

func applyFlags(c *config.Config) {
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagUser != "" {
		c.Username = flagUser
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
}

// newClock returns a fixed clock at noon of --date, or the system clock.
func newClock() (clock.Clock, error) {
	if flagDate == "" {
		return clock.System{}, nil
	}
	t, err := clock.ParseDate(flagDate, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid --date (use YYYY-MM-DD): %w", err)
	}
	return clock.Fixed{T: t}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, badger or charm")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.local/share/liftlog)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "username (default from config or $USER)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "act as if today were this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}
