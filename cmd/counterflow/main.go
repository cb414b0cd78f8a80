// counterflow is a lane-dodging arcade game for the terminal.
//
// Usage:
//
//	counterflow play               - Play in the terminal
//	counterflow leaderboard        - Show the best players
//	counterflow players            - List or add saved players
//	counterflow history            - Show recorded runs and stats
//	counterflow config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Simulation rate while playing (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--players <path>    - Player file (default: $XDG_DATA_HOME/counterflow/players.json)
//	--history <path>    - Run history database (default: $XDG_DATA_HOME/counterflow/history.db)
//	--config <path>     - Custom config YAML
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Log destination while playing
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/counterflow/internal/config"
	"github.com/vovakirdan/counterflow/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagPlayers  string
	flagHistory  string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "counterflow",
	Short: "Counter Flow - dodge the oncoming traffic",
	Long: `Counter Flow is a terminal arcade game. Steer your car along a two-lane
road, dodge the traffic coming the other way and climb the leaderboard.

Available commands:
  play         - Start the game
  leaderboard  - Show the best players
  players      - List or add saved players
  history      - Show recorded runs and stats
  config       - Print the effective configuration

Examples:
  counterflow play
  counterflow play --fps 30 --seed 42
  counterflow leaderboard --limit 5
  counterflow history --player <uid>`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate while playing (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagPlayers, "players", defaultDataPath("players.json"), "Path to the player file")
	rootCmd.PersistentFlags().StringVar(&flagHistory, "history", defaultDataPath("history.db"), "Path to the run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file while playing (default: $XDG_STATE_HOME/counterflow/counterflow.log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultDataPath(name string) string {
	return filepath.Join(xdg.DataHome, "counterflow", name)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "counterflow",
		Level:           level,
	})
	return logger, nil
}

// openLogFile opens the log destination used while the TUI owns the
// terminal.
func openLogFile() (*os.File, error) {
	path := flagLogFile
	if path == "" {
		var err error
		path, err = xdg.StateFile(filepath.Join("counterflow", "counterflow.log"))
		if err != nil {
			return nil, fmt.Errorf("cannot locate log file: %w", err)
		}
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// loadConfig loads and validates the effective configuration.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "source", source)
	return cfg, nil
}

// openPlayers opens the player file named by --players.
func openPlayers(cfg config.Config, logger *log.Logger) (*storage.PlayerStore, error) {
	store, err := storage.OpenPlayers(flagPlayers, cfg.NameMax, logger)
	if err != nil {
		return nil, fmt.Errorf("cannot open player file: %w", err)
	}
	return store, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// stderrLogger returns a logger for the non-interactive commands.
func stderrLogger() *log.Logger {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	return logger
}
