// eastertap is a tap-reaction game for the terminal.
//
// Usage:
//
//	eastertap play            - Play (resumes an unfinished session)
//	eastertap scores          - Show high scores
//	eastertap serve           - Start SSH server for remote play
//	eastertap config          - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible color and position draws
//	--db <path>         - Set database path (default: ~/.eastertap/eastertap.db)
//	--config <path>     - Use a custom game config YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/eastertap/internal/config"
	"github.com/vovakirdan/eastertap/internal/game"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eastertap",
	Short: "Easter Tap - tap the button before the time runs out",
	Long: `Easter Tap is a tap-reaction game for the terminal. Every tap scores a
point and moves the button somewhere else in a new color. When the countdown
runs out the final score is shown and a new round starts after a short wait.

Available commands:
  play     - Play in this terminal
  scores   - View high scores
  serve    - Start SSH server for remote play
  config   - Print the effective game configuration

Examples:
  eastertap play
  eastertap play --fresh
  eastertap scores
  eastertap serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	var err error
	settings, err = config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		settings = config.Settings{
			DBPath:   "~/.eastertap/eastertap.db",
			LogLevel: "info",
			LogFile:  "~/.eastertap/eastertap.log",
			SSHAddr:  ":23235",
		}
	}

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", settings.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", settings.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          game.GameID,
		Level:           level,
	}), nil
}

// openLogFile opens the play-mode log file for appending.
func openLogFile(path string) (*os.File, error) {
	path = config.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// loadRules loads the game configuration and resolves it.
func loadRules() (config.GameConfig, game.Rules, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, game.Rules{}, err
	}
	rules, err := game.RulesFromConfig(cfg)
	if err != nil {
		return cfg, game.Rules{}, err
	}
	return cfg, rules, nil
}
