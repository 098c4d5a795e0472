package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/eastertap/internal/core"
	"github.com/vovakirdan/eastertap/internal/platform/tui"
	"github.com/vovakirdan/eastertap/internal/storage"
)

var (
	flagFresh  bool
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

The first tap starts a 10 second countdown. Each tap scores a point and
moves the button. When the time is up the final score is shown and a new
round can start after the wait.

Quitting in the middle of a round keeps it: the next 'eastertap play'
continues with the same score and time left. Use --fresh to discard it.

Controls:
  Space/Enter/Click - Tap
  Ctrl+Z            - Suspend (fg resumes)
  Ctrl+S            - Save a screenshot
  ?                 - Show all keys
  Q/Ctrl+C          - Quit

Examples:
  eastertap play
  eastertap play --fresh
  eastertap play --config ./my-eastertap.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagFresh, "fresh", false, "Ignore any unfinished session")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for saved sessions (default: $EASTERTAP_PLAYER or $USER)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, rules, err := loadRules()
	if err != nil {
		return err
	}

	logFile, err := openLogFile(settings.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Rules:            rules,
		NoticeDuration:   gameCfg.NoticeDuration(),
		FeedbackDuration: gameCfg.FeedbackDuration(),
		Player:           playerName(),
		Logger:           logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Store = store
		if flagFresh {
			if delErr := store.DeleteSnapshot(opts.Player); delErr != nil {
				logger.Warn("could not clear snapshot", "error", delErr)
			}
		} else {
			opts.Resume = tui.TakeSnapshot(store, opts.Player, logger)
		}
	}

	// A closed terminal or a kill stops the program; the round is still kept.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGTERM)
	defer stop()

	err = tui.Run(opts, tea.WithContext(ctx))
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		logger.Info("stopped by signal, round kept")
		return nil
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if settings.Player != "" {
		return settings.Player
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
