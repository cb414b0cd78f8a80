package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/counterflow/internal/core"
	"github.com/vovakirdan/counterflow/internal/games/counterflow"
	"github.com/vovakirdan/counterflow/internal/platform/tui"
	"github.com/vovakirdan/counterflow/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Counter Flow",
	Long: `Start the game in the terminal.

Controls:
  Left/Right, A/D  - Steer
  P                - Pause (S or P resumes)
  Up/Down, Enter   - Navigate menus (the mouse works too)
  1-9              - Pick a difficulty
  R                - Play again (after game over)
  Q                - Quit (after game over)
  Esc              - Back to the main menu
  Ctrl+S           - Save a screenshot
  Ctrl+C           - Exit

Difficulties:
  EASY, MEDIUM, HARD  - Endless; every level adds speed and, every few
                        levels, more cars
  CAMPAIGN            - Four scripted stages with a pursuit car; clear the
                        last one to win

Examples:
  counterflow play
  counterflow play --fps 30
  counterflow play --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logFile, err := openLogFile()
	if err != nil {
		fail("%v", err)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		fail("%v", err)
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	players, err := openPlayers(cfg, logger)
	if err != nil {
		fail("%v", err)
	}
	if _, err := players.LoadAll(); err != nil {
		var corrupt *storage.CorruptError
		if errors.As(err, &corrupt) {
			// Keep going: the store reads as empty and is repaired on the next write.
			logger.Warn("player file corrupt", "err", err)
		} else {
			logger.Warn("player file unreadable", "err", err)
		}
	}

	opts := counterflow.Options{Store: players, Logger: logger}

	// Continue without history - the game still works
	history, err := storage.OpenHistory(flagHistory)
	if err != nil {
		logger.Warn("run history unavailable", "path", flagHistory, "err", err)
	} else {
		defer history.Close()
		opts.History = history
	}

	game := counterflow.New(cfg, opts)
	logger.Info("starting", "players", players.Path(), "fps", rc.TickRate, "seed", rc.Seed)

	if err := tui.Run(game, cfg, rc, logger); err != nil {
		logger.Error("tui exited", "err", err)
		fail("running game: %v", err)
	}
}
