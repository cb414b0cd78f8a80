package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/counterflow/internal/platform/tui"
	"github.com/vovakirdan/counterflow/internal/storage"
)

var flagBoardLimit int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best players",
	Long: `Display saved players by best score. Ties go to whoever was created
first.

Examples:
  counterflow leaderboard
  counterflow leaderboard --limit 3`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&flagBoardLimit, "limit", 10, "Number of players to show (0 = all)")
}

func runLeaderboard(cmd *cobra.Command, args []string) {
	logger := stderrLogger()
	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}

	store, err := openPlayers(cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	top, err := store.Leaderboard(flagBoardLimit)
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", corrupt)
	} else if err != nil {
		fail("reading players: %v", err)
	}

	width := 80
	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
	}
	fmt.Println(tui.RenderLeaderboard(top, width))
}
