package main

import (
	"fmt"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/counterflow/internal/storage"
)

var (
	flagHistoryLimit  int
	flagHistoryPlayer string
	flagHistoryClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs and aggregate statistics. With --player
the most recent runs of that player are listed instead.

Examples:
  counterflow history
  counterflow history --limit 20
  counterflow history --player 0b7c...
  counterflow history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().StringVar(&flagHistoryPlayer, "player", "", "Only show runs of this player id")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	history, err := storage.OpenHistory(flagHistory)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer history.Close()

	if flagHistoryClear {
		if err := history.ClearRuns(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	var runs []storage.Run
	if flagHistoryPlayer != "" {
		runs, err = history.PlayerRuns(flagHistoryPlayer, flagHistoryLimit)
	} else {
		runs, err = history.TopRuns(flagHistoryLimit)
	}
	if err != nil {
		fail("%v", err)
	}

	stats, err := history.Stats(flagHistoryPlayer)
	if err != nil {
		fail("%v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'counterflow play' to record the first one!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %6s  %5s  %-8s  %-4s  %8s  %s\n", "#", "Player", "Score", "Level", "Preset", "Won", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %6s  %5s  %-8s  %-4s  %8s  %s\n", "-", "------", "-----", "-----", "------", "---", "----", "----")
	for i, r := range runs {
		won := ""
		if r.Won {
			won = "yes"
		}
		name := runewidth.FillRight(runewidth.Truncate(r.PlayerName, 12, "…"), 12)
		fmt.Printf("  %-4d  %s  %6d  %5d  %-8s  %-4s  %8s  %s\n",
			i+1, name, r.Score, r.Level+1, r.Preset, won,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f  Highest level: %d  Time played: %s\n",
		stats.Runs, stats.Wins, stats.HighScore, stats.AvgScore, stats.MaxLevel+1, stats.TotalTime.Round(time.Second))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
