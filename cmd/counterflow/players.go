package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/counterflow/internal/storage"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List saved players",
	Long: `List the players in the player file in the order they were created.

Examples:
  counterflow players
  counterflow players add Ada`,
	Args: cobra.NoArgs,
	Run:  runPlayers,
}

var playersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a player",
	Args:  cobra.ExactArgs(1),
	Run:   runPlayersAdd,
}

func init() {
	playersCmd.AddCommand(playersAddCmd)
}

func runPlayers(cmd *cobra.Command, args []string) {
	logger := stderrLogger()
	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}
	store, err := openPlayers(cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	list, err := store.Players()
	var corrupt *storage.CorruptError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", corrupt)
	} else if err != nil {
		fail("reading players: %v", err)
	}

	if len(list) == 0 {
		fmt.Println("No saved players.")
		fmt.Println()
		fmt.Println("Run 'counterflow play' and pick NEW GAME to create one.")
		return
	}

	nameCol := 8
	for _, p := range list {
		nameCol = max(nameCol, runewidth.StringWidth(p.Username))
	}

	fmt.Printf("  %-36s  %s  %s\n", "ID", runewidth.FillRight("Name", nameCol), "Best")
	fmt.Printf("  %-36s  %s  %s\n", "--", runewidth.FillRight("----", nameCol), "----")
	for _, p := range list {
		fmt.Printf("  %-36s  %s  %d\n", p.UID, runewidth.FillRight(p.Username, nameCol), p.Score)
	}
	fmt.Println()
	fmt.Printf("%d players in %s\n", len(list), store.Path())
}

func runPlayersAdd(cmd *cobra.Command, args []string) {
	logger := stderrLogger()
	cfg, err := loadConfig(logger)
	if err != nil {
		fail("%v", err)
	}
	store, err := openPlayers(cfg, logger)
	if err != nil {
		fail("%v", err)
	}

	p, err := store.CreatePlayer(args[0])
	if errors.Is(err, storage.ErrInvalidName) {
		fail("%v (names are 1-%d printable characters)", err, cfg.NameMax)
	}
	if err != nil {
		fail("creating player: %v", err)
	}
	fmt.Printf("Created %s (%s)\n", p.Username, p.UID)
}
