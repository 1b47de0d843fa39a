package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/registry"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade with their best scores.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Stats are optional: the list works without a database.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.AllGameStats()
		store.Close()
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, "ID", maxTitleLen, "Title", "Best", "Plays")
	fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-----")

	// Print games
	for _, g := range games {
		best, plays := "-", "0"
		if s, ok := stats[g.ID]; ok {
			best = fmt.Sprintf("%d", s.HighScore)
			plays = fmt.Sprintf("%d", s.GamesCount)
		}
		fmt.Printf("  %-*s  %-*s  %6s  %5s\n", maxIDLen, g.ID, maxTitleLen, g.Title, best, plays)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
