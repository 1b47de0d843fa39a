package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/games/rocket"
	"github.com/vovakirdan/kids-arcade/internal/registry"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the best scores for a game, with who set them.
Without a game the Rocket Scientist table is shown.

Examples:
  arcade scores
  arcade scores rocket --limit 20
  arcade scores rocket --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := rocket.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	title, ok := registry.Title(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		n, err := store.ClearScores(gameID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d %s scores.\n", n, title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "\nPlay 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	nameW := len("Player")
	for _, e := range scores {
		nameW = max(nameW, len(e.Player))
	}

	fmt.Fprintf(out, "  %-4s  %-*s  %6s  %s\n", "Rank", nameW, "Player", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-*s  %6s  %s\n", "----", nameW, "------", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-*s  %6d  %s\n", i+1, nameW, e.Player, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nBest %d, average %.0f over %d games by %d players\n",
		stats.HighScore, stats.AvgScore, stats.GamesCount, stats.Players)
	return nil
}
