package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

The menu lists every game with your best score. Leaving a game with
B or Esc brings you back here; Q quits the arcade.

Controls:
  Up/Down/j/k  - Choose a game
  Enter/Space  - Play it
  Tab          - Scores and flight log
  Q            - Quit

Examples:
  arcade menu
  arcade menu --player ada --difficulty easy
  arcade menu --fps 30 --db ./scores.db`,
	Run: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logCloser := newLogger(nil)
	defer logCloser.Close()

	store := openStoreOrWarn(logger)
	defer closeStore(store)

	stopRocket := setupRocket(store, logger)
	defer stopRocket()

	cfg := terminalConfig()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = choice.Config

		var again bool
		switch {
		case choice.Quit:
			return
		case choice.WantsScoreboard:
			again, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		default:
			cfg.Seed = time.Now().UnixNano()
			again, err = runGame(choice.GameID, store, cfg, logger)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			logger.Error("menu screen failed", "error", err)
		}
		if !again {
			return
		}
	}
}
