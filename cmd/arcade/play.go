package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/platform/tui"
	"github.com/vovakirdan/kids-arcade/internal/registry"
	"github.com/vovakirdan/kids-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Rocket Scientist:
  First answer the math problems: every right answer adds fuel.
  Then fly from Earth, circle the Moon as often as you can and land
  gently on it. Landing too fast, or hitting Earth too fast, crashes.

Controls:
  0-9, Backspace    - Type the answer
  Enter             - Check the answer
  Left/Right, A/D   - Rotate
  Up/W/Space        - Fire the engine
  P                 - Pause
  R                 - Restart (after landing or crashing)
  B/Esc             - Leave the game
  Q/Ctrl+C          - Quit

Difficulty options (how fast the quiz grows harder):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play rocket
  arcade play rocket --difficulty easy
  arcade play rocket --config ./my-rocket.yaml
  arcade play rocket --telemetry :8080 --log-file ~/.arcade/arcade.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, logCloser := newLogger(nil)
	store := openStoreOrWarn(logger)
	stopRocket := setupRocket(store, logger)

	_, err := runGame(gameID, store, terminalConfig(), logger)

	stopRocket()
	closeStore(store)
	logCloser.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// runGame plays one game in its own Bubble Tea program and reports whether
// the player asked to go back to the menu.
func runGame(gameID string, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return true, fmt.Errorf("creating game: %w", err)
	}
	return tui.Run(game, store, cfg, tui.WithLogger(logger), tui.WithPlayer(flagPlayer))
}
