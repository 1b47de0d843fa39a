// arcade is a TUI arcade platform for playing kids' learning games in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores (default: rocket)
//	arcade flights           - Show the rocket flight log
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-file <path>    - Write logs to a rotated file
//	--log-level <level>  - debug, info, warn or error
//	--player <name>      - Name scores are saved under (default: $USER)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/kids-arcade/internal/games/rocket"
	"github.com/vovakirdan/kids-arcade/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagPlayer   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Kids Arcade - Learning games in your terminal",
	Long: `Kids Arcade is a terminal-based gaming platform with small learning
games for kids.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  flights  - View the rocket flight log

Examples:
  arcade list
  arcade play rocket
  arcade menu
  arcade serve --ssh :2222
  arcade scores rocket`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name scores are saved under")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(flightsCmd)
}

// newLogger builds the logger for a command. Without --log-file the logs go
// to fallback; interactive commands pass nil because they own the terminal.
func newLogger(fallback io.Writer) (*log.Logger, io.Closer) {
	opts := logging.DefaultOptions()
	opts.File = flagLogFile
	opts.Level = flagLogLevel
	opts.Fallback = fallback

	logger, closer, err := logging.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		opts.File = ""
		opts.Level = "info"
		logger, closer, _ = logging.New(opts)
	}
	return logger, closer
}
