package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/storage"
)

var (
	flagFlightsLimit int
	flagFlightsClear bool
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Show the rocket flight log",
	Long: `Display recent Rocket Scientist flights and overall statistics.

Examples:
  arcade flights
  arcade flights --limit 50
  arcade flights --clear`,
	Args: cobra.NoArgs,
	Run:  runFlights,
}

func init() {
	flightsCmd.Flags().IntVar(&flagFlightsLimit, "limit", 10, "Number of recent flights to show")
	flightsCmd.Flags().BoolVar(&flagFlightsClear, "clear", false, "Delete the flight log")
}

func runFlights(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagFlightsClear {
		if err := store.ClearFlights(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing flights: %v\n", err)
			return
		}
		fmt.Println("Flight log cleared.")
		return
	}

	flights, err := store.RecentFlights(flagFlightsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving flights: %v\n", err)
		return
	}

	fmt.Println("Flight Log - Rocket Scientist")
	fmt.Println()

	if len(flights) == 0 {
		fmt.Println("No flights recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play rocket' to launch your first rocket!")
		return
	}

	// Print header
	fmt.Printf("  %-8s  %-6s  %-5s  %-11s  %-5s  %-9s  %s\n", "Result", "Orbits", "Score", "Fuel", "Quiz", "Top speed", "Date")
	fmt.Printf("  %-8s  %-6s  %-5s  %-11s  %-5s  %-9s  %s\n", "------", "------", "-----", "----", "----", "---------", "----")

	for _, f := range flights {
		fmt.Printf("  %-8s  %-6d  %-5d  %-11s  %-5s  %-9s  %s\n",
			f.Outcome,
			f.Orbits,
			f.Score,
			fmt.Sprintf("%.0f%%->%.0f%%", f.FuelStart, f.FuelLeft),
			fmt.Sprintf("%d/%d", f.QuizCorrect, f.QuizTotal),
			fmt.Sprintf("%.0f u/s", f.MaxSpeed),
			f.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.FlightStats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Flights: %d  Landed: %d  Crashed: %d\n", stats.Attempts, stats.Landings, stats.Crashes)
	fmt.Printf("Best: %d points, %d orbits  |  Average fuel: %.0f%%\n", stats.BestScore, stats.BestOrbits, stats.AvgFuel)
}
