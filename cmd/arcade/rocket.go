package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kids-arcade/internal/games/rocket"
	"github.com/vovakirdan/kids-arcade/internal/storage"
	"github.com/vovakirdan/kids-arcade/internal/telemetry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTelemetry  string
)

// addGameFlags registers the flags shared by every command that runs games.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Stream flight telemetry over WebSocket on this address (e.g. :8080)")
}

// setupRocket configures the rocket game before instances are created.
// The returned function stops the telemetry server, if one was started.
func setupRocket(store *storage.Store, logger *log.Logger) func() {
	rocket.SetConfigPath(flagConfig)
	rocket.SetDifficultyPreset(flagDifficulty)
	rocket.SetLogger(logger.WithPrefix("rocket"))
	if store != nil {
		rocket.SetRecorder(store)
	}

	if flagTelemetry == "" {
		return func() {}
	}

	hub := telemetry.NewHub(logger.WithPrefix("telemetry"))
	rocket.SetPublisher(hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := hub.ListenAndServe(ctx, flagTelemetry); err != nil {
			logger.Error("telemetry server stopped", "error", err)
		}
	}()
	logger.Info("telemetry enabled", "address", flagTelemetry)

	return func() {
		cancel()
		<-done
	}
}
