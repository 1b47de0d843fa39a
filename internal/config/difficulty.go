package config

import (
	"math"

	"github.com/vovakirdan/kids-arcade/internal/games/rocket/quiz"
)

// DifficultyManager calculates quiz parameters from the player's progress
// over a play session.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on the
// session score and number of landings.
func (d *DifficultyManager) Level(score int, landings int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "landings":
		progress = float64(landings) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// QuizSettings scales the base quiz by the current level: larger numbers
// and more problems as the player improves.
func (d *DifficultyManager) QuizSettings(base quiz.Settings, score int, landings int) quiz.Settings {
	level := d.Level(score, landings)
	s := base
	s.Operators = append([]quiz.Operator(nil), base.Operators...)
	s.NumberRange = base.NumberRange + int(level*float64(d.cfg.Scaling.RangeGrowth))
	s.Count = base.Count + int(level*float64(d.cfg.Scaling.ExtraProblems))
	return s
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
