package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/flight"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/quiz"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseRocket(defaultRocketYAML)
	if err != nil {
		t.Fatalf("ParseRocket() failed: %v", err)
	}
	def := DefaultRocketConfig()

	if cfg.World != def.World || cfg.Physics != def.Physics || cfg.Input != def.Input || cfg.View != def.View {
		t.Errorf("embedded YAML differs from DefaultRocketConfig():\n%+v\n%+v", cfg, def)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("Difficulty = %+v, expected %+v", cfg.Difficulty, def.Difficulty)
	}
	if len(cfg.Quiz.Operators) != 1 || cfg.Quiz.Operators[0] != "+" {
		t.Errorf("Quiz.Operators = %v, expected [+]", cfg.Quiz.Operators)
	}
}

func TestDefaultsConvertToFlightDefaults(t *testing.T) {
	cfg := DefaultRocketConfig()

	w, err := cfg.FlightWorld()
	if err != nil {
		t.Fatalf("FlightWorld() failed: %v", err)
	}
	if w != flight.DefaultWorld() {
		t.Errorf("FlightWorld() = %+v, expected %+v", w, flight.DefaultWorld())
	}
	if p := cfg.FlightParams(); p != flight.DefaultParams() {
		t.Errorf("FlightParams() = %+v, expected %+v", p, flight.DefaultParams())
	}

	l := cfg.FlightLaunch(w, 80)
	if l.Position != core.V(300, 1600) || l.Fuel != 80 {
		t.Errorf("FlightLaunch() = %+v", l)
	}
	if math.Abs(l.Heading-math.Pi/6) > 1e-12 {
		t.Errorf("Heading = %v, expected π/6", l.Heading)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestParseRocketOverlaysDefaults(t *testing.T) {
	data := []byte(`
physics:
  crashed_reveal_ms: 500
world:
  secondary:
    law: surface_scaled
quiz:
  operators: ["-", "mul"]
`)
	cfg, err := ParseRocket(data)
	if err != nil {
		t.Fatalf("ParseRocket() failed: %v", err)
	}

	p := cfg.FlightParams()
	if p.CrashedReveal != 500*time.Millisecond {
		t.Errorf("CrashedReveal = %v, expected 500ms", p.CrashedReveal)
	}
	if p.ThrustPower != 0.5 {
		t.Errorf("ThrustPower = %v, expected the default 0.5", p.ThrustPower)
	}

	w, err := cfg.FlightWorld()
	if err != nil {
		t.Fatalf("FlightWorld() failed: %v", err)
	}
	if w.Secondary.Law != flight.LawSurfaceScaled || w.Secondary.Radius != 150 {
		t.Errorf("Secondary = %+v", w.Secondary)
	}

	s, err := cfg.QuizSettings()
	if err != nil {
		t.Fatalf("QuizSettings() failed: %v", err)
	}
	if len(s.Operators) != 2 || s.Operators[0] != quiz.Subtract || s.Operators[1] != quiz.Multiply {
		t.Errorf("Operators = %v", s.Operators)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RocketConfig)
		target error
	}{
		{"unknown law", func(c *RocketConfig) { c.World.Primary.Law = "newtonian" }, flight.ErrInvalidConfig},
		{"zero radius", func(c *RocketConfig) { c.World.Secondary.Radius = 0 }, flight.ErrInvalidConfig},
		{"zero tick rate", func(c *RocketConfig) { c.Physics.TickRate = 0 }, flight.ErrInvalidConfig},
		{"no operators", func(c *RocketConfig) { c.Quiz.Operators = nil }, quiz.ErrInvalidSettings},
		{"bad operator", func(c *RocketConfig) { c.Quiz.Operators = []string{"/"} }, quiz.ErrInvalidSettings},
		{"no problems", func(c *RocketConfig) { c.Quiz.Count = 0 }, quiz.ErrInvalidSettings},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRocketConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.target) {
				t.Errorf("Validate() = %v, expected %v", err, tc.target)
			}
		})
	}

	cfg := DefaultRocketConfig()
	cfg.Input.HoldMs = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted a negative hold_ms")
	}
}

func TestLoadRocketCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rocket.yaml")
	if err := os.WriteFile(path, []byte("quiz:\n  count: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRocket(path)
	if err != nil {
		t.Fatalf("LoadRocket() failed: %v", err)
	}
	if cfg.Quiz.Count != 9 || cfg.Quiz.NumberRange != 10 {
		t.Errorf("Quiz = %+v", cfg.Quiz)
	}

	if _, err := LoadRocket(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRocket() with a missing file returned nil error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics:\n  tick_rate: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRocket(bad); !errors.Is(err, flight.ErrInvalidConfig) {
		t.Errorf("LoadRocket() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"easy", "normal", "hard", "fixed"} {
		if _, err := ParsePreset(name); err != nil {
			t.Errorf("ParsePreset(%q) = %v", name, err)
		}
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(\"insane\") returned nil error")
	}
}

func TestApplyRocketPreset(t *testing.T) {
	cfg := DefaultRocketConfig()
	ApplyRocketPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v", cfg.Difficulty)
	}
	ApplyRocketPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset left progression enabled")
	}
}
