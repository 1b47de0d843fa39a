// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// RocketConfig contains all configuration for the Rocket Scientist game.
type RocketConfig struct {
	World      RocketWorld      `yaml:"world"`
	Physics    RocketPhysics    `yaml:"physics"`
	Launch     RocketLaunch     `yaml:"launch"`
	Quiz       RocketQuiz       `yaml:"quiz"`
	Input      RocketInput      `yaml:"input"`
	View       RocketView       `yaml:"view"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RocketWorld defines the arena and its two bodies, in world units.
type RocketWorld struct {
	Width     float64    `yaml:"width"`
	Height    float64    `yaml:"height"`
	Primary   BodyConfig `yaml:"primary"`
	Secondary BodyConfig `yaml:"secondary"`
}

// BodyConfig defines one gravity source.
type BodyConfig struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
	Law      string  `yaml:"law"` // "surface_scaled" or "capped_inverse_square"
}

// RocketPhysics defines the integrator tuning. Speeds are per tick unless
// the name says otherwise.
type RocketPhysics struct {
	RotationSpeed     float64 `yaml:"rotation_speed"`
	ThrustPower       float64 `yaml:"thrust_power"`
	FuelConsumption   float64 `yaml:"fuel_consumption"`
	MinDistanceMargin float64 `yaml:"min_distance_margin"`
	GravityEpsilon    float64 `yaml:"gravity_epsilon"`
	GravityCapRatio   float64 `yaml:"gravity_cap_ratio"`
	CollisionMargin   float64 `yaml:"collision_margin"`
	CrashSpeed        float64 `yaml:"crash_speed"` // units per second
	TickRate          int     `yaml:"tick_rate"`
	WallRestitution   float64 `yaml:"wall_restitution"`
	LandedRevealMs    int     `yaml:"landed_reveal_ms"`
	CrashedRevealMs   int     `yaml:"crashed_reveal_ms"`
}

// RocketLaunch defines where the rocket starts relative to the primary body.
type RocketLaunch struct {
	HeadingDegrees float64 `yaml:"heading_degrees"` // 0 = up, clockwise
}

// RocketQuiz defines the fuel quiz.
type RocketQuiz struct {
	Count       int      `yaml:"count"`
	NumberRange int      `yaml:"number_range"`
	Operators   []string `yaml:"operators"`
	FeedbackMs  int      `yaml:"feedback_ms"` // pause after each answer
}

// RocketInput defines how terminal key presses become held controls.
type RocketInput struct {
	HoldMs int `yaml:"hold_ms"` // a key counts as held this long after its last press
}

// RocketView defines presentation-only parameters.
type RocketView struct {
	PredictionTicks int `yaml:"prediction_ticks"` // 0 disables the trajectory preview
	Stars           int `yaml:"stars"`
}

// DifficultyConfig defines how the quiz grows harder as the player scores.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a play session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "landings", or "none"
	MaxAt int    `yaml:"max_at"` // Score/landings at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	RangeGrowth   int `yaml:"range_growth"`   // Added to the number range at max difficulty
	ExtraProblems int `yaml:"extra_problems"` // Added to the problem count at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
