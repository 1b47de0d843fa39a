package config

import (
	_ "embed"
)

//go:embed defaults/rocket.yaml
var defaultRocketYAML []byte

// DefaultRocketConfig returns the default Rocket Scientist configuration.
func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		World: RocketWorld{
			Width:  4000,
			Height: 2200,
			Primary: BodyConfig{
				Name:     "Earth",
				X:        300,
				Y:        1800,
				Radius:   200,
				Strength: 2.5e-6,
				Law:      "surface_scaled",
			},
			Secondary: BodyConfig{
				Name:     "Moon",
				X:        2000,
				Y:        1100,
				Radius:   150,
				Strength: 1125,
				Law:      "capped_inverse_square",
			},
		},
		Physics: RocketPhysics{
			RotationSpeed:     0.04,
			ThrustPower:       0.5,
			FuelConsumption:   0.3,
			MinDistanceMargin: 50,
			GravityEpsilon:    0.1,
			GravityCapRatio:   0.6,
			CollisionMargin:   40,
			CrashSpeed:        125,
			TickRate:          60,
			WallRestitution:   0.5,
			LandedRevealMs:    1000,
			CrashedRevealMs:   3000,
		},
		Launch: RocketLaunch{
			HeadingDegrees: 30,
		},
		Quiz: RocketQuiz{
			Count:       5,
			NumberRange: 10,
			Operators:   []string{"+"},
			FeedbackMs:  1000,
		},
		Input: RocketInput{
			HoldMs: 150,
		},
		View: RocketView{
			PredictionTicks: 90,
			Stars:           60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "landings",
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				RangeGrowth:   40,
				ExtraProblems: 3,
			},
		},
	}
}
