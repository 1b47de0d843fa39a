package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/kids-arcade/internal/core"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/flight"
	"github.com/vovakirdan/kids-arcade/internal/games/rocket/quiz"
)

// Validate checks every section by converting it into the simulator and
// quiz types.
func (c RocketConfig) Validate() error {
	w, err := c.FlightWorld()
	if err != nil {
		return err
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if err := c.FlightParams().Validate(); err != nil {
		return err
	}
	if _, err := c.QuizSettings(); err != nil {
		return err
	}
	if c.Quiz.FeedbackMs < 0 || c.Input.HoldMs < 0 {
		return errors.New("config: feedback_ms and hold_ms must not be negative")
	}
	if c.View.PredictionTicks < 0 || c.View.Stars < 0 {
		return errors.New("config: view counts must not be negative")
	}
	return nil
}

// FlightWorld converts the world section.
func (c RocketConfig) FlightWorld() (flight.World, error) {
	primary, err := c.World.Primary.body()
	if err != nil {
		return flight.World{}, err
	}
	secondary, err := c.World.Secondary.body()
	if err != nil {
		return flight.World{}, err
	}
	return flight.World{
		Width:     c.World.Width,
		Height:    c.World.Height,
		Primary:   primary,
		Secondary: secondary,
	}, nil
}

func (b BodyConfig) body() (flight.Body, error) {
	law, err := flight.ParseGravityLaw(b.Law)
	if err != nil {
		return flight.Body{}, fmt.Errorf("body %q: %w", b.Name, err)
	}
	return flight.Body{
		Name:     b.Name,
		Position: core.V(b.X, b.Y),
		Radius:   b.Radius,
		Strength: b.Strength,
		Law:      law,
	}, nil
}

// FlightParams converts the physics section.
func (c RocketConfig) FlightParams() flight.Params {
	p := c.Physics
	return flight.Params{
		RotationSpeed:     p.RotationSpeed,
		ThrustPower:       p.ThrustPower,
		FuelConsumption:   p.FuelConsumption,
		MinDistanceMargin: p.MinDistanceMargin,
		GravityEpsilon:    p.GravityEpsilon,
		GravityCapRatio:   p.GravityCapRatio,
		CollisionMargin:   p.CollisionMargin,
		CrashSpeed:        p.CrashSpeed,
		TickRate:          p.TickRate,
		WallRestitution:   p.WallRestitution,
		LandedReveal:      time.Duration(p.LandedRevealMs) * time.Millisecond,
		CrashedReveal:     time.Duration(p.CrashedRevealMs) * time.Millisecond,
	}
}

// FlightLaunch places the rocket on top of the primary body with the
// configured heading and the given fuel.
func (c RocketConfig) FlightLaunch(w flight.World, fuel float64) flight.Launch {
	l := flight.DefaultLaunch(w, fuel)
	l.Heading = c.Launch.HeadingDegrees * math.Pi / 180
	return l
}

// QuizSettings converts the quiz section.
func (c RocketConfig) QuizSettings() (quiz.Settings, error) {
	s := quiz.Settings{
		Count:       c.Quiz.Count,
		NumberRange: c.Quiz.NumberRange,
	}
	for _, name := range c.Quiz.Operators {
		op, err := quiz.ParseOperator(name)
		if err != nil {
			return s, err
		}
		s.Operators = append(s.Operators, op)
	}
	return s, s.Validate()
}
