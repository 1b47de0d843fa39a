// Package flight simulates a rocket travelling between two gravity sources.
//
// The simulation is a fixed-step integrator: Step advances a RocketState by
// exactly one tick and is a pure function of its arguments, so the same
// launch and input sequence always produce the same flight. Simulator wraps
// Step with the lifecycle rules of a single flight attempt.
package flight

import (
	"fmt"
	"math"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// GravityLaw selects how a body's pull falls off with distance.
type GravityLaw int

const (
	// LawSurfaceScaled pulls with strength*R²/d², where d is never taken
	// below R+MinDistanceMargin. The force is not capped.
	LawSurfaceScaled GravityLaw = iota
	// LawCappedInverseSquare pulls with strength/(d²+GravityEpsilon),
	// capped at GravityCapRatio*ThrustPower so thrust always wins.
	LawCappedInverseSquare
)

// String returns the config name of the law.
func (l GravityLaw) String() string {
	switch l {
	case LawSurfaceScaled:
		return "surface_scaled"
	case LawCappedInverseSquare:
		return "capped_inverse_square"
	default:
		return fmt.Sprintf("GravityLaw(%d)", int(l))
	}
}

// ParseGravityLaw parses the config name of a gravity law.
func ParseGravityLaw(s string) (GravityLaw, error) {
	switch s {
	case "surface_scaled":
		return LawSurfaceScaled, nil
	case "capped_inverse_square":
		return LawCappedInverseSquare, nil
	default:
		return 0, fmt.Errorf("%w: unknown gravity law %q", ErrInvalidConfig, s)
	}
}

// Body is a fixed circular gravity source.
type Body struct {
	Name     string
	Position core.Vec2
	Radius   float64
	Strength float64
	Law      GravityLaw
}

// Validate checks the body geometry.
func (b Body) Validate() error {
	if !b.Position.IsFinite() {
		return fmt.Errorf("%w: body %q position is not finite", ErrInvalidConfig, b.Name)
	}
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return fmt.Errorf("%w: body %q radius must be positive, got %v", ErrInvalidConfig, b.Name, b.Radius)
	}
	if b.Strength < 0 || math.IsNaN(b.Strength) || math.IsInf(b.Strength, 0) {
		return fmt.Errorf("%w: body %q strength must be non-negative, got %v", ErrInvalidConfig, b.Name, b.Strength)
	}
	return nil
}

// World is the bounded arena with its two bodies.
// The primary body is a place to rest; the secondary body is the landing target
// and the body orbits are counted around.
type World struct {
	Width     float64
	Height    float64
	Primary   Body
	Secondary Body
}

// DefaultWorld returns the 4000x2200 layout: Earth at the lower left and the
// Moon at the centre. Earth barely pulls; the Moon pulls hard enough to hold
// a rocket in orbit a few hundred units out.
func DefaultWorld() World {
	return World{
		Width:  4000,
		Height: 2200,
		Primary: Body{
			Name:     "Earth",
			Position: core.V(300, 1800),
			Radius:   200,
			Strength: 2.5e-6,
			Law:      LawSurfaceScaled,
		},
		Secondary: Body{
			Name:     "Moon",
			Position: core.V(2000, 1100),
			Radius:   150,
			Strength: 1125,
			Law:      LawCappedInverseSquare,
		},
	}
}

// Validate checks the world extent and both bodies.
func (w World) Validate() error {
	if !(w.Width > 0) || !(w.Height > 0) || math.IsInf(w.Width, 0) || math.IsInf(w.Height, 0) {
		return fmt.Errorf("%w: world extent must be positive, got %vx%v", ErrInvalidConfig, w.Width, w.Height)
	}
	if err := w.Primary.Validate(); err != nil {
		return err
	}
	return w.Secondary.Validate()
}
