package flight

import (
	"fmt"
	"math"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// MaxFuel is a full tank, in percent.
const MaxFuel = 100.0

// Phase is the lifecycle stage of a flight attempt.
// Flying is the only non-terminal phase; transitions are one-way.
type Phase int

const (
	Flying Phase = iota
	Landed
	Crashed
)

// Terminal reports whether the phase ends the attempt.
func (p Phase) Terminal() bool {
	return p != Flying
}

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	case Crashed:
		return "crashed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// InputState holds the three control levels sampled once per tick.
// Both rotations may be held at once; they cancel out.
type InputState struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
}

// RocketState is the full kinematic state of one flight attempt.
type RocketState struct {
	Position core.Vec2
	Velocity core.Vec2 // units per tick
	// Heading is in radians, 0 pointing up and growing clockwise.
	// It is never normalized.
	Heading      float64
	Fuel         float64
	ThrustActive bool
	Orbits       OrbitTracker
	Phase        Phase
}

// OrbitCount returns the completed revolutions around the secondary body.
func (s RocketState) OrbitCount() int {
	return s.Orbits.Count
}

// Speed returns the velocity magnitude in units per tick.
func (s RocketState) Speed() float64 {
	return s.Velocity.Length()
}

func (s RocketState) finite() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite() &&
		!math.IsNaN(s.Heading) && !math.IsInf(s.Heading, 0) &&
		!math.IsNaN(s.Fuel)
}

// Launch is the starting condition of a flight attempt.
type Launch struct {
	Position core.Vec2
	Velocity core.Vec2
	Heading  float64
	Fuel     float64
}

// DefaultLaunch parks the rocket at rest on top of the primary body, tilted
// 30 degrees clockwise, with the given fuel.
func DefaultLaunch(w World, fuel float64) Launch {
	return Launch{
		Position: w.Primary.Position.Sub(core.V(0, w.Primary.Radius)),
		Heading:  math.Pi / 6,
		Fuel:     fuel,
	}
}

// Validate checks that the launch can start a flight.
func (l Launch) Validate() error {
	if !l.Position.IsFinite() || !l.Velocity.IsFinite() || math.IsNaN(l.Heading) || math.IsInf(l.Heading, 0) {
		return fmt.Errorf("%w: launch vectors must be finite", ErrInvalidConfig)
	}
	if math.IsNaN(l.Fuel) || l.Fuel < 0 || l.Fuel > MaxFuel {
		return fmt.Errorf("%w: initial fuel must be within [0, %v], got %v", ErrInvalidConfig, MaxFuel, l.Fuel)
	}
	return nil
}
