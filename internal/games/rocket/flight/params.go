package flight

import (
	"fmt"
	"math"
	"time"
)

// Params holds the physics tuning of a flight. Speeds and impulses are in
// world units per tick.
type Params struct {
	RotationSpeed     float64 // radians per tick while a rotate input is held
	ThrustPower       float64 // velocity impulse per tick of thrust
	FuelConsumption   float64 // fuel percent burned per tick of thrust
	MinDistanceMargin float64 // LawSurfaceScaled never evaluates closer than R+margin
	GravityEpsilon    float64 // LawCappedInverseSquare denominator offset
	GravityCapRatio   float64 // LawCappedInverseSquare cap as a fraction of ThrustPower
	CollisionMargin   float64 // contact when distance < R+margin
	CrashSpeed        float64 // closing speed in units per second that destroys the rocket
	TickRate          int     // ticks per second
	WallRestitution   float64 // fraction of speed kept (and reversed) at the world edge

	LandedReveal  time.Duration // delay before the restart affordance after landing
	CrashedReveal time.Duration // delay before the restart affordance after a crash
}

// DefaultParams returns the stock game tuning at 60 ticks per second.
func DefaultParams() Params {
	return Params{
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
		LandedReveal:      time.Second,
		CrashedReveal:     3 * time.Second,
	}
}

// CrashThreshold returns the crash speed in units per tick.
func (p Params) CrashThreshold() float64 {
	return p.CrashSpeed / float64(p.TickRate)
}

// Validate rejects tunings the integrator cannot run with.
func (p Params) Validate() error {
	if p.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %d", ErrInvalidConfig, p.TickRate)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"rotation speed", p.RotationSpeed},
		{"thrust power", p.ThrustPower},
		{"fuel consumption", p.FuelConsumption},
		{"min distance margin", p.MinDistanceMargin},
		{"gravity epsilon", p.GravityEpsilon},
		{"gravity cap ratio", p.GravityCapRatio},
		{"collision margin", p.CollisionMargin},
		{"crash speed", p.CrashSpeed},
		{"wall restitution", p.WallRestitution},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidConfig, f.name, f.v)
		}
	}
	if p.CrashSpeed == 0 {
		return fmt.Errorf("%w: crash speed must be positive", ErrInvalidConfig)
	}
	if p.LandedReveal < 0 || p.CrashedReveal < 0 {
		return fmt.Errorf("%w: reveal delays must not be negative", ErrInvalidConfig)
	}
	return nil
}
