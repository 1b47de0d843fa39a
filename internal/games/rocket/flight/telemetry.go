package flight

import (
	"math"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

const (
	// BaseScore is awarded for any landing.
	BaseScore = 100
	// OrbitBonus is added per completed orbit.
	OrbitBonus = 50
)

// Score returns the points for a landing after the given number of orbits.
func Score(orbits int) int {
	return BaseScore + orbits*OrbitBonus
}

// Telemetry is a read-only display projection of a RocketState.
type Telemetry struct {
	Tick           int       `json:"tick"`
	Position       core.Vec2 `json:"position"`
	Velocity       core.Vec2 `json:"velocity"`
	SpeedPerSecond float64   `json:"speed"`
	HeadingDegrees float64   `json:"heading"`
	Fuel           float64   `json:"fuel"`
	Thrust         bool      `json:"thrust"`
	Orbits         int       `json:"orbits"`
	Phase          Phase     `json:"phase"`
	Score          int       `json:"score"` // zero unless landed
}

// Telemetry projects the state for display at the given tick.
func (s RocketState) Telemetry(p Params, tick int) Telemetry {
	t := Telemetry{
		Tick:           tick,
		Position:       s.Position,
		Velocity:       s.Velocity,
		SpeedPerSecond: s.Speed() * float64(p.TickRate),
		HeadingDegrees: HeadingDegrees(s.Heading),
		Fuel:           s.Fuel,
		Thrust:         s.ThrustActive,
		Orbits:         s.Orbits.Count,
		Phase:          s.Phase,
	}
	if s.Phase == Landed {
		t.Score = Score(s.Orbits.Count)
	}
	return t
}

// HeadingDegrees maps an unbounded heading in radians to [0, 360) degrees.
func HeadingDegrees(heading float64) float64 {
	d := math.Mod(heading*180/math.Pi, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
