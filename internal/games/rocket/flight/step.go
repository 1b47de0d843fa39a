package flight

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// Contact identifies the body the rocket touched during a tick.
type Contact int

const (
	ContactNone Contact = iota
	ContactPrimary
	ContactSecondary
)

// String returns the contact name.
func (c Contact) String() string {
	switch c {
	case ContactNone:
		return "none"
	case ContactPrimary:
		return "primary"
	case ContactSecondary:
		return "secondary"
	default:
		return fmt.Sprintf("Contact(%d)", int(c))
	}
}

// Event describes what happened during one tick.
type Event struct {
	Phase           Phase
	Contact         Contact
	Resting         bool // settled on the primary body this tick
	OrbitsCompleted int
	// RevealAfter is set on the tick that ends the flight: how long the
	// presentation should wait before offering a restart.
	RevealAfter time.Duration
}

// Step advances s by one tick. It never mutates its arguments, and a state
// that is already terminal is returned unchanged.
//
// The order is fixed: rotation, thrust, primary gravity, secondary gravity,
// orbit tracking on the pre-move position, integration, wall reflection and
// finally contacts with the primary and then the secondary body.
func Step(s RocketState, in InputState, w World, p Params) (RocketState, Event) {
	if s.Phase.Terminal() {
		return s, Event{Phase: s.Phase}
	}
	var ev Event

	if in.RotateLeft {
		s.Heading -= p.RotationSpeed
	}
	if in.RotateRight {
		s.Heading += p.RotationSpeed
	}

	s.ThrustActive = in.Thrust && s.Fuel > 0
	if s.ThrustActive {
		s.Fuel = math.Max(0, s.Fuel-p.FuelConsumption)
		s.Velocity = s.Velocity.Add(Direction(s.Heading).Scale(p.ThrustPower))
	}

	s.Velocity = s.Velocity.Add(Pull(s.Position, w.Primary, p))
	s.Velocity = s.Velocity.Add(Pull(s.Position, w.Secondary, p))

	ev.OrbitsCompleted = s.Orbits.Observe(Bearing(s.Position, w.Secondary.Position))

	// Velocity is already per tick, so this is a semi-implicit Euler step.
	s.Position = s.Position.Add(s.Velocity)
	s.Position, s.Velocity = reflectWalls(s.Position, s.Velocity, w, p.WallRestitution)

	s, ev = resolveContacts(s, ev, w, p)
	ev.Phase = s.Phase
	return s, ev
}

// Direction returns the unit thrust vector for a heading.
// Heading 0 points up (negative Y); positive headings turn clockwise.
func Direction(heading float64) core.Vec2 {
	return core.V(math.Sin(heading), -math.Cos(heading))
}

// Pull returns the velocity change one tick of gravity from b gives a rocket
// at pos. A rocket exactly at the body centre feels nothing.
func Pull(pos core.Vec2, b Body, p Params) core.Vec2 {
	toBody := b.Position.Sub(pos)
	d := toBody.Length()
	if d == 0 {
		return core.Vec2{}
	}

	var force float64
	switch b.Law {
	case LawCappedInverseSquare:
		force = b.Strength / (d*d + p.GravityEpsilon)
		force = math.Min(force, p.GravityCapRatio*p.ThrustPower)
	default:
		eff := math.Max(d, b.Radius+p.MinDistanceMargin)
		force = b.Strength * b.Radius * b.Radius / (eff * eff)
	}
	return toBody.Scale(force / d)
}

// reflectWalls clamps the position into the world and bounces the offending
// velocity component back with the given restitution.
func reflectWalls(pos, vel core.Vec2, w World, restitution float64) (core.Vec2, core.Vec2) {
	if pos.X < 0 {
		pos.X = 0
		vel.X *= -restitution
	} else if pos.X > w.Width {
		pos.X = w.Width
		vel.X *= -restitution
	}
	if pos.Y < 0 {
		pos.Y = 0
		vel.Y *= -restitution
	} else if pos.Y > w.Height {
		pos.Y = w.Height
		vel.Y *= -restitution
	}
	return pos, vel
}

// resolveContacts applies the contact policy, primary body first.
//
// Closing on either body faster than the crash threshold destroys the rocket.
// Anything gentler rests the rocket on the primary body (the flight goes on)
// or lands it on the secondary body (the flight ends).
func resolveContacts(s RocketState, ev Event, w World, p Params) (RocketState, Event) {
	speed := s.Velocity.Length()
	threshold := p.CrashThreshold()

	if touching(s.Position, w.Primary, p) {
		ev.Contact = ContactPrimary
		if closing(s, w.Primary) && speed > threshold {
			s.Phase = Crashed
			ev.RevealAfter = p.CrashedReveal
			return s, ev
		}
		s.Velocity = core.Vec2{}
		ev.Resting = true
	}

	if touching(s.Position, w.Secondary, p) {
		ev.Contact = ContactSecondary
		if closing(s, w.Secondary) && speed > threshold {
			s.Phase = Crashed
			ev.RevealAfter = p.CrashedReveal
			return s, ev
		}
		s.Phase = Landed
		s.Velocity = core.Vec2{}
		ev.RevealAfter = p.LandedReveal
	}
	return s, ev
}

func touching(pos core.Vec2, b Body, p Params) bool {
	return pos.Distance(b.Position) < b.Radius+p.CollisionMargin
}

// closing reports whether the rocket moves toward the body centre.
func closing(s RocketState, b Body) bool {
	return s.Velocity.Dot(b.Position.Sub(s.Position)) > 0
}
