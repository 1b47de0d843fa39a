package flight

import (
	"fmt"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// Simulator owns the state of a single flight attempt. It is not safe for
// concurrent use; one goroutine ticks it and reads snapshots between ticks.
type Simulator struct {
	world  World
	params Params
	state  RocketState
	ticks  int
}

// New validates the configuration and starts a flight attempt.
func New(w World, p Params, l Launch) (*Simulator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &Simulator{
		world:  w,
		params: p,
		state: RocketState{
			Position: l.Position,
			Velocity: l.Velocity,
			Heading:  l.Heading,
			Fuel:     l.Fuel,
			Orbits:   NewOrbitTracker(Bearing(l.Position, w.Secondary.Position)),
			Phase:    Flying,
		},
	}, nil
}

// Tick advances the flight by one step.
// Ticking a landed or crashed flight is a caller bug and returns ErrTerminal.
// A state that would become non-finite is rejected with ErrInvalidState and
// left as it was.
func (s *Simulator) Tick(in InputState) (Event, error) {
	if s.state.Phase.Terminal() {
		return Event{Phase: s.state.Phase}, fmt.Errorf("%w: rocket has %s", ErrTerminal, s.state.Phase)
	}
	if !s.state.finite() {
		return Event{Phase: s.state.Phase}, fmt.Errorf("%w: tick %d", ErrInvalidState, s.ticks)
	}

	next, ev := Step(s.state, in, s.world, s.params)
	if !next.finite() {
		return Event{Phase: s.state.Phase}, fmt.Errorf("%w: tick %d produced non-finite values", ErrInvalidState, s.ticks+1)
	}

	s.state = next
	s.ticks++
	return ev, nil
}

// State returns a snapshot of the rocket.
func (s *Simulator) State() RocketState {
	return s.state
}

// Phase returns the current phase.
func (s *Simulator) Phase() Phase {
	return s.state.Phase
}

// World returns the bodies and bounds of this flight.
func (s *Simulator) World() World {
	return s.world
}

// Params returns the physics tuning of this flight.
func (s *Simulator) Params() Params {
	return s.params
}

// Ticks returns the number of successful ticks so far.
func (s *Simulator) Ticks() int {
	return s.ticks
}

// Telemetry returns the display projection of the current state.
func (s *Simulator) Telemetry() Telemetry {
	return s.state.Telemetry(s.params, s.ticks)
}

// Predict returns up to n future positions assuming in is held constant.
// The prediction stops early at a landing or crash and never touches the
// live state.
func (s *Simulator) Predict(n int, in InputState) []core.Vec2 {
	if n <= 0 {
		return nil
	}
	path := make([]core.Vec2, 0, n)
	st := s.state
	for i := 0; i < n && !st.Phase.Terminal(); i++ {
		st, _ = Step(st, in, s.world, s.params)
		path = append(path, st.Position)
	}
	return path
}
