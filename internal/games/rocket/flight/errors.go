package flight

import "errors"

var (
	// ErrTerminal is returned when a simulator that already landed or
	// crashed is ticked again.
	ErrTerminal = errors.New("flight: simulation already ended")

	// ErrInvalidState is returned when the rocket state holds NaN or
	// infinite values.
	ErrInvalidState = errors.New("flight: invalid rocket state")

	// ErrInvalidConfig is returned by New and the Validate methods.
	ErrInvalidConfig = errors.New("flight: invalid configuration")
)
