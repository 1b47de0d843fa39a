// Package quiz generates the arithmetic problems that fill the rocket's
// fuel tank before a flight.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

var (
	// ErrInvalidSettings is returned when settings cannot produce a quiz.
	ErrInvalidSettings = errors.New("quiz: invalid settings")
	// ErrFinished is returned when answering after the last problem.
	ErrFinished = errors.New("quiz: no problems left")
)

// Operator is an arithmetic operation a problem may use.
type Operator rune

const (
	Add      Operator = '+'
	Subtract Operator = '-'
	Multiply Operator = '×'
)

// MaxFactor bounds multiplication operands regardless of the number range.
const MaxFactor = 10

func (o Operator) String() string {
	return string(o)
}

// ParseOperator accepts the symbol or a short name ("add", "sub", "mul").
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add", "addition":
		return Add, nil
	case "-", "sub", "subtraction":
		return Subtract, nil
	case "×", "x", "*", "mul", "multiplication":
		return Multiply, nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidSettings, s)
	}
}

// Problem is a single question.
type Problem struct {
	A, B   int
	Op     Operator
	Answer int
}

// String formats the question as shown to the player.
func (p Problem) String() string {
	return fmt.Sprintf("%d %s %d = ?", p.A, p.Op, p.B)
}

// Settings controls quiz generation.
type Settings struct {
	Count       int        // number of problems
	NumberRange int        // operands are drawn from [0, NumberRange)
	Operators   []Operator // chosen uniformly per problem
}

// DefaultSettings returns five additions with operands below ten.
func DefaultSettings() Settings {
	return Settings{Count: 5, NumberRange: 10, Operators: []Operator{Add}}
}

// Validate checks that the settings can generate a quiz.
func (s Settings) Validate() error {
	if s.Count < 1 {
		return fmt.Errorf("%w: need at least one problem, got %d", ErrInvalidSettings, s.Count)
	}
	if s.NumberRange < 1 {
		return fmt.Errorf("%w: number range must be positive, got %d", ErrInvalidSettings, s.NumberRange)
	}
	if len(s.Operators) == 0 {
		return fmt.Errorf("%w: select at least one operator", ErrInvalidSettings)
	}
	for _, op := range s.Operators {
		switch op {
		case Add, Subtract, Multiply:
		default:
			return fmt.Errorf("%w: unsupported operator %q", ErrInvalidSettings, string(op))
		}
	}
	return nil
}

// Generate draws s.Count problems from rng.
// Subtraction never goes negative and multiplication operands stay below
// MaxFactor.
func Generate(s Settings, rng *rand.Rand) ([]Problem, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	problems := make([]Problem, s.Count)
	for i := range problems {
		op := s.Operators[rng.Intn(len(s.Operators))]
		var p Problem
		switch op {
		case Add:
			p = Problem{A: rng.Intn(s.NumberRange), B: rng.Intn(s.NumberRange), Op: Add}
			p.Answer = p.A + p.B
		case Subtract:
			a := rng.Intn(s.NumberRange)
			p = Problem{A: a, B: rng.Intn(a + 1), Op: Subtract}
			p.Answer = p.A - p.B
		case Multiply:
			limit := min(s.NumberRange, MaxFactor)
			p = Problem{A: rng.Intn(limit), B: rng.Intn(limit), Op: Multiply}
			p.Answer = p.A * p.B
		}
		problems[i] = p
	}
	return problems, nil
}
