package quiz

import "fmt"

// MaxFuel is the fuel earned by a perfect quiz.
const MaxFuel = 100.0

// Session walks through a list of problems, one answer each.
type Session struct {
	problems []Problem
	index    int
	correct  int
}

// NewSession starts a session over the given problems.
func NewSession(problems []Problem) *Session {
	return &Session{problems: problems}
}

// Current returns the problem awaiting an answer.
func (s *Session) Current() (Problem, bool) {
	if s.Done() {
		return Problem{}, false
	}
	return s.problems[s.index], true
}

// Submit answers the current problem and moves to the next one.
// Wrong answers are not retried.
func (s *Session) Submit(answer int) (bool, error) {
	p, ok := s.Current()
	if !ok {
		return false, fmt.Errorf("%w: %d of %d answered", ErrFinished, s.index, len(s.problems))
	}
	s.index++
	if answer != p.Answer {
		return false, nil
	}
	s.correct++
	return true, nil
}

// Done reports whether every problem has been answered.
func (s *Session) Done() bool {
	return s.index >= len(s.problems)
}

// Index returns the zero-based position of the current problem.
func (s *Session) Index() int {
	return s.index
}

// Len returns the number of problems.
func (s *Session) Len() int {
	return len(s.problems)
}

// Correct returns the number of correct answers so far.
func (s *Session) Correct() int {
	return s.correct
}

// Fuel returns the fuel earned so far: the correct share of all problems.
func (s *Session) Fuel() float64 {
	if len(s.problems) == 0 {
		return 0
	}
	return float64(s.correct) / float64(len(s.problems)) * MaxFuel
}
