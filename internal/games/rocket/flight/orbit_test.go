package flight

import (
	"math"
	"testing"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// walkCircle feeds the tracker bearings of a point moving steps times by
// stepAngle, starting at start.
func walkCircle(o *OrbitTracker, start, stepAngle float64, steps int) {
	for i := 1; i <= steps; i++ {
		a := start + float64(i)*stepAngle
		o.Observe(math.Atan2(math.Sin(a), math.Cos(a)))
	}
}

func TestOrbitTrackerCountsBothDirections(t *testing.T) {
	const perTurn = 120
	step := 2 * math.Pi / perTurn

	tests := []struct {
		name  string
		turns int
		step  float64
	}{
		{"one counter-clockwise", 1, step},
		{"three counter-clockwise", 3, step},
		{"one clockwise", 1, -step},
		{"four clockwise", 4, -step},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrbitTracker(0.1)
			walkCircle(&o, 0.1, tc.step, tc.turns*perTurn)
			if o.Count != tc.turns {
				t.Errorf("Count = %d, expected %d", o.Count, tc.turns)
			}
			if math.Abs(o.Crossings) >= 1 {
				t.Errorf("Crossings = %v, expected magnitude below 1", o.Crossings)
			}
		})
	}
}

func TestOrbitTrackerPartialTurnCountsNothing(t *testing.T) {
	o := NewOrbitTracker(0.1)
	// Nine tenths of a turn from 0.1 rad never reaches the cut twice.
	walkCircle(&o, 0.1, 2*math.Pi/100, 90)
	if o.Count != 0 {
		t.Errorf("Count = %d, expected 0", o.Count)
	}
}

func TestOrbitTrackerCountsEachBranchCutCrossing(t *testing.T) {
	o := NewOrbitTracker(3.1)

	if got := o.Observe(-3.1); got != 1 {
		t.Errorf("first crossing completed %d orbits, expected 1", got)
	}
	// Crossing straight back is counted again.
	if got := o.Observe(3.1); got != 1 {
		t.Errorf("return crossing completed %d orbits, expected 1", got)
	}
	if o.Count != 2 {
		t.Errorf("Count = %d, expected 2", o.Count)
	}
}

func TestOrbitTrackerKeepsFractionSign(t *testing.T) {
	o := OrbitTracker{Crossings: -0.5, LastBearing: -3.1}

	o.Observe(3.1)

	if o.Count != 1 {
		t.Errorf("Count = %d, expected 1", o.Count)
	}
	if o.Crossings != -0.5 {
		t.Errorf("Crossings = %v, expected -0.5", o.Crossings)
	}
}

func TestBearing(t *testing.T) {
	center := core.V(100, 100)
	tests := []struct {
		name     string
		p        core.Vec2
		expected float64
	}{
		{"east", core.V(200, 100), 0},
		{"south (screen down)", core.V(100, 200), math.Pi / 2},
		{"north (screen up)", core.V(100, 0), -math.Pi / 2},
		{"west", core.V(0, 100), math.Pi},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bearing(tc.p, center); math.Abs(got-tc.expected) > 1e-12 {
				t.Errorf("Bearing = %v, expected %v", got, tc.expected)
			}
		})
	}
}
