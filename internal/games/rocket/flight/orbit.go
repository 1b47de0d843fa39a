package flight

import (
	"math"

	"github.com/vovakirdan/kids-arcade/internal/core"
)

// OrbitTracker counts revolutions by watching the bearing to a body wrap
// across the ±π branch cut of atan2.
//
// A wrap from near +π to near -π is a crossing in the positive sense and
// increments Crossings; the opposite wrap decrements it. Whenever the
// magnitude reaches one, the whole part is added to Count and Crossings keeps
// only its fractional part, keeping the sign (math.Modf semantics).
// Both directions of travel therefore grow Count.
type OrbitTracker struct {
	Count       int
	Crossings   float64
	LastBearing float64
}

// NewOrbitTracker starts tracking from an initial bearing.
func NewOrbitTracker(bearing float64) OrbitTracker {
	return OrbitTracker{LastBearing: bearing}
}

// Observe records the bearing of this tick and returns the number of orbits
// completed by it.
func (o *OrbitTracker) Observe(bearing float64) int {
	delta := bearing - o.LastBearing
	if delta > math.Pi {
		o.Crossings--
	} else if delta < -math.Pi {
		o.Crossings++
	}
	o.LastBearing = bearing

	if math.Abs(o.Crossings) < 1 {
		return 0
	}
	whole, frac := math.Modf(o.Crossings)
	completed := int(math.Abs(whole))
	o.Count += completed
	o.Crossings = frac
	return completed
}

// Bearing returns the atan2 angle of p as seen from center, in (-π, π].
func Bearing(p, center core.Vec2) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}
