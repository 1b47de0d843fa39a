package tui

import "github.com/vovakirdan/kids-arcade/internal/core"

// HoldTracker turns discrete key presses into held controls.
//
// A press keeps its action active for a fixed number of ticks; key repeat
// from the terminal renews it, so holding a key reads as a steady level.
type HoldTracker struct {
	ticks     int
	remaining map[core.Action]int
}

// NewHoldTracker creates a tracker that holds each press for the given
// number of ticks (at least one).
func NewHoldTracker(ticks int) *HoldTracker {
	return &HoldTracker{
		ticks:     max(ticks, 1),
		remaining: make(map[core.Action]int),
	}
}

// Press starts or renews the hold window of an action.
func (h *HoldTracker) Press(a core.Action) {
	h.remaining[a] = h.ticks
}

// Apply sets every held action on the frame and advances the hold windows
// by one tick.
func (h *HoldTracker) Apply(frame *core.InputFrame) {
	for a, n := range h.remaining {
		frame.Set(a)
		if n <= 1 {
			delete(h.remaining, a)
		} else {
			h.remaining[a] = n - 1
		}
	}
}

// Release drops every held action.
func (h *HoldTracker) Release() {
	clear(h.remaining)
}

// SetTicks changes the hold window for later presses.
func (h *HoldTracker) SetTicks(ticks int) {
	h.ticks = max(ticks, 1)
}
