package domain

import "math"

// DefaultViewStart is the leftmost visible hour on startup.
const DefaultViewStart = 19.0

// Viewport is the 12-hour window of the day currently on screen.
type Viewport struct {
	Start float64
}

// NewViewport creates a viewport anchored at start.
func NewViewport(start float64) Viewport {
	return Viewport{Start: Normalize(start)}
}

// End returns the first hour past the visible window.
func (v Viewport) End() float64 {
	return Normalize(v.Start + VisibleHours)
}

// Snapped returns the viewport rounded to the nearest half hour.
func (v Viewport) Snapped() Viewport {
	return Viewport{Start: SnapHalfHour(v.Start)}
}

// Contains reports whether the whole clock hour h is lit in the window
// indicator, measured from the start rounded to the nearest hour.
func (v Viewport) Contains(h int) bool {
	return Normalize(float64(h)-math.Round(v.Start)) < VisibleHours
}

// SnapHalfHour rounds t to the nearest half hour, wrapping at midnight.
func SnapHalfHour(t float64) float64 {
	return Normalize(math.Round(t*2) / 2)
}
