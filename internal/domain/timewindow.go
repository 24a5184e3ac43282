package domain

import (
	"fmt"
	"time"
)

// TimeWindow bounds when a visit may happen.
//
// The zero value means "no constraint" (fully flexible). A window with
// Earliest == Latest is an exact-time requirement.
type TimeWindow struct {
	Earliest time.Time
	Latest   time.Time
}

// IsZero reports whether the window carries no constraint at all.
func (w TimeWindow) IsZero() bool {
	return w.Earliest.IsZero() && w.Latest.IsZero()
}

// Validate rejects windows whose earliest bound is after the latest.
func (w TimeWindow) Validate() error {
	if w.IsZero() {
		return nil
	}
	if w.Earliest.After(w.Latest) {
		return fmt.Errorf("earliest %s after latest %s: %w",
			w.Earliest.Format(time.RFC3339), w.Latest.Format(time.RFC3339), ErrInvalidTimeWindow)
	}
	return nil
}

// Contains reports whether t satisfies the window.
// A zero window accepts any time.
func (w TimeWindow) Contains(t time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Earliest) && !t.After(w.Latest)
}

// Duration returns the width of the window, zero for exact-time
// or unconstrained windows.
func (w TimeWindow) Duration() time.Duration {
	if w.IsZero() {
		return 0
	}
	return w.Latest.Sub(w.Earliest)
}

// Position returns where t falls inside the window as a fraction in [0,1]
// (0 at the earliest bound, 1 at the latest). Exact-time and unconstrained
// windows position every contained instant at 0.
func (w TimeWindow) Position(t time.Time) float64 {
	d := w.Duration()
	if d <= 0 {
		return 0
	}
	frac := float64(t.Sub(w.Earliest)) / float64(d)
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
